package audit

import (
	"context"
	"sync"
)

// InMemoryStore keeps audit events in a slice, newest last.
type InMemoryStore struct {
	mu     sync.RWMutex
	events []Event
}

// NewInMemoryStore creates an empty in-memory audit store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(ctx context.Context, event Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListByEvent returns up to limit events for an event id, newest first.
func (s *InMemoryStore) ListByEvent(ctx context.Context, eventID string, limit int) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []Event
	for i := len(s.events) - 1; i >= 0 && len(matched) < limit; i-- {
		if s.events[i].EventID == eventID {
			matched = append(matched, s.events[i])
		}
	}
	return matched, nil
}

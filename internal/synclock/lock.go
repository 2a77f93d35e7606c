// Package synclock enforces "at most one sync run in flight per event".
// Overlapping runs against the same event are not safe: the pet replace
// stage's delete-then-insert cycle would interleave.
package synclock

import (
	"context"
	"sync"
	"time"
)

// Locker is a try-lock keyed by event id. Release must be called with the
// token returned by TryAcquire so a lock that expired and was re-acquired by
// another run cannot be released by the first one.
type Locker interface {
	TryAcquire(ctx context.Context, eventID string, ttl time.Duration) (token string, acquired bool, err error)
	Release(ctx context.Context, eventID, token string) error
}

// InMemory locks within a single process. The Redis locker covers
// multi-replica deployments.
type InMemory struct {
	mu   sync.Mutex
	held map[string]memoryLease
}

type memoryLease struct {
	token     string
	expiresAt time.Time
}

// NewInMemory creates an in-process locker.
func NewInMemory() *InMemory {
	return &InMemory{held: make(map[string]memoryLease)}
}

func (l *InMemory) TryAcquire(ctx context.Context, eventID string, ttl time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if lease, ok := l.held[eventID]; ok && now.Before(lease.expiresAt) {
		return "", false, nil
	}
	token := newToken()
	l.held[eventID] = memoryLease{token: token, expiresAt: now.Add(ttl)}
	return token, true, nil
}

func (l *InMemory) Release(ctx context.Context, eventID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if lease, ok := l.held[eventID]; ok && lease.token == token {
		delete(l.held, eventID)
	}
	return nil
}

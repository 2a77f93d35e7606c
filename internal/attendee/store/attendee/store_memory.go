package attendee

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"checkinhub/internal/attendee/models"
	id "checkinhub/pkg/domain"
	"checkinhub/pkg/platform/sentinel"
	"checkinhub/pkg/requestcontext"
)

// InMemory implements the attendee store with a map keyed by email. Used for
// local development and unit tests; PostgresStore is the production path.
type InMemory struct {
	mu        sync.RWMutex
	attendees map[string]*models.Attendee
}

// NewInMemory creates an empty in-memory attendee store.
func NewInMemory() *InMemory {
	return &InMemory{attendees: make(map[string]*models.Attendee)}
}

// Upsert inserts or updates an attendee keyed by email. A pre-existing row
// keeps its vaccine upload status; only the sync payload columns change.
func (s *InMemory) Upsert(ctx context.Context, a *models.Attendee) error {
	if a == nil {
		return fmt.Errorf("attendee is required")
	}
	now := requestcontext.Now(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.attendees[a.Email]; ok {
		existing.Name = a.Name
		existing.ExternalID = a.ExternalID
		existing.EventID = a.EventID
		existing.OrderID = a.OrderID
		existing.UpdatedAt = now
		return nil
	}

	stored := *a
	stored.ID = id.AttendeeID(uuid.New())
	stored.VaccineUploadStatus = false
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.attendees[a.Email] = &stored
	return nil
}

// FindByEmail returns the attendee with the given email.
func (s *InMemory) FindByEmail(ctx context.Context, email string) (*models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.attendees[email]
	if !ok {
		return nil, fmt.Errorf("attendee %q: %w", email, sentinel.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

// ListByEvent returns all attendees registered for an event, ordered by name.
func (s *InMemory) ListByEvent(ctx context.Context, eventID string) ([]*models.Attendee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var attendees []*models.Attendee
	for _, a := range s.attendees {
		if a.EventID != eventID {
			continue
		}
		copied := *a
		attendees = append(attendees, &copied)
	}
	sort.Slice(attendees, func(i, j int) bool {
		if attendees[i].Name != attendees[j].Name {
			return attendees[i].Name < attendees[j].Name
		}
		return attendees[i].Email < attendees[j].Email
	})
	return attendees, nil
}

// SetVaccineUploaded marks the attendee's vaccine record as received.
func (s *InMemory) SetVaccineUploaded(ctx context.Context, eventID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.attendees[email]
	if !ok || a.EventID != eventID {
		return fmt.Errorf("attendee %q: %w", email, sentinel.ErrNotFound)
	}
	a.VaccineUploadStatus = true
	a.UpdatedAt = requestcontext.Now(ctx)
	return nil
}

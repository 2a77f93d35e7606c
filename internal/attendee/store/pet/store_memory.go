package pet

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"checkinhub/internal/attendee/models"
	id "checkinhub/pkg/domain"
	"checkinhub/pkg/platform/sentinel"
	"checkinhub/pkg/requestcontext"
)

// InMemory implements the pet store with an insertion-ordered slice. Used for
// local development and unit tests; PostgresStore is the production path.
type InMemory struct {
	mu   sync.RWMutex
	pets []*models.Pet
}

// NewInMemory creates an empty in-memory pet store.
func NewInMemory() *InMemory {
	return &InMemory{}
}

// DeleteByOwner removes every pet for (owner_email, event_id).
func (s *InMemory) DeleteByOwner(ctx context.Context, ownerEmail, eventID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.pets[:0]
	for _, p := range s.pets {
		if p.OwnerEmail == ownerEmail && p.EventID == eventID {
			continue
		}
		kept = append(kept, p)
	}
	s.pets = kept
	return nil
}

// Insert adds one pet.
func (s *InMemory) Insert(ctx context.Context, p *models.Pet) error {
	if p == nil {
		return fmt.Errorf("pet is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *p
	stored.ID = id.PetID(uuid.New())
	stored.CreatedAt = requestcontext.Now(ctx)
	s.pets = append(s.pets, &stored)
	return nil
}

// ListByOwner returns the owner's pets for an event in insertion order.
func (s *InMemory) ListByOwner(ctx context.Context, ownerEmail, eventID string) ([]*models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pets []*models.Pet
	for _, p := range s.pets {
		if p.OwnerEmail == ownerEmail && p.EventID == eventID {
			copied := *p
			pets = append(pets, &copied)
		}
	}
	return pets, nil
}

// ListByEvent returns every pet registered for an event in insertion order.
func (s *InMemory) ListByEvent(ctx context.Context, eventID string) ([]*models.Pet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var pets []*models.Pet
	for _, p := range s.pets {
		if p.EventID == eventID {
			copied := *p
			pets = append(pets, &copied)
		}
	}
	return pets, nil
}

// SetVaccineUploaded marks the pet's vaccine record as received.
func (s *InMemory) SetVaccineUploaded(ctx context.Context, petID id.PetID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.pets {
		if p.ID == petID {
			p.VaccineUploadStatus = true
			return nil
		}
	}
	return fmt.Errorf("pet %s: %w", petID, sentinel.ErrNotFound)
}

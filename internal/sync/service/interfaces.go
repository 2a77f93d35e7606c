package service

import (
	"context"

	attmodels "checkinhub/internal/attendee/models"
	"checkinhub/internal/sync/models"
	id "checkinhub/pkg/domain"
)

// OrderSource fetches the full order set for an event from the ticketing
// provider. Implementations must bound the call with a deadline and return
// classified errors, never panic across the boundary.
type OrderSource interface {
	FetchOrders(ctx context.Context, eventID string) (*models.OrderBatch, error)
}

// AttendeeStore persists human registrants keyed by email.
type AttendeeStore interface {
	Upsert(ctx context.Context, a *attmodels.Attendee) error
	ListByEvent(ctx context.Context, eventID string) ([]*attmodels.Attendee, error)
	SetVaccineUploaded(ctx context.Context, eventID, email string) error
}

// PetStore persists companion-animal registrations with full-replace
// lifecycle per (owner_email, event_id).
type PetStore interface {
	DeleteByOwner(ctx context.Context, ownerEmail, eventID string) error
	Insert(ctx context.Context, p *attmodels.Pet) error
	ListByOwner(ctx context.Context, ownerEmail, eventID string) ([]*attmodels.Pet, error)
	ListByEvent(ctx context.Context, eventID string) ([]*attmodels.Pet, error)
	SetVaccineUploaded(ctx context.Context, petID id.PetID) error
}

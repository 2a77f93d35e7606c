// Package models defines the persisted check-in records: human attendees and
// their pets. Both are written by the sync pipeline and read back by the
// roster view; vaccine upload status is flipped by the upload flow between
// syncs.
package models

import (
	"time"

	id "checkinhub/pkg/domain"
)

// Attendee is a human registrant, keyed by email (globally unique in the
// store). Re-syncs upsert on that key and must not clobber fields the upsert
// payload does not list, vaccine status in particular.
type Attendee struct {
	ID                  id.AttendeeID
	Email               string
	Name                string
	ExternalID          string
	EventID             string
	OrderID             string
	VaccineUploadStatus bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Pet is a companion-animal registration owned by an attendee, linked by
// email value rather than foreign key so an owner re-upsert never cascades.
// Pets have full-replace lifecycle per (owner_email, event_id): each sync
// deletes the pair's rows and inserts the current set.
type Pet struct {
	ID                  id.PetID
	Name                string
	OwnerEmail          string
	EventID             string
	VaccineUploadStatus bool
	CreatedAt           time.Time
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	attmodels "checkinhub/internal/attendee/models"
	id "checkinhub/pkg/domain"
	dErrors "checkinhub/pkg/domain-errors"
	"checkinhub/pkg/platform/sentinel"
)

// RosterEntry is one attendee with their pets for the current event.
type RosterEntry struct {
	Attendee *attmodels.Attendee
	Pets     []*attmodels.Pet
}

// Roster is the persisted check-in state for an event. UnownedPets holds pet
// rows whose owner email has no attendee row, which can happen when an owner
// bought only a pet ticket.
type Roster struct {
	EventID     string
	Entries     []RosterEntry
	UnownedPets []*attmodels.Pet
}

// Roster reads back the persisted attendee and pet state for display. The
// caller invokes this after every sync run, regardless of outcome, so the
// view reflects whatever was committed.
func (s *Syncer) Roster(ctx context.Context, eventID string) (*Roster, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "event id is required")
	}

	attendees, err := s.attendees.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load attendees")
	}
	pets, err := s.pets.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load pets")
	}

	byOwner := make(map[string][]*attmodels.Pet)
	for _, p := range pets {
		byOwner[p.OwnerEmail] = append(byOwner[p.OwnerEmail], p)
	}

	roster := &Roster{EventID: eventID}
	for _, a := range attendees {
		roster.Entries = append(roster.Entries, RosterEntry{
			Attendee: a,
			Pets:     byOwner[a.Email],
		})
		delete(byOwner, a.Email)
	}
	for _, p := range pets {
		if remaining, ok := byOwner[p.OwnerEmail]; ok {
			roster.UnownedPets = append(roster.UnownedPets, remaining...)
			delete(byOwner, p.OwnerEmail)
		}
	}
	return roster, nil
}

// MarkAttendeeVaccineUploaded records that the attendee's vaccine document
// arrived. Called by the upload flow once storage confirms the file.
func (s *Syncer) MarkAttendeeVaccineUploaded(ctx context.Context, eventID, attendeeEmail string) error {
	attendeeEmail = strings.TrimSpace(attendeeEmail)
	if attendeeEmail == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "attendee email is required")
	}
	if err := s.attendees.SetVaccineUploaded(ctx, strings.TrimSpace(eventID), attendeeEmail); err != nil {
		return translateStoreErr(err, fmt.Sprintf("attendee %q", attendeeEmail))
	}
	return nil
}

// MarkPetVaccineUploaded records that the pet's vaccine document arrived.
func (s *Syncer) MarkPetVaccineUploaded(ctx context.Context, petID id.PetID) error {
	if petID.IsNil() {
		return dErrors.New(dErrors.CodeInvalidInput, "pet id is required")
	}
	if err := s.pets.SetVaccineUploaded(ctx, petID); err != nil {
		return translateStoreErr(err, fmt.Sprintf("pet %s", petID))
	}
	return nil
}

func translateStoreErr(err error, subject string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, subject+" is not registered for this event")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "store write failed")
}

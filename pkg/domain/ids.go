package domain

import (
	"github.com/google/uuid"

	dErrors "checkinhub/pkg/domain-errors"
)

// Typed UUID wrappers keep attendee, pet, and sync-run identifiers from being
// mixed up at compile time. Construct via the Parse helpers at trust
// boundaries; direct casting bypasses validation.
type (
	AttendeeID uuid.UUID
	PetID      uuid.UUID
	RunID      uuid.UUID
)

func (id AttendeeID) String() string { return uuid.UUID(id).String() }
func (id PetID) String() string      { return uuid.UUID(id).String() }
func (id RunID) String() string      { return uuid.UUID(id).String() }

func (id AttendeeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id PetID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id RunID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }

// Defined types do not inherit uuid.UUID's text marshalling, so each ID
// implements it explicitly to render as the canonical string in JSON.

func (id AttendeeID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id PetID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id RunID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }

func (id *AttendeeID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id *PetID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

func (id *RunID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data)
}

// ParseAttendeeID validates external input as an attendee ID.
func ParseAttendeeID(raw string) (AttendeeID, error) {
	u, err := parseUUID(raw)
	return AttendeeID(u), err
}

// ParsePetID validates external input as a pet ID.
func ParsePetID(raw string) (PetID, error) {
	u, err := parseUUID(raw)
	return PetID(u), err
}

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	u, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return u, nil
}

// Package pet persists companion-animal registrations. Pets have full-replace
// lifecycle per (owner_email, event_id): each sync deletes the pair's rows
// and inserts the current set.
package pet

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"checkinhub/internal/attendee/models"
	"checkinhub/internal/platform/postgres"
	id "checkinhub/pkg/domain"
	"checkinhub/pkg/platform/sentinel"
	"checkinhub/pkg/requestcontext"
)

// PostgresStore persists pets in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed pet store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// DeleteByOwner removes every pet row for (owner_email, event_id).
func (s *PostgresStore) DeleteByOwner(ctx context.Context, ownerEmail, eventID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM dogs WHERE owner_email = $1 AND event_id = $2`,
		ownerEmail, eventID,
	)
	if err != nil {
		return classify("delete pets", err)
	}
	return nil
}

// Insert adds one pet row.
func (s *PostgresStore) Insert(ctx context.Context, p *models.Pet) error {
	if p == nil {
		return fmt.Errorf("pet is required")
	}
	now := requestcontext.Now(ctx)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dogs (id, name, owner_email, event_id, vaccine_upload_status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.New(), p.Name, p.OwnerEmail, p.EventID, p.VaccineUploadStatus, now,
	)
	if err != nil {
		return classify("insert pet", err)
	}
	return nil
}

// ListByOwner returns the owner's pets for an event in insertion order.
func (s *PostgresStore) ListByOwner(ctx context.Context, ownerEmail, eventID string) ([]*models.Pet, error) {
	return s.list(ctx,
		`SELECT id, name, owner_email, event_id, vaccine_upload_status, created_at
		 FROM dogs WHERE owner_email = $1 AND event_id = $2 ORDER BY created_at, id`,
		ownerEmail, eventID,
	)
}

// ListByEvent returns every pet registered for an event.
func (s *PostgresStore) ListByEvent(ctx context.Context, eventID string) ([]*models.Pet, error) {
	return s.list(ctx,
		`SELECT id, name, owner_email, event_id, vaccine_upload_status, created_at
		 FROM dogs WHERE event_id = $1 ORDER BY owner_email, created_at, id`,
		eventID,
	)
}

// SetVaccineUploaded marks the pet's vaccine record as received.
func (s *PostgresStore) SetVaccineUploaded(ctx context.Context, petID id.PetID) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE dogs SET vaccine_upload_status = TRUE WHERE id = $1`,
		uuid.UUID(petID),
	)
	if err != nil {
		return classify("set pet vaccine status", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set pet vaccine status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("pet %s: %w", petID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *PostgresStore) list(ctx context.Context, query string, args ...any) ([]*models.Pet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	defer rows.Close()

	var pets []*models.Pet
	for rows.Next() {
		var p models.Pet
		var rawID uuid.UUID
		if err := rows.Scan(&rawID, &p.Name, &p.OwnerEmail, &p.EventID, &p.VaccineUploadStatus, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pet: %w", err)
		}
		p.ID = id.PetID(rawID)
		pets = append(pets, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

func classify(op string, err error) error {
	if postgres.IsPermissionDenied(err) {
		return fmt.Errorf("%s: %w: %v", op, sentinel.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

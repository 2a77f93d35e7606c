// Package attendee persists human registrants keyed by email.
package attendee

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"checkinhub/internal/attendee/models"
	"checkinhub/internal/platform/postgres"
	id "checkinhub/pkg/domain"
	"checkinhub/pkg/platform/sentinel"
	"checkinhub/pkg/requestcontext"
)

// PostgresStore persists attendees in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed attendee store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Upsert inserts or updates an attendee keyed by email. The conflict update
// touches only the columns in the sync payload; vaccine_upload_status is
// deliberately left alone so a re-sync never erases a completed upload.
func (s *PostgresStore) Upsert(ctx context.Context, a *models.Attendee) error {
	if a == nil {
		return fmt.Errorf("attendee is required")
	}
	now := requestcontext.Now(ctx)
	query := `
		INSERT INTO attendees (id, email, name, external_id, event_id, order_id, vaccine_upload_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $7)
		ON CONFLICT (email) DO UPDATE SET
			name        = EXCLUDED.name,
			external_id = EXCLUDED.external_id,
			event_id    = EXCLUDED.event_id,
			order_id    = EXCLUDED.order_id,
			updated_at  = EXCLUDED.updated_at
	`
	_, err := s.db.ExecContext(ctx, query,
		uuid.New(),
		a.Email,
		a.Name,
		a.ExternalID,
		a.EventID,
		a.OrderID,
		now,
	)
	if err != nil {
		return classify("upsert attendee", err)
	}
	return nil
}

// FindByEmail returns the attendee with the given email.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*models.Attendee, error) {
	query := `
		SELECT id, email, name, external_id, event_id, order_id, vaccine_upload_status, created_at, updated_at
		FROM attendees
		WHERE email = $1
	`
	row := s.db.QueryRowContext(ctx, query, email)
	a, err := scanAttendee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("attendee %q: %w", email, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find attendee: %w", err)
	}
	return a, nil
}

// ListByEvent returns all attendees registered for an event, ordered by name.
func (s *PostgresStore) ListByEvent(ctx context.Context, eventID string) ([]*models.Attendee, error) {
	query := `
		SELECT id, email, name, external_id, event_id, order_id, vaccine_upload_status, created_at, updated_at
		FROM attendees
		WHERE event_id = $1
		ORDER BY name, email
	`
	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	defer rows.Close()

	var attendees []*models.Attendee
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendee: %w", err)
		}
		attendees = append(attendees, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return attendees, nil
}

// SetVaccineUploaded marks the attendee's vaccine record as received.
func (s *PostgresStore) SetVaccineUploaded(ctx context.Context, eventID, email string) error {
	now := requestcontext.Now(ctx)
	res, err := s.db.ExecContext(ctx,
		`UPDATE attendees SET vaccine_upload_status = TRUE, updated_at = $3 WHERE event_id = $1 AND email = $2`,
		eventID, email, now,
	)
	if err != nil {
		return classify("set attendee vaccine status", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("set attendee vaccine status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("attendee %q: %w", email, sentinel.ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAttendee(row rowScanner) (*models.Attendee, error) {
	var a models.Attendee
	var rawID uuid.UUID
	err := row.Scan(&rawID, &a.Email, &a.Name, &a.ExternalID, &a.EventID, &a.OrderID, &a.VaccineUploadStatus, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	a.ID = id.AttendeeID(rawID)
	return &a, nil
}

func classify(op string, err error) error {
	if postgres.IsPermissionDenied(err) {
		return fmt.Errorf("%s: %w: %v", op, sentinel.ErrPermissionDenied, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

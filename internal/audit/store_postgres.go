package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	id "checkinhub/pkg/domain"
)

// PostgresStore persists audit events in the sync_runs table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed audit store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Append(ctx context.Context, event Event) error {
	detail := event.Detail
	if detail == nil {
		detail = map[string]any{}
	}
	detailJSON, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal audit detail: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sync_runs (id, run_id, event_id, action, outcome, detail, recorded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.New(), uuid.UUID(event.RunID), event.EventID, string(event.Action), event.Outcome, detailJSON, event.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sync run event: %w", err)
	}
	return nil
}

// ListByEvent returns up to limit events for an event id, newest first.
func (s *PostgresStore) ListByEvent(ctx context.Context, eventID string, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, event_id, action, outcome, detail, recorded_at
		 FROM sync_runs WHERE event_id = $1
		 ORDER BY recorded_at DESC LIMIT $2`,
		eventID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sync run events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var (
			event      Event
			rawID      uuid.UUID
			action     string
			detailJSON []byte
		)
		if err := rows.Scan(&rawID, &event.EventID, &action, &event.Outcome, &detailJSON, &event.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan sync run event: %w", err)
		}
		event.RunID = id.RunID(rawID)
		event.Action = Action(action)
		if len(detailJSON) > 0 {
			if err := json.Unmarshal(detailJSON, &event.Detail); err != nil {
				return nil, fmt.Errorf("unmarshal audit detail: %w", err)
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sync run events: %w", err)
	}
	return events, nil
}

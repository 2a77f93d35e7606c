// Package audit records sync-run lifecycle events: who triggered a run, what
// it did, and how it ended. Events are persisted for the admin history view
// and, when Kafka is configured, published for downstream consumers.
//
// Recording is fail-open: a sync run never fails because its audit trail
// could not be written.
package audit

import (
	"context"
	"time"

	id "checkinhub/pkg/domain"
)

// Action names a sync-run lifecycle transition.
type Action string

const (
	ActionRunStarted   Action = "sync_run_started"
	ActionRunCompleted Action = "sync_run_completed"
	ActionRunHalted    Action = "sync_run_halted"
	ActionRunFailed    Action = "sync_run_failed"
)

// Event is one recorded lifecycle transition.
type Event struct {
	RunID      id.RunID       `json:"run_id"`
	EventID    string         `json:"event_id"`
	Action     Action         `json:"action"`
	Outcome    string         `json:"outcome,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
	RecordedAt time.Time      `json:"recorded_at"`
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByEvent(ctx context.Context, eventID string, limit int) ([]Event, error)
}

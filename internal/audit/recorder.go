package audit

import (
	"context"
	"log/slog"

	id "checkinhub/pkg/domain"
	"checkinhub/pkg/requestcontext"
)

// Recorder writes lifecycle events to the store and, when configured,
// publishes them to Kafka. Both paths are fail-open.
type Recorder struct {
	store     Store
	publisher *Publisher
	logger    *slog.Logger
}

// NewRecorder creates a recorder. publisher may be nil (Kafka not configured).
func NewRecorder(store Store, publisher *Publisher, logger *slog.Logger) *Recorder {
	return &Recorder{store: store, publisher: publisher, logger: logger}
}

// Record persists and publishes one lifecycle event. Failures are logged and
// swallowed: the audit trail must never fail a sync run.
func (r *Recorder) Record(ctx context.Context, runID id.RunID, eventID string, action Action, outcome string, detail map[string]any) {
	event := Event{
		RunID:      runID,
		EventID:    eventID,
		Action:     action,
		Outcome:    outcome,
		Detail:     detail,
		RecordedAt: requestcontext.Now(ctx),
	}

	if err := r.store.Append(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", action,
			"event_id", eventID,
			"error", err,
		)
	}
	if r.publisher != nil {
		r.publisher.Publish(ctx, event)
	}
}

// History returns the most recent lifecycle events for an event id.
func (r *Recorder) History(ctx context.Context, eventID string, limit int) ([]Event, error) {
	return r.store.ListByEvent(ctx, eventID, limit)
}

// Package service implements the ticketing-source reconciliation run: fetch
// orders from the provider, upsert human attendees, then rebuild each owner's
// pet set, with a stop-on-permission-error protocol throughout.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	attmodels "checkinhub/internal/attendee/models"
	"checkinhub/internal/audit"
	syncmetrics "checkinhub/internal/sync/metrics"
	"checkinhub/internal/sync/models"
	"checkinhub/internal/synclock"
	"checkinhub/internal/ticketsource"
	id "checkinhub/pkg/domain"
	dErrors "checkinhub/pkg/domain-errors"
	pkgemail "checkinhub/pkg/email"
	"checkinhub/pkg/platform/sentinel"
)

// Syncer orchestrates sync runs. At most one run per event is in flight at a
// time: concurrent in-process triggers join the same run via singleflight,
// and the locker fences out other replicas.
type Syncer struct {
	source    OrderSource
	attendees AttendeeStore
	pets      PetStore
	lock      synclock.Locker
	recorder  *audit.Recorder
	metrics   *syncmetrics.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer

	preservePetStatus bool
	lockTTL           time.Duration

	group singleflight.Group
}

// Option configures the Syncer.
type Option func(*Syncer)

// WithMetrics sets the metrics collector.
func WithMetrics(m *syncmetrics.Metrics) Option {
	return func(s *Syncer) {
		s.metrics = m
	}
}

// WithRecorder sets the audit recorder for run lifecycle events.
func WithRecorder(r *audit.Recorder) Option {
	return func(s *Syncer) {
		s.recorder = r
	}
}

// WithLocker overrides the in-process locker, typically with the Redis
// implementation when running more than one replica.
func WithLocker(l synclock.Locker) Option {
	return func(s *Syncer) {
		s.lock = l
	}
}

// WithPreservePetStatus carries a pet's vaccine upload status across re-syncs
// by exact name match instead of resetting it with the full-replace write.
func WithPreservePetStatus(preserve bool) Option {
	return func(s *Syncer) {
		s.preservePetStatus = preserve
	}
}

// New constructs a Syncer.
func New(source OrderSource, attendees AttendeeStore, pets PetStore, logger *slog.Logger, opts ...Option) *Syncer {
	s := &Syncer{
		source:    source,
		attendees: attendees,
		pets:      pets,
		lock:      synclock.NewInMemory(),
		logger:    logger,
		tracer:    otel.Tracer("checkinhub/sync"),
		lockTTL:   2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one sync for the event. The returned Result is the single
// pass/fail verdict; the caller should re-fetch persisted state afterwards
// regardless of outcome, since a halted run keeps its partial writes.
//
// An error return means the run never started (bad input, or another replica
// holds the sync lock).
func (s *Syncer) Run(ctx context.Context, eventID string) (models.Result, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return models.Result{}, dErrors.New(dErrors.CodeInvalidInput, "event id is required")
	}

	v, err, _ := s.group.Do(eventID, func() (any, error) {
		token, acquired, lockErr := s.lock.TryAcquire(ctx, eventID, s.lockTTL)
		if lockErr != nil {
			// The lock is a robustness fence, not a correctness dependency
			// for a single replica: singleflight already holds here.
			s.logger.WarnContext(ctx, "sync lock unavailable, proceeding unfenced",
				"event_id", eventID,
				"error", lockErr,
			)
		} else if !acquired {
			return nil, dErrors.New(dErrors.CodeConflict, "a sync for this event is already in progress")
		} else {
			defer func() {
				if releaseErr := s.lock.Release(context.WithoutCancel(ctx), eventID, token); releaseErr != nil {
					s.logger.WarnContext(ctx, "failed to release sync lock",
						"event_id", eventID,
						"error", releaseErr,
					)
				}
			}()
		}
		return s.run(ctx, eventID), nil
	})
	if err != nil {
		return models.Result{}, err
	}
	return v.(models.Result), nil
}

func (s *Syncer) run(ctx context.Context, eventID string) models.Result {
	start := time.Now()
	runID := id.RunID(uuid.New())

	ctx, span := s.tracer.Start(ctx, "sync.run",
		trace.WithAttributes(attribute.String("event.id", eventID)),
	)
	defer span.End()

	logger := s.logger.With("run_id", runID.String(), "event_id", eventID)
	s.record(ctx, runID, eventID, audit.ActionRunStarted, "", nil)

	var stats models.Stats

	logger.InfoContext(ctx, "sync run started", "phase", "fetching")
	exitPhase := s.enterPhase("fetching")
	batch, err := s.source.FetchOrders(ctx, eventID)
	exitPhase()
	if err != nil {
		kind, message := classifyFetch(err)
		logger.ErrorContext(ctx, "order fetch failed", "error_kind", kind, "error", err)
		return s.finish(ctx, span, runID, eventID, start, models.Failure(kind, message, stats))
	}

	if batch.EventID == "" {
		logger.ErrorContext(ctx, "provider response carried no event id")
		return s.finish(ctx, span, runID, eventID, start, models.Failure(
			models.ErrKindMissingEventID,
			"the ticketing provider response did not identify the event",
			stats,
		))
	}

	if len(batch.Orders) == 0 {
		// Not an error: a clean event with nothing to reconcile must still
		// report success so re-syncs stay idempotent.
		logger.WarnContext(ctx, "provider returned no orders")
	}

	logger.InfoContext(ctx, "processing orders", "phase", "processing_orders", "orders", len(batch.Orders))
	exitPhase = s.enterPhase("processing_orders")
	halted := s.upsertHumans(ctx, batch, &stats, logger)
	exitPhase()
	if halted {
		return s.finish(ctx, span, runID, eventID, start, rlsFailure(stats))
	}

	logger.InfoContext(ctx, "aggregating pets", "phase", "aggregating_pets")
	owners := aggregatePets(batch.Orders)

	logger.InfoContext(ctx, "replacing pets", "phase", "replacing_pets", "owners", len(owners))
	exitPhase = s.enterPhase("replacing_pets")
	for _, owner := range owners {
		if halted := s.replacePets(ctx, owner, batch.EventID, &stats, logger); halted {
			exitPhase()
			return s.finish(ctx, span, runID, eventID, start, rlsFailure(stats))
		}
	}
	exitPhase()

	logger.InfoContext(ctx, "sync run completed",
		"phase", "done",
		"orders", stats.Orders,
		"attendees_upserted", stats.AttendeesUpserted,
		"pets_replaced", stats.PetsReplaced,
		"skipped_no_email", stats.SkippedNoEmail,
		"write_errors", stats.WriteErrors,
	)
	return s.finish(ctx, span, runID, eventID, start, models.Result{OK: true, Stats: stats})
}

// upsertHumans walks every ticket of every non-cancelled order and upserts
// the human ones. Returns true when a permission denial halted the run.
func (s *Syncer) upsertHumans(ctx context.Context, batch *models.OrderBatch, stats *models.Stats, logger *slog.Logger) bool {
	for _, order := range batch.Orders {
		stats.Orders++
		if order.Cancelled() {
			stats.CancelledOrders++
			continue
		}
		for _, ticket := range order.Attendees {
			email := ticket.Email()
			if email == "" {
				stats.SkippedNoEmail++
				logger.DebugContext(ctx, "skipping ticket without email",
					"order_id", order.ID,
					"ticket_id", ticket.ID,
				)
				continue
			}
			if models.IsPetTicket(ticket) {
				// Pets are handled by the aggregation pass after all
				// orders are processed.
				continue
			}

			attendee := &attmodels.Attendee{
				Email:      email,
				Name:       pkgemail.DisplayName(ticket.FirstName(), ticket.LastName(), email),
				ExternalID: ticket.ID,
				EventID:    batch.EventID,
				OrderID:    order.ID,
			}
			if err := s.attendees.Upsert(ctx, attendee); err != nil {
				if errors.Is(err, sentinel.ErrPermissionDenied) {
					logger.ErrorContext(ctx, "attendee upsert denied by row-level security, halting run",
						"email", email,
						"error", err,
					)
					return true
				}
				// Row-specific failures are best-effort: log and move on.
				stats.WriteErrors++
				logger.ErrorContext(ctx, "attendee upsert failed",
					"email", email,
					"error", err,
				)
				continue
			}
			stats.AttendeesUpserted++
		}
	}
	return false
}

// replacePets rebuilds one owner's pet set: delete everything for
// (owner_email, event_id), then insert the run's pets in order. Owners are
// processed strictly sequentially by the caller so delete/insert cycles never
// interleave. Returns true when a permission denial halted the run.
func (s *Syncer) replacePets(ctx context.Context, owner ownerPets, eventID string, stats *models.Stats, logger *slog.Logger) bool {
	var previousStatus map[string]bool
	if s.preservePetStatus {
		existing, err := s.pets.ListByOwner(ctx, owner.Email, eventID)
		if err != nil {
			logger.WarnContext(ctx, "could not read existing pets, statuses will reset",
				"owner_email", owner.Email,
				"error", err,
			)
		} else {
			previousStatus = make(map[string]bool, len(existing))
			for _, p := range existing {
				if p.VaccineUploadStatus {
					previousStatus[p.Name] = true
				}
			}
		}
	}

	if err := s.pets.DeleteByOwner(ctx, owner.Email, eventID); err != nil {
		if errors.Is(err, sentinel.ErrPermissionDenied) {
			logger.ErrorContext(ctx, "pet delete denied by row-level security, halting run",
				"owner_email", owner.Email,
				"error", err,
			)
			return true
		}
		stats.WriteErrors++
		logger.ErrorContext(ctx, "pet delete failed, skipping owner to avoid duplicates",
			"owner_email", owner.Email,
			"error", err,
		)
		return false
	}

	for i, raw := range owner.Pets {
		name := petName(raw, i)
		pet := &attmodels.Pet{
			Name:                name,
			OwnerEmail:          owner.Email,
			EventID:             eventID,
			VaccineUploadStatus: previousStatus[name],
		}
		if err := s.pets.Insert(ctx, pet); err != nil {
			if errors.Is(err, sentinel.ErrPermissionDenied) {
				logger.ErrorContext(ctx, "pet insert denied by row-level security, halting run",
					"owner_email", owner.Email,
					"pet", name,
					"error", err,
				)
				return true
			}
			stats.WriteErrors++
			logger.ErrorContext(ctx, "pet insert failed",
				"owner_email", owner.Email,
				"pet", name,
				"error", err,
			)
			continue
		}
		stats.PetsReplaced++
	}
	return false
}

func (s *Syncer) finish(ctx context.Context, span trace.Span, runID id.RunID, eventID string, start time.Time, result models.Result) models.Result {
	outcome := "ok"
	action := audit.ActionRunCompleted
	if !result.OK {
		outcome = string(result.Kind)
		action = audit.ActionRunFailed
		if result.Kind == models.ErrKindRLS {
			action = audit.ActionRunHalted
		}
		span.SetAttributes(attribute.String("sync.error_kind", outcome))
	}

	s.record(ctx, runID, eventID, action, outcome, map[string]any{
		"orders":             result.Stats.Orders,
		"attendees_upserted": result.Stats.AttendeesUpserted,
		"pets_replaced":      result.Stats.PetsReplaced,
		"write_errors":       result.Stats.WriteErrors,
	})

	if s.metrics != nil {
		s.metrics.ObserveRun(outcome, time.Since(start))
		s.metrics.AddAttendeesUpserted(result.Stats.AttendeesUpserted)
		s.metrics.AddPetsReplaced(result.Stats.PetsReplaced)
		s.metrics.AddWriteErrors(result.Stats.WriteErrors)
	}
	return result
}

func (s *Syncer) enterPhase(phase string) func() {
	if s.metrics == nil {
		return func() {}
	}
	return s.metrics.EnterPhase(phase)
}

func (s *Syncer) record(ctx context.Context, runID id.RunID, eventID string, action audit.Action, outcome string, detail map[string]any) {
	if s.recorder != nil {
		s.recorder.Record(ctx, runID, eventID, action, outcome, detail)
	}
}

func rlsFailure(stats models.Stats) models.Result {
	return models.Failure(
		models.ErrKindRLS,
		"a database write was denied by row-level security; check the service role policies, then sync again",
		stats,
	)
}

// classifyFetch folds a fetch failure into the result taxonomy. Anything
// that is not a classified provider error is treated as a connection fault.
func classifyFetch(err error) (models.ErrorKind, string) {
	var terr *ticketsource.Error
	if errors.As(err, &terr) {
		return terr.Kind, terr.Message
	}
	return models.ErrKindConnection, "could not reach the ticketing provider"
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"checkinhub/internal/attendee/models"
	"checkinhub/internal/audit"
	syncmodels "checkinhub/internal/sync/models"
	"checkinhub/internal/sync/service"
	id "checkinhub/pkg/domain"
	dErrors "checkinhub/pkg/domain-errors"
	"checkinhub/pkg/platform/httputil"
	"checkinhub/pkg/requestcontext"

	"log/slog"
)

// SyncService defines the sync operations the HTTP layer exposes.
type SyncService interface {
	Run(ctx context.Context, eventID string) (syncmodels.Result, error)
	Roster(ctx context.Context, eventID string) (*service.Roster, error)
	MarkAttendeeVaccineUploaded(ctx context.Context, eventID, attendeeEmail string) error
	MarkPetVaccineUploaded(ctx context.Context, petID id.PetID) error
}

// HistoryReader reads back recent sync-run lifecycle events.
type HistoryReader interface {
	History(ctx context.Context, eventID string, limit int) ([]audit.Event, error)
}

// Handler wires sync endpoints to the sync service.
type Handler struct {
	service SyncService
	history HistoryReader
	logger  *slog.Logger
}

// New constructs a sync handler. history may be nil when the audit trail is
// not configured.
func New(service SyncService, history HistoryReader, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		history: history,
		logger:  logger,
	}
}

// Register mounts sync endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events/{eventID}/sync", h.HandleSync)
	r.Get("/events/{eventID}/roster", h.HandleRoster)
	r.Get("/events/{eventID}/sync-history", h.HandleSyncHistory)
	r.Post("/events/{eventID}/attendees/{email}/vaccine", h.HandleAttendeeVaccine)
	r.Post("/events/{eventID}/pets/{petID}/vaccine", h.HandlePetVaccine)
}

// HandleSync triggers one sync run and reports its verdict. The response
// status differentiates remediation: gateway errors mean "check the provider
// or try again", 500 with rls_error means "fix the write policies".
func (h *Handler) HandleSync(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")
	start := time.Now()

	result, err := h.service.Run(ctx, eventID)
	if err != nil {
		h.logger.WarnContext(ctx, "sync run rejected",
			"request_id", requestcontext.RequestID(ctx),
			"event_id", eventID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sync run finished",
		"request_id", requestcontext.RequestID(ctx),
		"event_id", eventID,
		"ok", result.OK,
		"error_kind", string(result.Kind),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, statusForResult(result), result)
}

func (h *Handler) HandleRoster(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	roster, err := h.service.Roster(ctx, eventID)
	if err != nil {
		h.logger.ErrorContext(ctx, "roster fetch failed",
			"request_id", requestcontext.RequestID(ctx),
			"event_id", eventID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toRosterResponse(roster))
}

func (h *Handler) HandleSyncHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")

	if h.history == nil {
		httputil.WriteJSON(w, http.StatusOK, historyResponse{EventID: eventID, Runs: []audit.Event{}})
		return
	}
	events, err := h.history.History(ctx, eventID, 50)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load sync history"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, historyResponse{EventID: eventID, Runs: events})
}

func (h *Handler) HandleAttendeeVaccine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	eventID := chi.URLParam(r, "eventID")
	email := chi.URLParam(r, "email")

	if err := h.service.MarkAttendeeVaccineUploaded(ctx, eventID, email); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"vaccine_upload_status": true})
}

func (h *Handler) HandlePetVaccine(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	petID, err := id.ParsePetID(chi.URLParam(r, "petID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.MarkPetVaccineUploaded(ctx, petID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]bool{"vaccine_upload_status": true})
}

// statusForResult maps a run verdict to an HTTP status.
func statusForResult(result syncmodels.Result) int {
	if result.OK {
		return http.StatusOK
	}
	switch result.Kind {
	case syncmodels.ErrKindConnection:
		return http.StatusGatewayTimeout
	case syncmodels.ErrKindProviderAuth, syncmodels.ErrKindProviderNotFound, syncmodels.ErrKindProvider:
		return http.StatusBadGateway
	case syncmodels.ErrKindMissingEventID:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type historyResponse struct {
	EventID string        `json:"event_id"`
	Runs    []audit.Event `json:"runs"`
}

type rosterResponse struct {
	EventID     string        `json:"event_id"`
	Attendees   []rosterEntry `json:"attendees"`
	UnownedPets []rosterPet   `json:"unowned_pets,omitempty"`
}

type rosterEntry struct {
	Email               string      `json:"email"`
	Name                string      `json:"name"`
	OrderID             string      `json:"order_id,omitempty"`
	VaccineUploadStatus bool        `json:"vaccine_upload_status"`
	Pets                []rosterPet `json:"pets,omitempty"`
}

type rosterPet struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	OwnerEmail          string `json:"owner_email"`
	VaccineUploadStatus bool   `json:"vaccine_upload_status"`
}

func toRosterResponse(roster *service.Roster) rosterResponse {
	resp := rosterResponse{
		EventID:   roster.EventID,
		Attendees: make([]rosterEntry, 0, len(roster.Entries)),
	}
	for _, entry := range roster.Entries {
		resp.Attendees = append(resp.Attendees, rosterEntry{
			Email:               entry.Attendee.Email,
			Name:                entry.Attendee.Name,
			OrderID:             entry.Attendee.OrderID,
			VaccineUploadStatus: entry.Attendee.VaccineUploadStatus,
			Pets:                toRosterPets(entry.Pets),
		})
	}
	resp.UnownedPets = toRosterPets(roster.UnownedPets)
	return resp
}

func toRosterPets(pets []*models.Pet) []rosterPet {
	out := make([]rosterPet, 0, len(pets))
	for _, p := range pets {
		out = append(out, rosterPet{
			ID:                  p.ID.String(),
			Name:                p.Name,
			OwnerEmail:          p.OwnerEmail,
			VaccineUploadStatus: p.VaccineUploadStatus,
		})
	}
	return out
}

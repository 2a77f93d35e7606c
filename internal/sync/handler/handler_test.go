package handler

//go:generate mockgen -source=handler.go -destination=mocks/sync-mocks.go -package=mocks SyncService

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	attmodels "checkinhub/internal/attendee/models"
	"checkinhub/internal/audit"
	"checkinhub/internal/sync/handler/mocks"
	syncmodels "checkinhub/internal/sync/models"
	"checkinhub/internal/sync/service"
	id "checkinhub/pkg/domain"
	dErrors "checkinhub/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockSyncService
	history *mocks.MockHistoryReader
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockSyncService(s.ctrl)
	s.history = mocks.NewMockHistoryReader(s.ctrl)
	s.router = chi.NewRouter()
	New(s.service, s.history, slog.New(slog.DiscardHandler)).Register(s.router)
}

func (s *HandlerSuite) do(method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *HandlerSuite) TestHandleSync() {
	s.Run("successful run is 200", func() {
		s.service.EXPECT().
			Run(gomock.Any(), "evt-1").
			Return(syncmodels.Result{OK: true, Stats: syncmodels.Stats{Orders: 3, AttendeesUpserted: 2}}, nil)

		rec := s.do(http.MethodPost, "/events/evt-1/sync")
		s.Equal(http.StatusOK, rec.Code)

		var result syncmodels.Result
		s.decode(rec, &result)
		s.True(result.OK)
		s.Equal(2, result.Stats.AttendeesUpserted)
	})

	s.Run("failure kinds map to statuses", func() {
		tests := []struct {
			kind   syncmodels.ErrorKind
			status int
		}{
			{syncmodels.ErrKindConnection, http.StatusGatewayTimeout},
			{syncmodels.ErrKindProviderAuth, http.StatusBadGateway},
			{syncmodels.ErrKindProviderNotFound, http.StatusBadGateway},
			{syncmodels.ErrKindProvider, http.StatusBadGateway},
			{syncmodels.ErrKindMissingEventID, http.StatusUnprocessableEntity},
			{syncmodels.ErrKindRLS, http.StatusInternalServerError},
		}
		for _, tt := range tests {
			s.Run(string(tt.kind), func() {
				s.service.EXPECT().
					Run(gomock.Any(), "evt-1").
					Return(syncmodels.Failure(tt.kind, "boom", syncmodels.Stats{}), nil)

				rec := s.do(http.MethodPost, "/events/evt-1/sync")
				s.Equal(tt.status, rec.Code)

				var result syncmodels.Result
				s.decode(rec, &result)
				s.False(result.OK)
				s.Equal(tt.kind, result.Kind)
			})
		}
	})

	s.Run("rejected run surfaces the domain error", func() {
		s.service.EXPECT().
			Run(gomock.Any(), "evt-1").
			Return(syncmodels.Result{}, dErrors.New(dErrors.CodeConflict, "a sync for this event is already in progress"))

		rec := s.do(http.MethodPost, "/events/evt-1/sync")
		s.Equal(http.StatusConflict, rec.Code)

		var body map[string]string
		s.decode(rec, &body)
		s.Equal("conflict", body["error"])
	})
}

func (s *HandlerSuite) TestHandleRoster() {
	s.Run("renders attendees with their pets", func() {
		petID := id.PetID(uuid.New())
		s.service.EXPECT().
			Roster(gomock.Any(), "evt-1").
			Return(&service.Roster{
				EventID: "evt-1",
				Entries: []service.RosterEntry{{
					Attendee: &attmodels.Attendee{
						Email:               "jane@example.com",
						Name:                "Jane Doe",
						OrderID:             "ord-1",
						VaccineUploadStatus: true,
					},
					Pets: []*attmodels.Pet{{
						ID:         petID,
						Name:       "Rex",
						OwnerEmail: "jane@example.com",
						EventID:    "evt-1",
					}},
				}},
			}, nil)

		rec := s.do(http.MethodGet, "/events/evt-1/roster")
		s.Equal(http.StatusOK, rec.Code)

		var body rosterResponse
		s.decode(rec, &body)
		s.Equal("evt-1", body.EventID)
		s.Require().Len(body.Attendees, 1)
		s.Equal("jane@example.com", body.Attendees[0].Email)
		s.True(body.Attendees[0].VaccineUploadStatus)
		s.Require().Len(body.Attendees[0].Pets, 1)
		s.Equal(petID.String(), body.Attendees[0].Pets[0].ID)
	})

	s.Run("empty roster renders empty arrays, not null", func() {
		s.service.EXPECT().
			Roster(gomock.Any(), "evt-1").
			Return(&service.Roster{EventID: "evt-1"}, nil)

		rec := s.do(http.MethodGet, "/events/evt-1/roster")
		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"attendees":[]`)
	})

	s.Run("service error is translated", func() {
		s.service.EXPECT().
			Roster(gomock.Any(), "evt-1").
			Return(nil, dErrors.Wrap(errors.New("pq: broken"), dErrors.CodeInternal, "failed to load attendees"))

		rec := s.do(http.MethodGet, "/events/evt-1/roster")
		s.Equal(http.StatusInternalServerError, rec.Code)
		s.NotContains(rec.Body.String(), "pq:", "infrastructure detail must not leak")
	})
}

func (s *HandlerSuite) TestHandleSyncHistory() {
	s.Run("returns recent runs", func() {
		runID := id.RunID(uuid.New())
		s.history.EXPECT().
			History(gomock.Any(), "evt-1", 50).
			Return([]audit.Event{{
				RunID:      runID,
				EventID:    "evt-1",
				Action:     audit.ActionRunCompleted,
				Outcome:    "ok",
				RecordedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
			}}, nil)

		rec := s.do(http.MethodGet, "/events/evt-1/sync-history")
		s.Equal(http.StatusOK, rec.Code)

		var body historyResponse
		s.decode(rec, &body)
		s.Require().Len(body.Runs, 1)
		s.Equal(audit.ActionRunCompleted, body.Runs[0].Action)
	})

	s.Run("no history reader renders an empty list", func() {
		router := chi.NewRouter()
		New(s.service, nil, slog.New(slog.DiscardHandler)).Register(router)

		req := httptest.NewRequest(http.MethodGet, "/events/evt-1/sync-history", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		s.Equal(http.StatusOK, rec.Code)
		s.Contains(rec.Body.String(), `"runs":[]`)
	})
}

func (s *HandlerSuite) TestHandleAttendeeVaccine() {
	s.Run("marks the attendee", func() {
		s.service.EXPECT().
			MarkAttendeeVaccineUploaded(gomock.Any(), "evt-1", "jane@example.com").
			Return(nil)

		rec := s.do(http.MethodPost, "/events/evt-1/attendees/jane@example.com/vaccine")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("unknown attendee is 404", func() {
		s.service.EXPECT().
			MarkAttendeeVaccineUploaded(gomock.Any(), "evt-1", "nobody@example.com").
			Return(dErrors.New(dErrors.CodeNotFound, `attendee "nobody@example.com" is not registered for this event`))

		rec := s.do(http.MethodPost, "/events/evt-1/attendees/nobody@example.com/vaccine")
		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *HandlerSuite) TestHandlePetVaccine() {
	s.Run("marks the pet", func() {
		petID := id.PetID(uuid.New())
		s.service.EXPECT().
			MarkPetVaccineUploaded(gomock.Any(), petID).
			Return(nil)

		rec := s.do(http.MethodPost, "/events/evt-1/pets/"+petID.String()+"/vaccine")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("malformed pet id is 400 without touching the service", func() {
		rec := s.do(http.MethodPost, "/events/evt-1/pets/not-a-uuid/vaccine")
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

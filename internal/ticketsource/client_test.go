package ticketsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkinhub/internal/platform/config"
	"checkinhub/internal/sync/models"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(config.TicketingConfig{
		BaseURL:      srv.URL,
		Token:        "test-token",
		FetchTimeout: timeout,
	}, slog.New(slog.DiscardHandler))
}

func TestFetchOrders(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "/events/evt-1/orders", r.URL.Path)
			assert.Equal(t, "attendees,ticket_class", r.URL.Query().Get("expand"))

			fmt.Fprint(w, `{
				"event_id": "evt-1",
				"orders": [{
					"id": "ord-1",
					"status": "placed",
					"attendees": [{
						"id": "t-1",
						"ticket_class_name": "General Admission",
						"profile": {"email": "jane@example.com", "first_name": "Jane", "last_name": "Doe"}
					}]
				}]
			}`)
		}, time.Second)

		batch, err := client.FetchOrders(context.Background(), "evt-1")
		require.NoError(t, err)
		assert.Equal(t, "evt-1", batch.EventID)
		require.Len(t, batch.Orders, 1)
		require.Len(t, batch.Orders[0].Attendees, 1)
		assert.Equal(t, "jane@example.com", batch.Orders[0].Attendees[0].Email())
	})

	t.Run("follows continuation pagination", func(t *testing.T) {
		var pages int
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			pages++
			switch r.URL.Query().Get("continuation") {
			case "":
				fmt.Fprint(w, `{
					"event_id": "evt-1",
					"orders": [{"id": "ord-1", "status": "placed"}],
					"pagination": {"has_more_items": true, "continuation": "page-2"}
				}`)
			case "page-2":
				fmt.Fprint(w, `{
					"event_id": "evt-1",
					"orders": [{"id": "ord-2", "status": "placed"}],
					"pagination": {"has_more_items": false}
				}`)
			default:
				t.Errorf("unexpected continuation %q", r.URL.Query().Get("continuation"))
			}
		}, time.Second)

		batch, err := client.FetchOrders(context.Background(), "evt-1")
		require.NoError(t, err)
		assert.Equal(t, 2, pages)
		require.Len(t, batch.Orders, 2)
		assert.Equal(t, "ord-1", batch.Orders[0].ID)
		assert.Equal(t, "ord-2", batch.Orders[1].ID)
	})

	t.Run("drops records without ids", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"event_id": "evt-1",
				"orders": [
					{"status": "placed"},
					{"id": "ord-1", "status": "placed", "attendees": [
						{"ticket_class_name": "General Admission"},
						{"id": "t-1", "ticket_class_name": "General Admission"}
					]}
				]
			}`)
		}, time.Second)

		batch, err := client.FetchOrders(context.Background(), "evt-1")
		require.NoError(t, err)
		require.Len(t, batch.Orders, 1)
		assert.Len(t, batch.Orders[0].Attendees, 1)
	})

	t.Run("classifies http statuses", func(t *testing.T) {
		tests := []struct {
			status int
			kind   models.ErrorKind
		}{
			{http.StatusUnauthorized, models.ErrKindProviderAuth},
			{http.StatusForbidden, models.ErrKindProviderAuth},
			{http.StatusNotFound, models.ErrKindProviderNotFound},
			{http.StatusInternalServerError, models.ErrKindProvider},
		}
		for _, tt := range tests {
			t.Run(fmt.Sprint(tt.status), func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}, time.Second)

				_, err := client.FetchOrders(context.Background(), "evt-1")
				var terr *Error
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, tt.kind, terr.Kind)
				assert.Equal(t, tt.status, terr.Status)
			})
		}
	})

	t.Run("error inside a 200 envelope", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{
				"error": "NOT_FOUND",
				"error_description": "The event you requested does not exist.",
				"status_code": 404
			}`)
		}, time.Second)

		_, err := client.FetchOrders(context.Background(), "evt-1")
		var terr *Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, models.ErrKindProviderNotFound, terr.Kind)
		assert.Equal(t, "The event you requested does not exist.", terr.Message)
	})

	t.Run("malformed body is a provider error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"event_id": "evt-1", "orders": [`)
		}, time.Second)

		_, err := client.FetchOrders(context.Background(), "evt-1")
		var terr *Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, models.ErrKindProvider, terr.Kind)
	})

	t.Run("fetch deadline covers all pages", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			fmt.Fprint(w, `{
				"event_id": "evt-1",
				"pagination": {"has_more_items": true, "continuation": "next"}
			}`)
		}, 150*time.Millisecond)

		// Page one fits in the deadline; the loop as a whole does not.
		_, err := client.FetchOrders(context.Background(), "evt-1")
		var terr *Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, models.ErrKindConnection, terr.Kind)
	})

	t.Run("unreachable host is a connection error", func(t *testing.T) {
		client := New(config.TicketingConfig{
			BaseURL:      "http://127.0.0.1:1",
			Token:        "test-token",
			FetchTimeout: time.Second,
		}, slog.New(slog.DiscardHandler))

		_, err := client.FetchOrders(context.Background(), "evt-1")
		var terr *Error
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, models.ErrKindConnection, terr.Kind)
	})
}

func TestErrorString(t *testing.T) {
	withStatus := &Error{Kind: models.ErrKindProviderAuth, Status: 401, Message: "bad key"}
	assert.Equal(t, "provider_auth_error (status 401): bad key", withStatus.Error())

	withoutStatus := &Error{Kind: models.ErrKindConnection, Message: "timeout"}
	assert.Equal(t, "connection_error: timeout", withoutStatus.Error())

	var target *Error
	assert.True(t, errors.As(fmt.Errorf("fetch: %w", withStatus), &target))
}

// Package httptransport assembles the HTTP surface: admin sync API behind
// JWT auth, plus health and metrics endpoints.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"checkinhub/internal/platform/middleware"
	synchandler "checkinhub/internal/sync/handler"
)

// HealthChecker reports readiness of a backing resource.
type HealthChecker func() error

// NewRouter wires all endpoints. The sync API sits under /api/v1 and is
// gated by the JWT validator when one is configured.
func NewRouter(sync *synchandler.Handler, validator middleware.JWTValidator, logger *slog.Logger, health []HealthChecker) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		for _, check := range health {
			if err := check(); err != nil {
				logger.ErrorContext(req.Context(), "health check failed", "error", err)
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unhealthy"))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RequireAdmin(validator, logger))
		sync.Register(api)
	})

	return r
}

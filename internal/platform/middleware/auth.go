package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"checkinhub/internal/jwttoken"
	"checkinhub/pkg/requestcontext"
)

// JWTValidator defines the interface for validating admin JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*jwttoken.Claims, error)
}

type contextKeyAdminEmail struct{}

// ContextKeyAdminEmail is exported for use in handlers and tests.
var ContextKeyAdminEmail = contextKeyAdminEmail{}

// GetAdminEmail retrieves the authenticated admin's email from the context.
func GetAdminEmail(ctx context.Context) string {
	email, ok := ctx.Value(ContextKeyAdminEmail).(string)
	if !ok {
		return ""
	}
	return email
}

// RequireAdmin enforces a bearer token on admin endpoints. A nil validator
// disables the check (local development without JWT_SIGNING_KEY).
func RequireAdmin(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			after, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(after)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = context.WithValue(ctx, ContextKeyAdminEmail, claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}

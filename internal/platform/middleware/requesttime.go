package middleware

import (
	"net/http"
	"time"

	"checkinhub/pkg/requestcontext"
)

// RequestTime pins "now" once per request so every row written while handling
// it carries the same timestamp. Stores read it via requestcontext.Now.
func RequestTime(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := requestcontext.WithTime(r.Context(), time.Now())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

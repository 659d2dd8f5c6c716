package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds a single request end to end.
const DefaultRequestTimeout = 30 * time.Second

// Timeout cancels the request context and answers 503 once the deadline
// passes. Streaming endpoints must be registered outside this middleware.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	if d <= 0 {
		d = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		inner := http.TimeoutHandler(next, d, "Request Timeout")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			inner.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

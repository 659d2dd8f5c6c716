package middleware

import (
	"net/http"
)

// DefaultMaxRequestSize caps request bodies at 1MB. Planner payloads are
// small; anything larger is either a mistake or abuse.
const DefaultMaxRequestSize int64 = 1 << 20

// MaxRequestSize bounds request body size. An oversized Content-Length
// declaration fails fast; chunked bodies are enforced by MaxBytesReader as
// the handler reads.
func MaxRequestSize(limit int64) func(http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

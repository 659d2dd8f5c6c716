package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ErrorResponse is the JSON body returned when a handler panics. It mirrors
// the envelope the handlers package writes so clients see one error shape.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// ErrorHandler recovers handler panics and answers with a generic 500.
// Panic details stay in the server log.
func ErrorHandler(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				logger.Error("panic_recovered",
					zap.Any("error", rec),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
				)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				body := ErrorResponse{
					Error:     "Internal Server Error",
					Message:   "An unexpected error occurred",
					Timestamp: time.Now().UTC().Format(time.RFC3339),
					Path:      r.URL.Path,
				}
				if err := json.NewEncoder(w).Encode(body); err != nil {
					logger.Error("failed_to_encode_error_response",
						zap.Error(err),
						zap.String("path", r.URL.Path),
					)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"

	logpkg "github.com/benvon/day-planner/internal/logger"
	"github.com/benvon/day-planner/internal/request"
	"go.uber.org/zap"
)

// Audit flags authorization failures and rate-limit hits in the log stream
// so they can be alerted on.
func Audit(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			var event string
			switch rec.status {
			case http.StatusUnauthorized, http.StatusForbidden:
				event = "security_event"
			case http.StatusTooManyRequests:
				event = "rate_limit_violation"
			default:
				return
			}

			logger.Warn(event,
				zap.Int("status_code", rec.status),
				zap.String("method", r.Method),
				zap.String("path", logpkg.SanitizePath(r.URL.Path)),
				zap.String("ip", logpkg.SanitizeString(request.ClientIP(r), logpkg.MaxGeneralStringLength)),
			)
		})
	}
}

// Package request holds helpers for reading client metadata off an
// incoming HTTP request.
package request

import (
	"net/http"
	"strings"
)

// ClientIP resolves the originating client address. Proxy headers win over
// the socket peer: first X-Forwarded-For entry, then X-Real-IP, then
// RemoteAddr.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

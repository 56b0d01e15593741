package middleware

import (
	"net"
	"net/http"
	"strconv"

	"github.com/janmarg/civicreport/internal/ratelimit"
)

// SubmissionLimiter throttles issue submissions through a Redis-backed
// manager; if the manager is nil, it no-ops and calls next. The reporter is
// identified by the X-User-ID header when present, falling back to the
// client IP for anonymous reports.
func SubmissionLimiter(m *ratelimit.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if m == nil {
				next.ServeHTTP(w, r)
				return
			}

			reporter := r.Header.Get("X-User-ID")
			if reporter == "" {
				reporter = r.RemoteAddr
				if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
					reporter = host
				}
			}

			allowed, reset, err := m.CheckSubmission(r.Context(), reporter)
			if err != nil {
				// Redis being down must not block reports
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(reset))
				write429(w)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

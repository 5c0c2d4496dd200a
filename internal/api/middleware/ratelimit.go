package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gymdesk/gym-api/internal/api/shared"
	"github.com/gymdesk/gym-api/internal/platform/logger"
	"github.com/gymdesk/gym-api/internal/ratelimit"
	"github.com/gymdesk/gym-api/internal/redact"
)

// RateLimit limits requests per client IP under scope. A nil limiter
// disables limiting. Limiter failures let the request through. onLimited,
// when set, is called for every rejected request.
func RateLimit(limiter ratelimit.Limiter, scope string, onLimited func()) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if limiter == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), scope+":"+clientIP(r))
			if err != nil {
				logger.FromContext(r.Context()).Warn("rate limiter unavailable, allowing request",
					"scope", scope, "error", redact.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
			if !res.Allowed {
				secs := int((res.RetryAfter + time.Second - 1) / time.Second)
				if secs < 1 {
					secs = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(secs))
				if onLimited != nil {
					onLimited()
				}
				shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
					"Too many requests, try again later", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP returns the host part of RemoteAddr. chi's RealIP middleware
// upstream rewrites RemoteAddr from proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/httprate"
	"github.com/goccy/go-json"
	"github.com/templui/habitkit/internal/metrics"
)

// RateLimitAuth limits sign-in attempts per client IP.
func RateLimitAuth(limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return rateLimit("auth", limit, window, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Too many requests. Please try again later.", http.StatusTooManyRequests)
	})
}

// RateLimitLogs limits habit log writes per client IP. The 429 body is JSON
// so API callers can tell it apart from other failures.
func RateLimitLogs(limit int, window time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return rateLimit("logs", limit, window, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limit exceeded"})
	})
}

func rateLimit(name string, limit int, window time.Duration, onLimit http.HandlerFunc) func(http.HandlerFunc) http.HandlerFunc {
	limiter := httprate.Limit(limit, window,
		httprate.WithKeyFuncs(func(r *http.Request) (string, error) {
			return getClientIP(r), nil
		}),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("rate limit exceeded",
				"limiter", name,
				"ip", getClientIP(r),
				"path", r.URL.Path,
			)
			metrics.RateLimitedTotal.WithLabelValues(name).Inc()
			onLimit(w, r)
		}),
	)

	return func(next http.HandlerFunc) http.HandlerFunc {
		return limiter(next).ServeHTTP
	}
}

// getClientIP extracts real client IP from request
func getClientIP(r *http.Request) string {
	// first hop set by the proxy or load balancer
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	xri := r.Header.Get("X-Real-IP")
	if xri != "" {
		return strings.TrimSpace(xri)
	}

	ip := r.RemoteAddr
	if idx := strings.LastIndex(ip, ":"); idx != -1 {
		ip = ip[:idx]
	}

	return ip
}

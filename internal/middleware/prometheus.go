package middleware

import (
	"net/http"
	"time"

	"github.com/templui/habitkit/internal/metrics"
)

// PrometheusMetrics records request counts and latency per route pattern.
// It must wrap the mux directly: the mux sets r.Pattern on the request it
// receives, which is only this one when no middleware sits in between.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/metrics" {
			next.ServeHTTP(w, r)
			return
		}

		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()
		rw := newStatusWriter(w)

		next.ServeHTTP(rw, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		metrics.RecordRequest(r.Method, route, rw.statusCode, time.Since(start))
	})
}

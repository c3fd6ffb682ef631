// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Total number of requests rejected by a rate limiter",
		},
		[]string{"limiter"},
	)

	// op is "upsert" or "delete"; status is the log status, or "none" on delete.
	HabitLogWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_log_writes_total",
			Help: "Total number of habit log writes",
		},
		[]string{"op", "status"},
	)

	HabitLogValidationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "habit_log_validation_failures_total",
			Help: "Total number of habit log writes rejected by validation",
		},
	)

	MagicLinksSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_magic_links_sent_total",
			Help: "Total number of magic link emails sent",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "habit_exports_total",
			Help: "Total number of habit exports",
		},
		[]string{"target"},
	)
)

func RecordRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		HTTPActiveRequests.Inc()
	} else {
		HTTPActiveRequests.Dec()
	}
}

func RecordLogWrite(op, status string) {
	HabitLogWrites.WithLabelValues(op, status).Inc()
}

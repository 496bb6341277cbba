// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "academy_http_requests_total",
			Help: "Total number of HTTP requests by route pattern and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "academy_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Accounts
	Registrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_registrations_total",
			Help: "Total number of successful user registrations",
		},
	)

	LoginFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_login_failures_total",
			Help: "Total number of rejected login attempts",
		},
	)

	// Challenges
	Submissions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_challenge_submissions_total",
			Help: "Total number of challenge submissions received",
		},
	)

	// Leaderboard cache
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_leaderboard_cache_hits_total",
			Help: "Total number of leaderboard cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_leaderboard_cache_misses_total",
			Help: "Total number of leaderboard cache misses",
		},
	)

	// WebSocket
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "academy_websocket_connections",
			Help: "Current number of connected leaderboard stream clients",
		},
	)

	WSDroppedClients = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_websocket_dropped_clients_total",
			Help: "Total number of stream clients dropped for falling behind",
		},
	)

	WeeklyResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "academy_weekly_resets_total",
			Help: "Total number of weekly points resets performed",
		},
	)
)

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// Package observability provides metrics and tracing.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RatingsSubmitted counts rating submissions by outcome.
	RatingsSubmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_ratings_submitted_total",
		Help: "Total number of rating submissions by outcome",
	}, []string{"outcome"})

	// PointsAwarded counts points credited to recipe owners.
	PointsAwarded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipebox_points_awarded_total",
		Help: "Total number of points credited to recipe owners",
	})

	// Redemptions counts redemption attempts by outcome.
	Redemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_redemptions_total",
		Help: "Total number of redemption attempts by outcome",
	}, []string{"outcome"})

	// VouchersIssued counts vouchers created by successful redemptions.
	VouchersIssued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "recipebox_vouchers_issued_total",
		Help: "Total number of vouchers issued",
	})

	// LeaderboardCache counts leaderboard cache lookups by result.
	LeaderboardCache = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_leaderboard_cache_total",
		Help: "Leaderboard cache lookups by result",
	}, []string{"result"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recipebox_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// WebSocketConnectionsTotal is the gauge of active notification sockets.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "recipebox_websocket_connections_total",
		Help: "Total number of active WebSocket connections",
	})

	// WebSocketBackpressureDrops counts messages dropped due to backpressure by hub and reason.
	WebSocketBackpressureDrops = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "recipebox_websocket_backpressure_drops_total",
		Help: "Total number of WebSocket messages dropped due to backpressure",
	}, []string{"hub", "reason"})
)

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

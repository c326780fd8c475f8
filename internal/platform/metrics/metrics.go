// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ProviderRequests counts outbound market data requests.
	ProviderRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_provider_requests_total",
			Help: "Total number of market data provider requests",
		},
		[]string{"endpoint", "status"}, // status: success|error|rate_limited
	)

	// ProviderLatency tracks provider round-trip time.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "watchlist_provider_latency_seconds",
			Help:    "Market data provider request latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"endpoint"},
	)

	// ProfileCacheLookups counts profile cache hits and misses.
	ProfileCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_profile_cache_lookups_total",
			Help: "Profile cache lookups by result",
		},
		[]string{"result"}, // hit|miss
	)

	// EnrichDuration tracks the duration of a full Enrich call.
	EnrichDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "watchlist_enrich_duration_seconds",
			Help:    "Watchlist enrichment duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	// EnrichFieldFailures counts per-symbol fetches that degraded to nil fields.
	EnrichFieldFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_enrich_field_failures_total",
			Help: "Per-symbol market data fetches that degraded to empty fields",
		},
		[]string{"endpoint"}, // quote|profile
	)

	// WatchlistMutations counts add/remove outcomes.
	WatchlistMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "watchlist_mutations_total",
			Help: "Watchlist add/remove requests by outcome",
		},
		[]string{"action", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		ProviderRequests,
		ProviderLatency,
		ProfileCacheLookups,
		EnrichDuration,
		EnrichFieldFailures,
		WatchlistMutations,
	)
}

// Handler exposes the default registry for the gin router.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

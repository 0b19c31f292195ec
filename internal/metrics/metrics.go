// Package metrics exposes Prometheus instrumentation for the
// recommendation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_generation_seconds",
			Help:    "Time spent generating one user's recommendations (cache misses only)",
			Buckets: prometheus.DefBuckets,
		},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Total recommendation cache hits by kind",
		},
		[]string{"kind"}, // "personalized", "similar"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Total recommendation cache misses by kind",
		},
		[]string{"kind"},
	)

	BatchUsersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_users_processed_total",
			Help: "Total users processed by batch recommendation runs, by outcome",
		},
		[]string{"status"}, // "success", "failed"
	)
)

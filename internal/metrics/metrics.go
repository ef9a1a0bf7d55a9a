// Package metrics registers the Prometheus counters exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NotificationsSent counts created notifications by type.
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_sent_total",
		Help: "Total number of notifications created, by type.",
	}, []string{"type"})

	// NotificationsDeadLettered counts notifications parked after retry exhaustion.
	NotificationsDeadLettered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifications_dead_lettered_total",
		Help: "Total number of notifications moved to the dead-letter topic.",
	})

	// CacheHits counts read queries served from the cache.
	CacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_hits_total",
		Help: "Total number of cache hits.",
	})

	// CacheMisses counts read queries that fell through to the store.
	CacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cache_misses_total",
		Help: "Total number of cache misses.",
	})

	// BatchJobsProcessed counts finished batch jobs by type and outcome.
	BatchJobsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "batch_jobs_processed_total",
		Help: "Total number of batch jobs processed, by type and status.",
	}, []string{"type", "status"})
)

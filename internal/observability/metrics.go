// Package observability holds tracing setup and application-level metrics.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caltrack_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// VisionRequests counts calls to the vision collaborator by outcome.
	VisionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caltrack_vision_requests_total",
		Help: "Total number of image analysis requests by outcome",
	}, []string{"outcome"})

	// LogEntriesCreated counts created log entries by collection.
	LogEntriesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "caltrack_log_entries_created_total",
		Help: "Total number of log entries created by collection",
	}, []string{"collection"})
)

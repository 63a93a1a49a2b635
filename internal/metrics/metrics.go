package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestion
	IngestRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibe_ingest_runs_total",
			Help: "Ingestion runs by outcome",
		},
		[]string{"outcome"}, // "ok", "skipped", "source_error", "store_error"
	)

	IngestRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibe_ingest_records_total",
			Help: "External records reconciled into the catalog, by action",
		},
		[]string{"action"}, // "insert", "merge"
	)

	NormalizeFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibe_normalize_fallbacks_total",
			Help: "Fields that fell back to a default during normalization",
		},
		[]string{"field"}, // "category", "event_time", "coordinates"
	)

	// Circuit breakers around external services
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "vibe_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibe_circuit_breaker_requests_total",
			Help: "Requests through circuit breakers by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// User actions
	InterestsMarked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibe_interests_marked_total",
			Help: "Successful interested actions",
		},
	)

	IcebreakersServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibe_icebreakers_total",
			Help: "Icebreakers returned, by source",
		},
		[]string{"source"}, // "ai", "fallback"
	)

	// HTTP
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibe_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// GinMiddleware records request latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			route,
			strconv.Itoa(c.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}

package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// OrdersTotal tracks checkout outcomes: placed, placed_locally, rejected
	OrdersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_orders_total",
			Help: "Total number of checkout attempts by outcome",
		},
		[]string{"outcome"},
	)

	// OrderAmount tracks order totals
	OrderAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pos_order_amount",
			Help:    "Order totals including tax",
			Buckets: []float64{100, 250, 500, 1000, 2500, 5000},
		},
	)

	// CircuitBreakerState tracks the upstream breaker (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit_name"},
	)

	// CircuitBreakerFailures tracks upstream call failures
	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_failures_total",
			Help: "Total number of circuit breaker failures",
		},
		[]string{"circuit_name"},
	)

	// SyncRunsTotal tracks background order-list refetches by result
	SyncRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pos_sync_runs_total",
			Help: "Total number of background sync runs",
		},
		[]string{"result"},
	)

	// NormalizerAmbiguous counts records whose required fields fell to defaults
	NormalizerAmbiguous = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pos_normalizer_ambiguous_total",
			Help: "Order records with fields that fell through to defaults",
		},
	)
)

// PrometheusMiddleware creates a Gin middleware for automatic metrics collection
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		RequestsTotal.WithLabelValues(c.Request.Method, c.FullPath(), status).Inc()
		RequestDuration.WithLabelValues(c.Request.Method, c.FullPath()).Observe(duration)
	}
}

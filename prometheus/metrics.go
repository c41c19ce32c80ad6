package prometheus

import (
	"time"

	"kost-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Authentication metrics
	AuthAttemptsCounter prometheus.Counter
	AuthSuccessCounter  prometheus.Counter
	AuthErrorsCounter   prometheus.Counter

	// Record file operation metrics
	StoreOperationDuration prometheus.HistogramVec

	// Per-entity operation metrics
	RecordOperationsCounter prometheus.CounterVec

	// Occupancy metrics
	RoomsByStatusGauge prometheus.GaugeVec
	ActiveTenantsGauge prometheus.Gauge
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	// Use metric prefix from configuration
	prefix := config.Metrics.Prefix

	// HTTP request metrics
	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTP request duration
	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Authentication metrics
	AuthAttemptsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Total number of authentication attempts",
		},
	)

	AuthSuccessCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_success_total",
			Help: "Total number of successful authentications",
		},
	)

	AuthErrorsCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_auth_errors_total",
			Help: "Total number of authentication errors",
		},
	)

	// Record file operation duration
	StoreOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_operation_duration_seconds",
			Help:    "Duration of record file operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	// Per-entity operation counters
	RecordOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_operations_total",
			Help: "Total number of record operations",
		},
		[]string{"entity", "operation"},
	)

	// Occupancy metrics
	RoomsByStatusGauge = *promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_rooms_by_status",
			Help: "Number of rooms per occupancy status",
		},
		[]string{"status"},
	)

	ActiveTenantsGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_active_tenants",
			Help: "Number of tenants with active status",
		},
	)
}

// TrackStoreOperation returns a function that records the duration of a record file operation
func TrackStoreOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		StoreOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordOperation increments the counter for an entity operation
func RecordOperation(entity, operation string) {
	RecordOperationsCounter.WithLabelValues(entity, operation).Inc()
}

// UpdateOccupancy updates the room and tenant gauges
func UpdateOccupancy(available, occupied, activeTenants int) {
	RoomsByStatusGauge.WithLabelValues("available").Set(float64(available))
	RoomsByStatusGauge.WithLabelValues("occupied").Set(float64(occupied))
	ActiveTenantsGauge.Set(float64(activeTenants))
}

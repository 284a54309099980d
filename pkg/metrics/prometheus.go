// Package metrics provides Prometheus metrics for the pickup rating service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pickup service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	imbalanceBuckets []float64
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Ratings
	ratingsSubmitted *prometheus.CounterVec
	ratingsRejected  *prometheus.CounterVec
	playersTotal     prometheus.Gauge

	// Store
	storeLatency *prometheus.HistogramVec
	storeErrors  *prometheus.CounterVec

	// Balancing
	balanceRuns     prometheus.Counter
	balanceFailures *prometheus.CounterVec
	teamImbalance   prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorRateByType     *prometheus.CounterVec
	errorRateByEndpoint *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pickup",
		subsystem:        "ratings",
		histogramBuckets: prometheus.DefBuckets,
		imbalanceBuckets: []float64{0, 0.5, 1, 2, 3, 5, 8, 13, 21},
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// Gatherer returns the registry as a Gatherer for exposition.
func (m *Manager) Gatherer() (prometheus.Gatherer, error) {
	g, ok := m.registry.(prometheus.Gatherer)
	if !ok {
		return nil, ErrUnknownRegistry
	}
	return g, nil
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     buckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.ratingsSubmitted = auto.NewCounterVec(
		m.counterOpts("submitted_total", "Total number of rating cells written, by position"),
		[]string{"position"},
	)
	m.ratingsRejected = auto.NewCounterVec(
		m.counterOpts("rejected_total", "Total number of rejected rating submissions, by reason"),
		[]string{"reason"},
	)
	m.playersTotal = auto.NewGauge(m.gaugeOpts("players_total", "Number of players with at least one rating"))

	m.storeLatency = auto.NewHistogramVec(
		m.histogramOpts("store_latency_milliseconds", "Rating store operation latency in milliseconds", m.histogramBuckets),
		[]string{"op"},
	)
	m.storeErrors = auto.NewCounterVec(
		m.counterOpts("store_errors_total", "Total number of failed rating store operations"),
		[]string{"op"},
	)

	m.balanceRuns = auto.NewCounter(m.counterOpts("balance_runs_total", "Total number of successful team balancing runs"))
	m.balanceFailures = auto.NewCounterVec(
		m.counterOpts("balance_failures_total", "Total number of team balancing requests that failed"),
		[]string{"reason"},
	)
	m.teamImbalance = auto.NewHistogram(
		m.histogramOpts("team_imbalance", "Absolute difference between team totals", m.imbalanceBuckets),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", m.histogramBuckets),
		[]string{"endpoint", "method", "status_code"},
	)

	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordRatingSubmitted counts one stored rating cell.
func (m *Manager) RecordRatingSubmitted(position string) {
	m.ratingsSubmitted.WithLabelValues(position).Inc()
}

// RecordRatingRejected counts a rejected submission.
func (m *Manager) RecordRatingRejected(reason string) {
	m.ratingsRejected.WithLabelValues(reason).Inc()
}

// UpdatePlayersTotal sets the number of rated players.
func (m *Manager) UpdatePlayersTotal(count int) {
	m.playersTotal.Set(float64(count))
}

// RecordStoreLatency records a store operation latency in milliseconds.
func (m *Manager) RecordStoreLatency(op string, latencyMs float64) {
	m.storeLatency.WithLabelValues(op).Observe(latencyMs)
}

// RecordStoreError counts a failed store operation.
func (m *Manager) RecordStoreError(op string) {
	m.storeErrors.WithLabelValues(op).Inc()
}

// RecordBalanceRun counts a successful balancing run.
func (m *Manager) RecordBalanceRun() {
	m.balanceRuns.Inc()
}

// RecordBalanceFailure counts a failed balancing request.
func (m *Manager) RecordBalanceFailure(reason string) {
	m.balanceFailures.WithLabelValues(reason).Inc()
}

// RecordImbalance observes the difference between two team totals.
func (m *Manager) RecordImbalance(diff float64) {
	m.teamImbalance.Observe(diff)
}

// RecordHTTPRequest records an HTTP request.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func (m *Manager) RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func (m *Manager) RecordErrorByType(errorType, severity string) {
	m.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func (m *Manager) RecordErrorByEndpoint(endpoint, method, errorType string) {
	m.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func (m *Manager) UpdateSystemMemoryUsage(bytes uint64) {
	m.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func (m *Manager) UpdateSystemGoroutineCount(count int) {
	m.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func (m *Manager) RecordSystemGCPauseTime(pauseMs float64) {
	m.systemGCPauseTime.Observe(pauseMs)
}

// Package-level shortcuts on the global manager.

// RecordRatingSubmitted counts one stored rating cell.
func RecordRatingSubmitted(position string) { globalManager.RecordRatingSubmitted(position) }

// RecordRatingRejected counts a rejected submission.
func RecordRatingRejected(reason string) { globalManager.RecordRatingRejected(reason) }

// UpdatePlayersTotal sets the number of rated players.
func UpdatePlayersTotal(count int) { globalManager.UpdatePlayersTotal(count) }

// RecordStoreLatency records a store operation latency in milliseconds.
func RecordStoreLatency(op string, latencyMs float64) { globalManager.RecordStoreLatency(op, latencyMs) }

// RecordStoreError counts a failed store operation.
func RecordStoreError(op string) { globalManager.RecordStoreError(op) }

// RecordBalanceRun counts a successful balancing run.
func RecordBalanceRun() { globalManager.RecordBalanceRun() }

// RecordBalanceFailure counts a failed balancing request.
func RecordBalanceFailure(reason string) { globalManager.RecordBalanceFailure(reason) }

// RecordImbalance observes the difference between two team totals.
func RecordImbalance(diff float64) { globalManager.RecordImbalance(diff) }

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.RecordHTTPRequest(endpoint, method, statusCode)
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.RecordHTTPRequestDuration(endpoint, method, statusCode, duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.RecordErrorByType(errorType, severity)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.RecordErrorByEndpoint(endpoint, method, errorType)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.UpdateSystemMemoryUsage(bytes) }

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) { globalManager.UpdateSystemGoroutineCount(count) }

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) { globalManager.RecordSystemGCPauseTime(pauseMs) }

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

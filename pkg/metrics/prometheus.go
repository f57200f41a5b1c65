// Package metrics provides Prometheus metrics for the stormcast game service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Latency buckets in milliseconds; scoring passes run long compared to requests.
var defaultBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000} //nolint:gochecknoglobals // read-only defaults

// Manager owns every collector the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Game
	predictionsSubmitted *prometheus.CounterVec
	predictionsScored    prometheus.Counter
	scoringFailures      prometheus.Counter
	scoringPassDuration  prometheus.Histogram
	badgesAwarded        *prometheus.CounterVec
	schedulerTicks       *prometheus.CounterVec
	predictionsTotal     prometheus.Gauge
	scheduledStorms      prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stormcast",
		subsystem:        "game",
		histogramBuckets: defaultBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one block per collector
	auto := promauto.With(m.registry)

	m.predictionsSubmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_submitted_total",
		Help:      "Prediction submissions by result (accepted, rejected, duplicate)",
	}, []string{"result"})

	m.predictionsScored = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions_scored_total",
		Help:      "Predictions scored by the scoring pass",
	})

	m.scoringFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_failures_total",
		Help:      "Prediction rows the scoring pass failed to update",
	})

	m.scoringPassDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scoring_pass_duration_milliseconds",
		Help:      "Wall time of one scoring pass over a checkpoint",
		Buckets:   m.histogramBuckets,
	})

	m.badgesAwarded = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "badges_awarded_total",
		Help:      "Badges newly awarded, by badge id",
	}, []string{"badge_id"})

	m.schedulerTicks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scheduler_ticks_total",
		Help:      "Scheduler ticks by outcome (idle, scored, skipped, failed)",
	}, []string{"outcome"})

	m.predictionsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "predictions",
		Help:      "Prediction records currently stored",
	})

	m.scheduledStorms = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "scheduled_storms",
		Help:      "Storms in the loaded schedule",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint and method",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.errorsByEndpoint = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "errors_total",
		Help:      "HTTP error responses by endpoint, method and error type",
	}, []string{"endpoint", "method", "error_type"})
}

// RecordPredictionSubmitted counts a submission attempt by result.
func RecordPredictionSubmitted(result string) {
	globalManager.predictionsSubmitted.WithLabelValues(result).Inc()
}

// RecordPredictionScored counts one scored prediction row.
func RecordPredictionScored() {
	globalManager.predictionsScored.Inc()
}

// RecordScoringFailure counts one row the scoring pass could not update.
func RecordScoringFailure() {
	globalManager.scoringFailures.Inc()
}

// RecordScoringPassDuration observes a pass duration in milliseconds.
func RecordScoringPassDuration(durationMs float64) {
	globalManager.scoringPassDuration.Observe(durationMs)
}

// RecordBadgeAwarded counts a newly awarded badge.
func RecordBadgeAwarded(badgeID string) {
	globalManager.badgesAwarded.WithLabelValues(badgeID).Inc()
}

// RecordSchedulerTick counts a scheduler tick by outcome.
func RecordSchedulerTick(outcome string) {
	globalManager.schedulerTicks.WithLabelValues(outcome).Inc()
}

// UpdatePredictionCount sets the stored prediction gauge.
func UpdatePredictionCount(count int64) {
	globalManager.predictionsTotal.Set(float64(count))
}

// UpdateScheduledStorms sets the loaded schedule size gauge.
func UpdateScheduledStorms(count int) {
	globalManager.scheduledStorms.Set(float64(count))
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the ghostboard service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric exported by the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Engine
	cohortsGenerated   prometheus.Counter
	cohortGeneration   prometheus.Histogram
	boardsAssembled    prometheus.Counter
	boardEntries       prometheus.Gauge
	userPercentile     prometheus.Histogram
	windowProgress     prometheus.Gauge
	engineContractFail prometheus.Counter

	// Profile lookups
	profileFetches       *prometheus.CounterVec
	profileFetchRetries  prometheus.Counter
	profileFetchDuration prometheus.Histogram
	rosterFetches        *prometheus.CounterVec
	cacheRequests        *prometheus.CounterVec
	cacheEntries         prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	rateLimited         prometheus.Counter
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ghostboard",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      prometheus.Labels{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.cohortsGenerated = auto.NewCounter(m.counterOpts("engine_cohorts_generated_total",
		"Total number of ghost cohorts generated"))
	m.cohortGeneration = auto.NewHistogram(m.histogramOpts("engine_cohort_generation_seconds",
		"Time spent generating and projecting a cohort", m.histogramBuckets))
	m.boardsAssembled = auto.NewCounter(m.counterOpts("engine_boards_assembled_total",
		"Total number of leaderboards assembled"))
	m.boardEntries = auto.NewGauge(m.gaugeOpts("engine_board_entries",
		"Number of entries in the most recently assembled board"))
	m.userPercentile = auto.NewHistogram(m.histogramOpts("engine_user_percentile",
		"Share of the board each served user ranks above",
		prometheus.LinearBuckets(0.1, 0.1, 10)))
	m.windowProgress = auto.NewGauge(m.gaugeOpts("engine_window_progress",
		"Activity window progress in the service time zone"))
	m.engineContractFail = auto.NewCounter(m.counterOpts("engine_contract_violations_total",
		"Panics recovered from engine contract violations"))

	m.profileFetches = auto.NewCounterVec(m.counterOpts("profile_fetch_total",
		"Profile lookups against the upstream API by result"), []string{"result"})
	m.profileFetchRetries = auto.NewCounter(m.counterOpts("profile_fetch_retries_total",
		"Retried upstream profile requests"))
	m.profileFetchDuration = auto.NewHistogram(m.histogramOpts("profile_fetch_duration_seconds",
		"Upstream profile lookup latency including retries", m.histogramBuckets))
	m.rosterFetches = auto.NewCounterVec(m.counterOpts("roster_fetch_total",
		"Ghost roster lookups against the upstream API by result"), []string{"result"})
	m.cacheRequests = auto.NewCounterVec(m.counterOpts("cache_requests_total",
		"Profile cache lookups by result"), []string{"result"})
	m.cacheEntries = auto.NewGauge(m.gaugeOpts("cache_entries",
		"Profiles currently held by the cache"))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"HTTP requests by endpoint, method and status"), []string{"endpoint", "method", "status"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_ms",
		"HTTP request duration in milliseconds",
		[]float64{1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}), []string{"endpoint", "method", "status"})
	m.rateLimited = auto.NewCounter(m.counterOpts("http_rate_limited_total",
		"Requests rejected by the rate limiter"))
}

// Engine metrics.

// RecordCohortGenerated counts a cohort and its generation time in seconds.
func RecordCohortGenerated(seconds float64) {
	globalManager.cohortsGenerated.Inc()
	globalManager.cohortGeneration.Observe(seconds)
}

// RecordBoardAssembled counts an assembled board, observes the user's
// percentile and sets the window progress. Progress depends only on the
// clock and the service zone, so it is the same for every board.
func RecordBoardAssembled(entries int, percentile, progress float64) {
	globalManager.boardsAssembled.Inc()
	globalManager.boardEntries.Set(float64(entries))
	globalManager.userPercentile.Observe(percentile)
	globalManager.windowProgress.Set(progress)
}

// RecordContractViolation counts a recovered engine panic.
func RecordContractViolation() {
	globalManager.engineContractFail.Inc()
}

// Profile metrics.

// RecordProfileFetch counts an upstream lookup outcome: ok, not_found, error, disabled.
func RecordProfileFetch(result string, seconds float64) {
	globalManager.profileFetches.WithLabelValues(result).Inc()
	globalManager.profileFetchDuration.Observe(seconds)
}

// RecordProfileRetry counts a retried upstream request.
func RecordProfileRetry() {
	globalManager.profileFetchRetries.Inc()
}

// RecordRosterFetch counts a ghost roster lookup outcome: ok, error, disabled.
func RecordRosterFetch(result string) {
	globalManager.rosterFetches.WithLabelValues(result).Inc()
}

// RecordCacheRequest counts a cache lookup outcome: hit, miss, error.
func RecordCacheRequest(result string) {
	globalManager.cacheRequests.WithLabelValues(result).Inc()
}

// UpdateCacheEntries sets the number of cached profiles.
func UpdateCacheEntries(count int) {
	globalManager.cacheEntries.Set(float64(count))
}

// HTTP metrics.

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRateLimited counts a rejected request.
func RecordRateLimited() {
	globalManager.rateLimited.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

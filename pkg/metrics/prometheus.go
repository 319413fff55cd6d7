// Package metrics provides Prometheus metrics for the edutrack service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// latencyBuckets are in milliseconds.
var latencyBuckets = []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000, 2500} //nolint:gochecknoglobals // shared bucket layout

// Manager manages all Prometheus metrics for the edutrack service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Progress entries
	entriesAppended prometheus.Counter
	entriesTotal    prometheus.Gauge
	storeFallbacks  *prometheus.CounterVec

	// Key-value backend
	kvOperations *prometheus.CounterVec
	kvLatency    *prometheus.HistogramVec
	kvErrors     *prometheus.CounterVec

	// Sessions and the entry form flow
	loginAttempts     *prometheus.CounterVec
	wizardTransitions *prometheus.CounterVec
	draftsOpen        prometheus.Gauge
	draftsEvicted     prometheus.Counter

	// Views
	dashboardViews  prometheus.Counter
	historyQueries  *prometheus.CounterVec
	analyticsReport *prometheus.CounterVec

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorRateByEndpoint *prometheus.CounterVec
	errorRateByType     *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// Configure rebuilds the global manager with opts on a fresh registry.
// Call it once at startup before any handler or updater reads the metrics.
func Configure(opts ...Option) {
	registry := prometheus.NewRegistry()
	globalManager = NewManager(append(opts[:len(opts):len(opts)], WithRegistry(registry))...)
	customRegistry = registry
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "edutrack",
		subsystem:        "tracker",
		histogramBuckets: latencyBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval reports how often gauge updaters should run.
func (m *Manager) RefreshInterval() time.Duration { return m.refreshInterval }

// Enabled reports whether recording is switched on.
func (m *Manager) Enabled() bool { return m.enabled }

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

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.customLabels,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	auto := promauto.With(m.registry)

	m.entriesAppended = auto.NewCounter(m.counterOpts("entries_appended_total", "Total number of progress entries committed"))
	m.entriesTotal = auto.NewGauge(m.gaugeOpts("entries_total", "Number of progress entries currently stored"))
	m.storeFallbacks = auto.NewCounterVec(
		m.counterOpts("store_fallbacks_total", "Loads that degraded to the fallback list, by reason"),
		[]string{"reason"},
	)

	m.kvOperations = auto.NewCounterVec(
		m.counterOpts("kv_operations_total", "Key-value operations by backend and operation"),
		[]string{"backend", "op"},
	)
	m.kvLatency = auto.NewHistogramVec(
		m.histogramOpts("kv_latency_milliseconds", "Key-value operation latency in milliseconds"),
		[]string{"backend", "op"},
	)
	m.kvErrors = auto.NewCounterVec(
		m.counterOpts("kv_errors_total", "Key-value operation failures by backend and operation"),
		[]string{"backend", "op"},
	)

	m.loginAttempts = auto.NewCounterVec(
		m.counterOpts("login_attempts_total", "Login attempts by outcome"),
		[]string{"outcome"},
	)
	m.wizardTransitions = auto.NewCounterVec(
		m.counterOpts("wizard_transitions_total", "Entry form transitions by action and outcome"),
		[]string{"action", "outcome"},
	)
	m.draftsOpen = auto.NewGauge(m.gaugeOpts("drafts_open", "Entry form drafts currently held"))
	m.draftsEvicted = auto.NewCounter(m.counterOpts("drafts_evicted_total", "Drafts evicted because the registry was full"))

	m.dashboardViews = auto.NewCounter(m.counterOpts("dashboard_views_total", "Dashboard summaries computed"))
	m.historyQueries = auto.NewCounterVec(
		m.counterOpts("history_queries_total", "History list queries by sort key"),
		[]string{"sort"},
	)
	m.analyticsReport = auto.NewCounterVec(
		m.counterOpts("analytics_reports_total", "Teacher analytics reports by student filter scope"),
		[]string{"scope"},
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Errors by endpoint, method and error type"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Errors by type and severity"),
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordEntryAppended increments the committed entries counter.
func RecordEntryAppended() {
	if !globalManager.enabled {
		return
	}
	globalManager.entriesAppended.Inc()
}

// UpdateEntriesTotal sets the stored entries gauge.
func UpdateEntriesTotal(count int) {
	globalManager.entriesTotal.Set(float64(count))
}

// RecordStoreFallback counts a load that fell back to the default list.
func RecordStoreFallback(reason string) {
	if !globalManager.enabled {
		return
	}
	globalManager.storeFallbacks.WithLabelValues(reason).Inc()
}

// RecordKVOperation records a key-value operation and its latency.
func RecordKVOperation(backend, op string, latencyMs float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.kvOperations.WithLabelValues(backend, op).Inc()
	globalManager.kvLatency.WithLabelValues(backend, op).Observe(latencyMs)
}

// RecordKVError counts a failed key-value operation.
func RecordKVError(backend, op string) {
	if !globalManager.enabled {
		return
	}
	globalManager.kvErrors.WithLabelValues(backend, op).Inc()
}

// RecordLoginAttempt counts a login by outcome (success, rejected, cancelled).
func RecordLoginAttempt(outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.loginAttempts.WithLabelValues(outcome).Inc()
}

// RecordWizardTransition counts an entry form action by outcome.
func RecordWizardTransition(action, outcome string) {
	if !globalManager.enabled {
		return
	}
	globalManager.wizardTransitions.WithLabelValues(action, outcome).Inc()
}

// UpdateDraftsOpen sets the open drafts gauge.
func UpdateDraftsOpen(count int) {
	globalManager.draftsOpen.Set(float64(count))
}

// RecordDraftEvicted counts a draft dropped by the bounded registry.
func RecordDraftEvicted() {
	if !globalManager.enabled {
		return
	}
	globalManager.draftsEvicted.Inc()
}

// RecordDashboardView counts a computed dashboard.
func RecordDashboardView() {
	if !globalManager.enabled {
		return
	}
	globalManager.dashboardViews.Inc()
}

// RecordHistoryQuery counts a history query by sort key.
func RecordHistoryQuery(sortKey string) {
	if !globalManager.enabled {
		return
	}
	if sortKey == "" {
		sortKey = "none"
	}
	globalManager.historyQueries.WithLabelValues(sortKey).Inc()
}

// RecordAnalyticsReport counts a teacher analytics report.
func RecordAnalyticsReport(scope string) {
	if !globalManager.enabled {
		return
	}
	globalManager.analyticsReport.WithLabelValues(scope).Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	if !globalManager.enabled {
		return
	}
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	if !globalManager.enabled {
		return
	}
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// RefreshInterval returns the refresh interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

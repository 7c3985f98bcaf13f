// Package metrics provides Prometheus metrics for the civic ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Core business metrics.
	ratingsSubmitted   prometheus.Counter
	ratingsRejected    prometheus.Counter
	discoveriesMerged  prometheus.Counter
	discoveriesDropped prometheus.Counter
	promisesMerged     prometheus.Counter
	leaderboardReads   prometheus.Counter

	// Operational health metrics.
	rosterSize    prometheus.Gauge
	promiseCount  prometheus.Gauge
	queueSize     prometheus.Gauge
	queueCapacity prometheus.Gauge
	workerCount   prometheus.Gauge
	inflightJobs  prometheus.Gauge

	// Queue and worker metrics.
	queueEnqueues      prometheus.Counter
	queueEnqueueErrors prometheus.Counter
	queueDequeues      prometheus.Counter
	jobLatency         prometheus.Histogram
	jobErrors          prometheus.Counter

	// AI collaborator metrics.
	aiCalls    *prometheus.CounterVec
	aiFailures *prometheus.CounterVec
	aiLatency  *prometheus.HistogramVec

	// HTTP performance metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Persistence metrics.
	storeSaves      prometheus.Counter
	storeSaveErrors prometheus.Counter
	storeLoadErrors prometheus.Counter
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
		namespace:        "accountable",
		subsystem:        "civicrank",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.ratingsSubmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ratings_submitted_total",
		Help:      "Total number of citizen ratings folded into leader averages",
	})

	m.ratingsRejected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ratings_rejected_total",
		Help:      "Total number of rating submissions rejected as out of range",
	})

	m.discoveriesMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "discoveries_merged_total",
		Help:      "Total number of discovered leaders merged into the roster",
	})

	m.discoveriesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "discoveries_dropped_total",
		Help:      "Total number of discovered leaders dropped as duplicates or invalid",
	})

	m.promisesMerged = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "promises_merged_total",
		Help:      "Total number of verified promises merged into the tracker",
	})

	m.leaderboardReads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "leaderboard_reads_total",
		Help:      "Total number of leaderboard ranking computations served",
	})

	m.rosterSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "roster_size",
		Help:      "Current number of leaders in the roster",
	})

	m.promiseCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "promise_count",
		Help:      "Current number of tracked promises",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current size of the refresh job queue (backlog indicator)",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Maximum refresh job queue capacity",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Current number of refresh workers (processing capacity)",
	})

	m.inflightJobs = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "inflight_jobs",
		Help:      "Number of distinct refresh subjects currently tracked in flight",
	})

	m.queueEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_total",
		Help:      "Total number of refresh jobs enqueued",
	})

	m.queueEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of enqueue rejections (queue full or closed)",
	})

	m.queueDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_dequeue_total",
		Help:      "Total number of refresh jobs dequeued by workers",
	})

	m.jobLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "job_latency_milliseconds",
		Help:      "Refresh job processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.jobErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "job_errors_total",
		Help:      "Total number of refresh jobs that ended in error",
	})

	m.aiCalls = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ai_calls_total",
			Help:      "Total number of generative collaborator calls by operation",
		},
		[]string{"operation"},
	)

	m.aiFailures = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ai_failures_total",
			Help:      "Total number of failed generative collaborator calls by operation",
		},
		[]string{"operation"},
	)

	m.aiLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "ai_latency_milliseconds",
			Help:      "Generative collaborator call latency in milliseconds",
			Buckets:   []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"operation"},
	)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.storeSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_saves_total",
		Help:      "Total number of dataset snapshots written to the store",
	})

	m.storeSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_save_errors_total",
		Help:      "Total number of dataset snapshot write failures",
	})

	m.storeLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_load_errors_total",
		Help:      "Total number of dataset loads that fell back to defaults",
	})
}

// RecordRatingSubmitted increments the ratings submitted counter.
func RecordRatingSubmitted() {
	globalManager.ratingsSubmitted.Inc()
}

// RecordRatingRejected increments the ratings rejected counter.
func RecordRatingRejected() {
	globalManager.ratingsRejected.Inc()
}

// RecordDiscoveryMerged increments the discoveries merged counter.
func RecordDiscoveryMerged() {
	globalManager.discoveriesMerged.Inc()
}

// RecordDiscoveryDropped increments the discoveries dropped counter.
func RecordDiscoveryDropped() {
	globalManager.discoveriesDropped.Inc()
}

// RecordPromisesMerged adds to the promises merged counter.
func RecordPromisesMerged(count int) {
	globalManager.promisesMerged.Add(float64(count))
}

// RecordLeaderboardRead increments the leaderboard reads counter.
func RecordLeaderboardRead() {
	globalManager.leaderboardReads.Inc()
}

// UpdateRosterSize sets the current roster size.
func UpdateRosterSize(count int) {
	globalManager.rosterSize.Set(float64(count))
}

// UpdatePromiseCount sets the current tracked promise count.
func UpdatePromiseCount(count int) {
	globalManager.promiseCount.Set(float64(count))
}

// UpdateQueueSize sets the current refresh queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum refresh queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateInflightJobs sets the number of refresh subjects in flight.
func UpdateInflightJobs(count int64) {
	globalManager.inflightJobs.Set(float64(count))
}

// RecordQueueEnqueue increments the enqueue counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueues.Inc()
}

// RecordQueueEnqueueError increments the enqueue error counter.
func RecordQueueEnqueueError() {
	globalManager.queueEnqueueErrors.Inc()
}

// RecordQueueDequeue increments the dequeue counter.
func RecordQueueDequeue() {
	globalManager.queueDequeues.Inc()
}

// RecordJobLatency records refresh job processing latency in milliseconds.
func RecordJobLatency(latencyMs float64) {
	globalManager.jobLatency.Observe(latencyMs)
}

// RecordJobError increments the refresh job error counter.
func RecordJobError() {
	globalManager.jobErrors.Inc()
}

// RecordAICall records one collaborator call with its latency and outcome.
func RecordAICall(operation string, latencyMs float64, failed bool) {
	globalManager.aiCalls.WithLabelValues(operation).Inc()
	globalManager.aiLatency.WithLabelValues(operation).Observe(latencyMs)
	if failed {
		globalManager.aiFailures.WithLabelValues(operation).Inc()
	}
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordStoreSave increments the dataset save counter.
func RecordStoreSave() {
	globalManager.storeSaves.Inc()
}

// RecordStoreSaveError increments the dataset save error counter.
func RecordStoreSaveError() {
	globalManager.storeSaveErrors.Inc()
}

// RecordStoreLoadError increments the dataset load fallback counter.
func RecordStoreLoadError() {
	globalManager.storeLoadErrors.Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

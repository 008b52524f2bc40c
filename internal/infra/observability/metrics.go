package observability

import (
	"time"

	"github.com/benjaminfrostllc/credit-wizard-sub000/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the radar service.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration  *prometheus.HistogramVec
	externalErrors   *prometheus.CounterVec
	cacheHits        *prometheus.CounterVec
	cacheMisses      *prometheus.CounterVec
	detectionRuns    *prometheus.CounterVec
	seriesPerRun     prometheus.Histogram
	remindersEmitted prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "radar_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radar_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radar_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radar_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
		detectionRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "radar_detection_runs_total",
				Help: "Total detection runs by outcome.",
			},
			[]string{"status"},
		),
		seriesPerRun: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "radar_series_per_run",
				Help:    "Recurring series produced per detection run.",
				Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
			},
		),
		remindersEmitted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "radar_reminders_emitted_total",
				Help: "Total reminder events emitted.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// RecordDetectionRun records a completed detection run and, on success, how
// many series it produced.
func (m *Metrics) RecordDetectionRun(status string, seriesCount int) {
	m.detectionRuns.WithLabelValues(status).Inc()
	if status == "success" {
		m.seriesPerRun.Observe(float64(seriesCount))
	}
}

// RecordRemindersEmitted counts reminder events handed to consumers.
func (m *Metrics) RecordRemindersEmitted(n int) {
	m.remindersEmitted.Add(float64(n))
}

// GetDetectionSnapshot returns a snapshot of detection metrics suitable for
// the GET /v1/metrics/detection endpoint.
func (m *Metrics) GetDetectionSnapshot() *domain.DetectionMetrics {
	// Prometheus counters expose cumulative values.
	success := getCounterValue(m.detectionRuns, "success")
	errored := getCounterValue(m.detectionRuns, "error")
	total := success + errored
	cacheHits := getCounterValue(m.cacheHits, "series")
	cacheMisses := getCounterValue(m.cacheMisses, "series")

	errorRate := float64(0)
	if total > 0 {
		errorRate = errored / total
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.DetectionMetrics{
		TotalRuns:    int64(total),
		ErrorRate:    errorRate,
		CacheHitRate: cacheHitRate,
		Period:       "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}

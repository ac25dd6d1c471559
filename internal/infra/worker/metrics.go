package worker

import (
	"spectrum-feed/internal/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// WorkerMetrics provides Prometheus metrics for the cache warming worker.
// It embeds the standard ConfigMetrics for configuration monitoring.
//
// Embedded metrics (from ConfigMetrics):
//   - worker_config_load_timestamp
//   - worker_config_validation_errors_total
//   - worker_config_fallbacks_total
//   - worker_config_fallback_active
//
// Worker-specific metrics:
//   - worker_warm_runs_total: warm runs by status (success, partial, failure)
//   - worker_warm_duration_seconds: duration of a warm run
//   - worker_warm_points_total: warmed coordinates by result (warmed, failed)
//   - worker_warm_last_success_timestamp: Unix timestamp of the last clean run
//
// Metrics are registered with the default registry when created, so create
// one instance per process.
type WorkerMetrics struct {
	*config.ConfigMetrics

	WarmRunsTotal            *prometheus.CounterVec
	WarmDurationSeconds      prometheus.Histogram
	WarmPointsTotal          *prometheus.CounterVec
	WarmLastSuccessTimestamp prometheus.Gauge
}

// NewWorkerMetrics creates and registers the worker metrics.
func NewWorkerMetrics() *WorkerMetrics {
	return &WorkerMetrics{
		ConfigMetrics: config.NewConfigMetrics("worker"),

		WarmRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_warm_runs_total",
			Help: "Total number of cache warm runs by status (success/partial/failure)",
		}, []string{"status"}),

		WarmDurationSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worker_warm_duration_seconds",
			Help:    "Duration of cache warm runs in seconds",
			Buckets: []float64{0.5, 1, 5, 15, 30, 60, 120, 300},
		}),

		WarmPointsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worker_warm_points_total",
			Help: "Total number of feed coordinates warmed by result (warmed/failed)",
		}, []string{"result"}),

		WarmLastSuccessTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "worker_warm_last_success_timestamp",
			Help: "Unix timestamp of the last warm run without failures",
		}),
	}
}

// RecordRun increments the run counter for the given status.
func (m *WorkerMetrics) RecordRun(status string) {
	m.WarmRunsTotal.WithLabelValues(status).Inc()
}

// RecordDuration observes the duration of a warm run in seconds.
func (m *WorkerMetrics) RecordDuration(seconds float64) {
	m.WarmDurationSeconds.Observe(seconds)
}

// RecordPoints adds the warmed and failed coordinate counts of a run.
func (m *WorkerMetrics) RecordPoints(warmed, failed int) {
	m.WarmPointsTotal.WithLabelValues("warmed").Add(float64(warmed))
	m.WarmPointsTotal.WithLabelValues("failed").Add(float64(failed))
}

// RecordLastSuccess records the current time as the last clean run.
func (m *WorkerMetrics) RecordLastSuccess() {
	m.WarmLastSuccessTimestamp.SetToCurrentTime()
}

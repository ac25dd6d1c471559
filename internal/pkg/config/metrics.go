package config

import (
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics exposes configuration health for one component:
//
//	{component}_config_load_timestamp
//	{component}_config_validation_errors_total{field}
//	{component}_config_fallbacks_total{field}
//	{component}_config_fallback_active
//
// The metrics are registered with the default registry; creating two
// instances with the same component name panics.
type ConfigMetrics struct {
	LoadTimestamp         prometheus.Gauge
	ValidationErrorsTotal *prometheus.CounterVec
	FallbacksTotal        *prometheus.CounterVec
	FallbackActive        prometheus.Gauge
}

// NewConfigMetrics registers the configuration metrics of component.
func NewConfigMetrics(component string) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", component),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", component),
		}),
		ValidationErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_validation_errors_total", component),
			Help: fmt.Sprintf("Total number of %s configuration validation errors", component),
		}, []string{"field"}),
		FallbacksTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", component),
			Help: fmt.Sprintf("Total number of %s configuration fallbacks to defaults", component),
		}, []string{"field"}),
		FallbackActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", component),
			Help: fmt.Sprintf("1 if any %s configuration value is a fallback, 0 otherwise", component),
		}),
	}
}

// RecordLoadTimestamp sets the load timestamp to now.
func (m *ConfigMetrics) RecordLoadTimestamp() {
	m.LoadTimestamp.SetToCurrentTime()
}

// RecordValidationError counts a rejected value of field.
func (m *ConfigMetrics) RecordValidationError(field string) {
	m.ValidationErrorsTotal.WithLabelValues(field).Inc()
}

// RecordFallback counts a default substituted for field.
func (m *ConfigMetrics) RecordFallback(field string) {
	m.FallbacksTotal.WithLabelValues(field).Inc()
}

// SetFallbackActive sets the fallback gauge.
func (m *ConfigMetrics) SetFallbackActive(active bool) {
	if active {
		m.FallbackActive.Set(1)
		return
	}
	m.FallbackActive.Set(0)
}

// FallbackTracker collects the results of one configuration load, logging
// and counting every fallback.
//
//	tr := NewFallbackTracker(logger, metrics)
//	r := LoadEnvInt("WARM_GRID_POINTS", 5, nil)
//	tr.Track("grid_points", r)
//	tr.Finish()
type FallbackTracker struct {
	logger  *slog.Logger
	metrics *ConfigMetrics
	applied bool
}

// NewFallbackTracker returns a tracker reporting to logger and metrics.
func NewFallbackTracker(logger *slog.Logger, metrics *ConfigMetrics) *FallbackTracker {
	return &FallbackTracker{logger: logger, metrics: metrics}
}

// Track records result under field when a fallback was applied.
func (t *FallbackTracker) Track(field string, result ConfigLoadResult) {
	if !result.FallbackApplied {
		return
	}
	t.applied = true
	t.metrics.RecordValidationError(field)
	t.metrics.RecordFallback(field)
	for _, warning := range result.Warnings {
		t.logger.Warn("Configuration fallback applied",
			slog.String("field", field),
			slog.String("warning", warning))
	}
}

// Applied reports whether any tracked value fell back to its default.
func (t *FallbackTracker) Applied() bool {
	return t.applied
}

// Finish publishes the fallback gauge and the load timestamp.
func (t *FallbackTracker) Finish() {
	t.metrics.SetFallbackActive(t.applied)
	t.metrics.RecordLoadTimestamp()
}

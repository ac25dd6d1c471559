package config

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

// NewConfigMetrics registers globally, so the package shares one instance.
var testMetrics = NewConfigMetrics("pkgconfig_test")

func TestConfigMetrics_Record(t *testing.T) {
	before := testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("slots"))
	testMetrics.RecordFallback("slots")
	assert.Equal(t, before+1, testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("slots")))

	before = testutil.ToFloat64(testMetrics.ValidationErrorsTotal.WithLabelValues("slots"))
	testMetrics.RecordValidationError("slots")
	assert.Equal(t, before+1, testutil.ToFloat64(testMetrics.ValidationErrorsTotal.WithLabelValues("slots")))

	testMetrics.SetFallbackActive(true)
	assert.Equal(t, float64(1), testutil.ToFloat64(testMetrics.FallbackActive))
	testMetrics.SetFallbackActive(false)
	assert.Equal(t, float64(0), testutil.ToFloat64(testMetrics.FallbackActive))

	testMetrics.RecordLoadTimestamp()
	assert.Positive(t, testutil.ToFloat64(testMetrics.LoadTimestamp))
}

func TestFallbackTracker(t *testing.T) {
	var buf bytes.Buffer
	tr := NewFallbackTracker(slog.New(slog.NewJSONHandler(&buf, nil)), testMetrics)
	before := testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("timeout"))

	tr.Track("ok", ConfigLoadResult{Value: 1})
	assert.False(t, tr.Applied())
	assert.Zero(t, buf.Len())

	tr.Track("timeout", ConfigLoadResult{
		Value:           30,
		Warnings:        []string{"Invalid TIMEOUT='x'"},
		FallbackApplied: true,
	})
	tr.Finish()

	assert.True(t, tr.Applied())
	assert.Contains(t, buf.String(), "Invalid TIMEOUT='x'")
	assert.Contains(t, buf.String(), `"field":"timeout"`)
	assert.Equal(t, before+1, testutil.ToFloat64(testMetrics.FallbacksTotal.WithLabelValues("timeout")))
	assert.Equal(t, float64(1), testutil.ToFloat64(testMetrics.FallbackActive))
}

func TestFallbackTracker_FinishWithoutFallback(t *testing.T) {
	testMetrics.SetFallbackActive(true)
	tr := NewFallbackTracker(slog.Default(), testMetrics)
	tr.Track("ok", ConfigLoadResult{Value: "x"})
	tr.Finish()
	assert.Equal(t, float64(0), testutil.ToFloat64(testMetrics.FallbackActive))
}

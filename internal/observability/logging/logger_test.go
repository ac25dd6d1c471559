package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"spectrum-feed/internal/handler/http/requestid"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "output should be valid JSON: %s", buf.String())
	return entry
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	logger := NewLogger()
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, logger.Enabled(context.Background(), slog.LevelError))
}

func TestNewTextLogger(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	logger := NewTextLogger()
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestNewJSONLogger_Filtering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, slog.LevelInfo)

	logger.Debug("hidden")
	assert.Zero(t, buf.Len(), "debug should be filtered at info level")

	logger.Info("feed assembled", slog.Int("cards", 4))
	entry := decodeLine(t, &buf)
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "feed assembled", entry["msg"])
	assert.Equal(t, float64(4), entry["cards"])
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)

	ctx := requestid.WithRequestID(context.Background(), "550e8400-e29b-41d4-a716-446655440000")
	WithRequestID(ctx, base).Info("test message")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "550e8400-e29b-41d4-a716-446655440000", entry["request_id"])
	_, hasTrace := entry["trace_id"]
	assert.False(t, hasTrace)
}

func TestWithRequestID_TraceID(t *testing.T) {
	var buf bytes.Buffer
	base := NewJSONLogger(&buf, slog.LevelInfo)

	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	WithRequestID(ctx, base).Info("traced")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", entry["trace_id"])
	_, hasReq := entry["request_id"]
	assert.False(t, hasReq)
}

func TestWithRequestID_Empty(t *testing.T) {
	base := slog.Default()
	assert.Same(t, base, WithRequestID(context.Background(), base))
}

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := WithFields(NewJSONLogger(&buf, slog.LevelInfo), map[string]any{
		"provider": "newsapi",
		"sources":  3,
	})
	logger.Info("fetched")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "newsapi", entry["provider"])
	assert.Equal(t, float64(3), entry["sources"])
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	custom := NewJSONLogger(&bytes.Buffer{}, slog.LevelDebug)
	ctx := WithLogger(context.Background(), custom)
	assert.Same(t, custom, FromContext(ctx))
}

func BenchmarkLogger_WithRequestID(b *testing.B) {
	logger := NewJSONLogger(&bytes.Buffer{}, slog.LevelInfo)
	ctx := requestid.WithRequestID(context.Background(), "bench-request")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		WithRequestID(ctx, logger).Info("bench")
	}
}

// Package logging provides structured logging utilities using the standard library's log/slog package.
// It offers helper functions for creating loggers with consistent configuration and context propagation.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"spectrum-feed/internal/handler/http/requestid"
	"spectrum-feed/internal/observability/tracing"
)

// ParseLevel converts a LOG_LEVEL value into a slog level.
// Supported levels: debug, info, warn, error. Unknown values fall back to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewLogger creates a new structured logger with JSON output on stdout.
// The log level can be controlled via the LOG_LEVEL environment variable.
// Default level: info
func NewLogger() *slog.Logger {
	return NewJSONLogger(os.Stdout, ParseLevel(os.Getenv("LOG_LEVEL")))
}

// NewJSONLogger creates a JSON logger writing to w at level.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		// Add source code location when running at debug level
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler)
}

// NewTextLogger creates a new structured logger with human-readable text output.
// This is useful for local development and debugging.
func NewTextLogger() *slog.Logger {
	level := ParseLevel(os.Getenv("LOG_LEVEL"))
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler)
}

// WithRequestID returns a new logger that includes the request ID and, when
// present, the trace ID from the context.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if reqID := requestid.FromContext(ctx); reqID != "" {
		logger = logger.With("request_id", reqID)
	}
	if traceID := tracing.TraceID(ctx); traceID != "" {
		logger = logger.With("trace_id", traceID)
	}
	return logger
}

// WithFields returns a new logger with additional structured fields.
// Fields are provided as key-value pairs.
func WithFields(logger *slog.Logger, fields map[string]any) *slog.Logger {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return logger.With(args...)
}

// FromContext retrieves the logger from the context, or returns the default logger if not found.
// This enables passing loggers through the application via context.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

type contextKey string

const loggerContextKey contextKey = "logger"

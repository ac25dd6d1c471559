package tracing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// setupExporter installs an in-memory tracer provider for the duration of the test.
func setupExporter(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })
	return exporter, tp
}

func attrMap(attrs []attribute.KeyValue) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value, len(attrs))
	for _, a := range attrs {
		m[a.Key] = a.Value
	}
	return m
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := setupExporter(t)

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/feed?x=0&y=0", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "GET /feed", spans[0].Name)

	attrs := attrMap(spans[0].Attributes)
	assert.Equal(t, "GET", attrs["http.method"].AsString())
	assert.Equal(t, "/feed", attrs["http.path"].AsString())
	assert.Equal(t, int64(200), attrs["http.status_code"].AsInt64())
	_, hasErr := attrs["error"]
	assert.False(t, hasErr)
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	setupExporter(t)

	var fromCtx string
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fromCtx = TraceID(r.Context())
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sources", nil))

	traceID := rr.Header().Get("X-Trace-Id")
	assert.Len(t, traceID, 32)
	assert.Equal(t, traceID, fromCtx)
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	setupExporter(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", rr.Header().Get("X-Trace-Id"))
}

func TestMiddleware_ErrorAttribute(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "5xx marks error", status: http.StatusBadGateway, wantErr: true},
		{name: "4xx does not", status: http.StatusBadRequest, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := setupExporter(t)
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/feed", nil))
			require.NoError(t, tp.ForceFlush(context.Background()))

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			attrs := attrMap(spans[0].Attributes)
			assert.Equal(t, int64(tt.status), attrs["http.status_code"].AsInt64())
			v, ok := attrs["error"]
			assert.Equal(t, tt.wantErr, ok && v.AsBool())
			if tt.wantErr {
				assert.Equal(t, codes.Error, spans[0].Status.Code)
			}
		})
	}
}

func TestMiddleware_NamesSpanByRoute(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/sources/bbc-news", "GET /sources/:id"},
		{"/wp-login.php", "GET /:unmatched"},
		{"/reactions", "GET /reactions"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			exporter, tp := setupExporter(t)
			handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("ok"))
			}))

			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, tp.ForceFlush(context.Background()))

			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tt.want, spans[0].Name)
			attrs := attrMap(spans[0].Attributes)
			assert.Equal(t, tt.path, attrs["http.path"].AsString())
			assert.Equal(t, int64(2), attrs["http.response_size"].AsInt64())
		})
	}
}

func TestStartSpan_EndSpan(t *testing.T) {
	exporter, tp := setupExporter(t)

	ctx, parent := StartSpan(context.Background(), "feed.assemble")
	_, child := StartSpan(ctx, "newsapi.top_headlines", attribute.Int("sources", 4))
	EndSpan(child, errors.New("upstream 503"))
	EndSpan(parent, nil)
	require.NoError(t, tp.ForceFlush(context.Background()))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	failed := spans[0]
	assert.Equal(t, "newsapi.top_headlines", failed.Name)
	assert.Equal(t, codes.Error, failed.Status.Code)
	assert.Equal(t, "upstream 503", failed.Status.Description)
	assert.Equal(t, int64(4), attrMap(failed.Attributes)["sources"].AsInt64())
	assert.Equal(t, spans[1].SpanContext.TraceID(), failed.Parent.TraceID())

	assert.Equal(t, codes.Unset, spans[1].Status.Code)
}

func TestTraceID_Empty(t *testing.T) {
	assert.Empty(t, TraceID(context.Background()))
}

func TestInit(t *testing.T) {
	shutdown := Init(1.0)
	t.Cleanup(func() { otel.SetTracerProvider(sdktrace.NewTracerProvider()) })

	ctx, span := StartSpan(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsSampled())
	assert.NotEmpty(t, TraceID(ctx))
	span.End()

	require.NoError(t, shutdown(context.Background()))
}

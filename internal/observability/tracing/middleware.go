package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"spectrum-feed/internal/handler/http/pathutil"
	"spectrum-feed/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-Id"

// Middleware starts a server span per request, continuing any W3C trace
// context the caller sent. Spans are named by method and normalized route
// (e.g. "GET /sources/:id") so unrouted paths share one name.
// The trace ID is echoed in the X-Trace-Id response header.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		route := pathutil.NormalizePath(r.URL.Path)
		ctx, span := GetTracer().Start(ctx, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.String("http.path", r.URL.Path),
			),
		)
		defer span.End()

		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.StatusCode()
		span.SetAttributes(
			attribute.Int("http.status_code", status),
			attribute.Int("http.response_size", rw.BytesWritten()),
		)
		if status >= http.StatusInternalServerError {
			span.SetAttributes(attribute.Bool("error", true))
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}

// Package tracing provides OpenTelemetry tracing integration.
//
// Init installs an SDK tracer provider and the W3C propagator. Middleware
// starts a server span per HTTP request and returns its trace ID in the
// X-Trace-Id header; StartSpan/EndSpan wrap outbound calls (news provider,
// article pages) in child spans.
//
// Example usage:
//
//	import "spectrum-feed/internal/observability/tracing"
//
//	func main() {
//	    shutdown := tracing.Init(1.0)
//	    defer shutdown(context.Background())
//	}
//
//	func fetch(ctx context.Context) (err error) {
//	    ctx, span := tracing.StartSpan(ctx, "newsapi.top_headlines")
//	    defer func() { tracing.EndSpan(span, err) }()
//	    // ...
//	}
package tracing

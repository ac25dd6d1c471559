// Package observability groups the logging, metrics and tracing helpers
// shared by the API server and the cache-warm worker.
//
//   - logging: slog JSON logger carrying request and trace IDs
//   - metrics: Prometheus collectors for HTTP, feed assembly, providers,
//     article extraction, reactions, cache and database
//   - tracing: OpenTelemetry spans and W3C trace-context propagation
//
// Typical wiring in a main package:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//	shutdown := tracing.Init(0.1)
//	defer shutdown(context.Background())
//	metrics.UpdateCatalogSources(len(cat.All()))
package observability

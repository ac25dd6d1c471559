// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size)
//   - Feed metrics (requests, matched and fallback cards, cache hits)
//   - News provider and article extraction metrics
//   - Database query metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "spectrum-feed/internal/observability/metrics"
//
//	func fetch(ctx context.Context, ids []string) {
//	    start := time.Now()
//	    articles, err := provider.FetchArticles(ctx, ids)
//	    // ...
//	    metrics.RecordProviderRequest("newsapi", time.Since(start), "")
//	}
package metrics

// Package resilience holds the fault-tolerance wrappers used around every
// outbound call: news providers, publisher feeds, article pages, Redis and
// PostgreSQL.
//
// circuitbreaker stops calling an upstream that keeps failing; retry re-runs
// transient failures with jittered exponential backoff. Clients combine them
// with the breaker inside the retry loop so an open circuit is not retried:
//
//	err := retry.WithBackoff(ctx, retry.NewsAPIConfig(), func() error {
//	    return breaker.Run(func() error { return call(ctx) })
//	})
package resilience

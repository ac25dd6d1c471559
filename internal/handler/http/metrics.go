package http

import (
	"net/http"
	"strconv"
	"time"

	"spectrum-feed/internal/handler/http/pathutil"
	"spectrum-feed/internal/handler/http/responsewriter"
	"spectrum-feed/internal/observability/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsMiddleware records HTTP request metrics including duration, size, and status codes.
// Paths are normalized so that source slugs and unknown URLs do not explode label cardinality.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.ActiveConnections.Inc()
		defer metrics.ActiveConnections.Dec()

		// Example: /sources/bbc-news -> /sources/:id
		path := pathutil.NormalizePath(r.URL.Path)

		rw := responsewriter.Wrap(w)
		start := time.Now()
		next.ServeHTTP(rw, r)

		metrics.RecordHTTPRequest(
			r.Method,
			path,
			strconv.Itoa(rw.StatusCode()),
			time.Since(start),
			int(max(r.ContentLength, 0)),
			rw.BytesWritten(),
		)
	})
}

// MetricsHandler returns an HTTP handler for the Prometheus metrics endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

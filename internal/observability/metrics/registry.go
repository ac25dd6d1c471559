// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestSize measures HTTP request body size in bytes
	HTTPRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// ActiveConnections tracks the number of active HTTP connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)
)

// Business metrics track feed assembly and its collaborators
var (
	// FeedRequestsTotal counts feed assemblies by outcome
	FeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_requests_total",
			Help: "Total number of feed requests",
		},
		[]string{"result"}, // result: cache_hit, assembled, invalid, error
	)

	// FeedCardsTotal counts emitted cards by how their content was chosen
	FeedCardsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feed_cards_total",
			Help: "Total number of feed cards emitted",
		},
		[]string{"kind"}, // kind: matched, fallback
	)

	// FeedCardsMissingTotal counts selected sources that produced no card
	FeedCardsMissingTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "feed_cards_missing_total",
			Help: "Total number of selected sources that produced no card",
		},
	)

	// CatalogSourcesTotal tracks the number of sources in the loaded catalog
	CatalogSourcesTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_sources_total",
			Help: "Number of sources in the loaded catalog",
		},
	)

	// CacheOperationsTotal counts cache lookups and writes by result
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"cache", "operation", "result"}, // result: hit, miss, error, ok
	)

	// ProviderRequestDuration measures news provider call latency
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "news_provider_request_duration_seconds",
			Help:    "Time taken to fetch articles from the news provider",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"provider"},
	)

	// ProviderErrorsTotal counts news provider failures
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "news_provider_errors_total",
			Help: "Total number of news provider errors",
		},
		[]string{"provider", "error_type"},
	)

	// ArticlesFetchedTotal counts articles returned per source
	ArticlesFetchedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "articles_fetched_total",
			Help: "Total number of articles fetched from the news provider",
		},
		[]string{"provider", "source_id"},
	)

	// ArticleExtractionsTotal counts article extraction attempts by result
	ArticleExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_extractions_total",
			Help: "Total number of article extraction attempts",
		},
		[]string{"result"}, // result: success, failure, cached
	)

	// ArticleExtractionDuration measures time to fetch and extract an article page
	ArticleExtractionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "article_extraction_duration_seconds",
			Help:    "Time taken to fetch and extract an article page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ArticleExtractionSize measures extracted text size in characters
	ArticleExtractionSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "article_extraction_size_chars",
			Help: "Extracted article text size in characters",
			Buckets: []float64{
				100, 200, 400, 800, 1600, 3200, 6400, 12800,
				25600, 51200, 102400, 204800,
			},
		},
	)

	// ReactionsTotal counts reaction submissions by result
	ReactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reactions_total",
			Help: "Total number of reaction submissions",
		},
		[]string{"result"}, // result: stored, invalid, error
	)

	// RateLimitDecisionsTotal counts inbound rate limiter decisions
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_rate_limit_decisions_total",
			Help: "Total number of inbound rate limit decisions",
		},
		[]string{"result"}, // result: allowed, rejected
	)

	// RateLimitTrackedClients tracks the number of client IPs held by the limiter
	RateLimitTrackedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_rate_limit_tracked_clients",
			Help: "Number of client IPs currently tracked by the rate limiter",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// RecordHTTPRequest records an HTTP request with its metadata
func RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())

	if requestSize > 0 {
		HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	}
	if responseSize > 0 {
		HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
	}
}

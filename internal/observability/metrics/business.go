package metrics

import (
	"time"
)

// Feed request outcomes.
const (
	FeedResultCacheHit  = "cache_hit"
	FeedResultAssembled = "assembled"
	FeedResultInvalid   = "invalid"
	FeedResultError     = "error"
)

// RecordFeedRequest records the outcome of a feed request.
func RecordFeedRequest(result string) {
	FeedRequestsTotal.WithLabelValues(result).Inc()
}

// RecordFeedCards records how the cards of one feed were assembled.
// missing is the number of selected sources that produced no card.
func RecordFeedCards(matched, fallback, missing int) {
	if matched > 0 {
		FeedCardsTotal.WithLabelValues("matched").Add(float64(matched))
	}
	if fallback > 0 {
		FeedCardsTotal.WithLabelValues("fallback").Add(float64(fallback))
	}
	if missing > 0 {
		FeedCardsMissingTotal.Add(float64(missing))
	}
}

// UpdateCatalogSources sets the number of sources in the loaded catalog.
func UpdateCatalogSources(count int) {
	CatalogSourcesTotal.Set(float64(count))
}

// RecordCacheLookup records a cache read.
// err takes precedence over hit.
func RecordCacheLookup(cache string, hit bool, err error) {
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	CacheOperationsTotal.WithLabelValues(cache, "get", result).Inc()
}

// RecordCacheStore records a cache write.
func RecordCacheStore(cache string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CacheOperationsTotal.WithLabelValues(cache, "set", result).Inc()
}

// RecordProviderRequest records a news provider call.
// errorType is empty for successful calls.
func RecordProviderRequest(provider string, duration time.Duration, errorType string) {
	ProviderRequestDuration.WithLabelValues(provider).Observe(duration.Seconds())
	if errorType != "" {
		ProviderErrorsTotal.WithLabelValues(provider, errorType).Inc()
	}
}

// RecordArticlesFetched records the number of articles a provider returned for a source.
func RecordArticlesFetched(provider, sourceID string, count int) {
	ArticlesFetchedTotal.WithLabelValues(provider, sourceID).Add(float64(count))
}

// RecordArticleExtractionSuccess records a successful article extraction.
//
// Example:
//
//	start := time.Now()
//	art, err := extractor.Extract(ctx, url)
//	if err == nil {
//	    RecordArticleExtractionSuccess(time.Since(start), art.Length)
//	}
func RecordArticleExtractionSuccess(duration time.Duration, size int) {
	ArticleExtractionsTotal.WithLabelValues("success").Inc()
	ArticleExtractionDuration.Observe(duration.Seconds())
	ArticleExtractionSize.Observe(float64(size))
}

// RecordArticleExtractionFailed records a failed article extraction.
func RecordArticleExtractionFailed(duration time.Duration) {
	ArticleExtractionsTotal.WithLabelValues("failure").Inc()
	ArticleExtractionDuration.Observe(duration.Seconds())
}

// RecordArticleExtractionCached records an extraction served from cache.
func RecordArticleExtractionCached() {
	ArticleExtractionsTotal.WithLabelValues("cached").Inc()
}

// RecordReaction records a reaction submission outcome.
func RecordReaction(result string) {
	ReactionsTotal.WithLabelValues(result).Inc()
}

// RecordRateLimitDecision records whether an inbound request passed the rate limiter.
func RecordRateLimitDecision(allowed bool) {
	if allowed {
		RateLimitDecisionsTotal.WithLabelValues("allowed").Inc()
		return
	}
	RateLimitDecisionsTotal.WithLabelValues("rejected").Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "upsert_reaction", "count_reactions").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

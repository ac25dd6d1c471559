package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordFeedRequest(t *testing.T) {
	results := []string{FeedResultCacheHit, FeedResultAssembled, FeedResultInvalid, FeedResultError}
	for _, r := range results {
		t.Run(r, func(t *testing.T) {
			before := testutil.ToFloat64(FeedRequestsTotal.WithLabelValues(r))
			RecordFeedRequest(r)
			assert.Equal(t, before+1, testutil.ToFloat64(FeedRequestsTotal.WithLabelValues(r)))
		})
	}
}

func TestRecordFeedCards(t *testing.T) {
	matched := testutil.ToFloat64(FeedCardsTotal.WithLabelValues("matched"))
	fallback := testutil.ToFloat64(FeedCardsTotal.WithLabelValues("fallback"))
	missing := testutil.ToFloat64(FeedCardsMissingTotal)

	RecordFeedCards(3, 1, 0)
	RecordFeedCards(0, 0, 2)

	assert.Equal(t, matched+3, testutil.ToFloat64(FeedCardsTotal.WithLabelValues("matched")))
	assert.Equal(t, fallback+1, testutil.ToFloat64(FeedCardsTotal.WithLabelValues("fallback")))
	assert.Equal(t, missing+2, testutil.ToFloat64(FeedCardsMissingTotal))
}

func TestRecordCacheLookup(t *testing.T) {
	tests := []struct {
		name   string
		hit    bool
		err    error
		result string
	}{
		{name: "hit", hit: true, result: "hit"},
		{name: "miss", hit: false, result: "miss"},
		{name: "error wins over hit", hit: true, err: errors.New("boom"), result: "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CacheOperationsTotal.WithLabelValues("test", "get", tt.result)
			before := testutil.ToFloat64(c)
			RecordCacheLookup("test", tt.hit, tt.err)
			assert.Equal(t, before+1, testutil.ToFloat64(c))
		})
	}
}

func TestRecordCacheStore(t *testing.T) {
	ok := CacheOperationsTotal.WithLabelValues("test", "set", "ok")
	failed := CacheOperationsTotal.WithLabelValues("test", "set", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordCacheStore("test", nil)
	RecordCacheStore("test", errors.New("down"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestRecordProviderRequest(t *testing.T) {
	errs := ProviderErrorsTotal.WithLabelValues("test-provider", "timeout")
	before := testutil.ToFloat64(errs)

	RecordProviderRequest("test-provider", 120*time.Millisecond, "")
	RecordProviderRequest("test-provider", 2*time.Second, "timeout")

	assert.Equal(t, before+1, testutil.ToFloat64(errs))

	m := &dto.Metric{}
	obs, err := ProviderRequestDuration.GetMetricWithLabelValues("test-provider")
	require.NoError(t, err)
	require.NoError(t, obs.(interface{ Write(*dto.Metric) error }).Write(m))
	assert.GreaterOrEqual(t, m.GetHistogram().GetSampleCount(), uint64(2))
}

func TestRecordArticleExtraction(t *testing.T) {
	success := testutil.ToFloat64(ArticleExtractionsTotal.WithLabelValues("success"))
	failure := testutil.ToFloat64(ArticleExtractionsTotal.WithLabelValues("failure"))
	cached := testutil.ToFloat64(ArticleExtractionsTotal.WithLabelValues("cached"))

	RecordArticleExtractionSuccess(300*time.Millisecond, 4200)
	RecordArticleExtractionFailed(5 * time.Second)
	RecordArticleExtractionCached()

	assert.Equal(t, success+1, testutil.ToFloat64(ArticleExtractionsTotal.WithLabelValues("success")))
	assert.Equal(t, failure+1, testutil.ToFloat64(ArticleExtractionsTotal.WithLabelValues("failure")))
	assert.Equal(t, cached+1, testutil.ToFloat64(ArticleExtractionsTotal.WithLabelValues("cached")))
}

func TestMetricsFunctions_AllCallable(t *testing.T) {
	assert.NotPanics(t, func() {
		UpdateCatalogSources(18)
		RecordArticlesFetched("newsapi", "reuters", 10)
		RecordReaction("stored")
		RecordDBQuery("upsert_reaction", 10*time.Millisecond)
		UpdateDBConnectionStats(5, 10)
		RecordHTTPRequest("GET", "/feed", "200", 25*time.Millisecond, 0, 512)
	})
}

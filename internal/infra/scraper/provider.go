package scraper

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/logging"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/observability/tracing"
)

// ProviderName labels metrics and logs of this provider.
const ProviderName = "rss"

// ErrAllFeedsFailed is returned when every requested feed failed to load.
var ErrAllFeedsFailed = errors.New("all feeds failed")

// SourceLookup resolves catalog sources by id.
type SourceLookup interface {
	Get(id string) (entity.Source, bool)
}

// Fetcher loads one feed.
type Fetcher interface {
	Fetch(ctx context.Context, feedURL string) ([]FeedItem, error)
}

// RSSProvider serves articles straight from the catalog sources' own feeds.
type RSSProvider struct {
	sources SourceLookup
	fetcher Fetcher
	config  Config
}

// NewRSSProvider creates a provider. A nil fetcher uses an RSSFetcher
// with the configured timeout. Unset limits take their DefaultConfig values.
func NewRSSProvider(sources SourceLookup, fetcher Fetcher, cfg Config) *RSSProvider {
	def := DefaultConfig()
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = def.Parallelism
	}
	if cfg.MaxItemsPerSource <= 0 {
		cfg.MaxItemsPerSource = def.MaxItemsPerSource
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if fetcher == nil {
		fetcher = NewRSSFetcher(&http.Client{Timeout: cfg.Timeout}, WithUserAgent(cfg.UserAgent))
	}
	return &RSSProvider{sources: sources, fetcher: fetcher, config: cfg}
}

type feedJob struct {
	sourceID string
	feedURL  string
}

// FetchArticles loads the feeds of the given sources concurrently.
// Sources without a feed URL are skipped. A failing feed is logged and
// skipped; ErrAllFeedsFailed is returned only when no feed could be read.
func (p *RSSProvider) FetchArticles(ctx context.Context, sourceIDs []string) (articles []entity.Article, err error) {
	jobs := make([]feedJob, 0, len(sourceIDs))
	for _, id := range sourceIDs {
		src, ok := p.sources.Get(id)
		if !ok || src.FeedURL == "" {
			continue
		}
		jobs = append(jobs, feedJob{sourceID: id, feedURL: src.FeedURL})
	}
	if len(jobs) == 0 {
		return []entity.Article{}, nil
	}

	ctx, span := tracing.StartSpan(ctx, "rss.fetch_articles",
		attribute.StringSlice("rss.sources", sourceIDs))
	defer func() { tracing.EndSpan(span, err) }()

	start := time.Now()
	defer func() {
		metrics.RecordProviderRequest(ProviderName, time.Since(start), providerErrorType(err))
	}()

	logger := logging.FromContext(ctx)
	results := make([][]entity.Article, len(jobs))
	errs := make([]error, len(jobs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(p.config.Parallelism)
	for i, job := range jobs {
		eg.Go(func() error {
			items, err := p.fetcher.Fetch(egCtx, job.feedURL)
			if err != nil {
				// 1つのフィード失敗で全体を止めない
				errs[i] = fmt.Errorf("feed %s: %w", job.sourceID, err)
				logger.Warn("feed fetch failed, skipping source",
					slog.String("source_id", job.sourceID),
					slog.String("feed_url", job.feedURL),
					slog.Any("error", err))
				return nil
			}
			results[i] = p.toArticles(job.sourceID, items)
			metrics.RecordArticlesFetched(ProviderName, job.sourceID, len(results[i]))
			return nil
		})
	}
	_ = eg.Wait()

	failed := 0
	for i := range jobs {
		if errs[i] != nil {
			failed++
			continue
		}
		articles = append(articles, results[i]...)
	}
	span.SetAttributes(
		attribute.Int("rss.feeds", len(jobs)),
		attribute.Int("rss.failed", failed),
		attribute.Int("rss.articles", len(articles)),
	)

	if failed == len(jobs) {
		return nil, fmt.Errorf("%w: %w", ErrAllFeedsFailed, errors.Join(errs...))
	}
	if articles == nil {
		articles = []entity.Article{}
	}
	return articles, nil
}

// toArticles keeps the newest items of one feed, newest first.
func (p *RSSProvider) toArticles(sourceID string, items []FeedItem) []entity.Article {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b FeedItem) int {
		return cmp.Compare(b.PublishedAt.UnixNano(), a.PublishedAt.UnixNano())
	})
	if len(sorted) > p.config.MaxItemsPerSource {
		sorted = sorted[:p.config.MaxItemsPerSource]
	}

	out := make([]entity.Article, 0, len(sorted))
	for _, it := range sorted {
		out = append(out, entity.Article{
			ID:          it.URL,
			Title:       it.Title,
			SourceID:    sourceID,
			ImageURL:    it.ImageURL,
			PublishedAt: it.PublishedAt,
		})
	}
	return out
}

func providerErrorType(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "all_feeds_failed"
	}
}

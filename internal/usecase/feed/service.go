package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/logging"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/observability/tracing"
)

// NewsProvider supplies recent articles for a set of source identifiers.
// Implementations may return articles of other sources or none at all;
// the assembler copes with both.
type NewsProvider interface {
	FetchArticles(ctx context.Context, sourceIDs []string) ([]entity.Article, error)
}

// Cache stores assembled feeds by query coordinate.
// Implementations are fail-open: lookups that fail report a miss and
// writes that fail are dropped.
type Cache interface {
	GetFeed(ctx context.Context, x, y float64) ([]entity.Card, bool)
	SetFeed(ctx context.Context, x, y float64, cards []entity.Card)
}

type noCache struct{}

func (noCache) GetFeed(context.Context, float64, float64) ([]entity.Card, bool) { return nil, false }
func (noCache) SetFeed(context.Context, float64, float64, []entity.Card)        {}

// Service assembles feeds: Selector → NewsProvider → AssembleCards, with caching.
// Concurrent requests for the same coordinate share one assembly.
type Service struct {
	selector *Selector
	provider NewsProvider
	cache    Cache
	group    singleflight.Group
}

// NewService creates a feed service. A nil cache disables caching.
func NewService(selector *Selector, provider NewsProvider, cache Cache) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{selector: selector, provider: provider, cache: cache}
}

// Feed returns the cards for the query coordinate (x, y).
// It returns ErrInvalidCoordinate for non-finite input and ErrProviderFailed
// when articles could not be fetched.
func (s *Service) Feed(ctx context.Context, x, y float64) ([]entity.Card, error) {
	if err := entity.ValidateCoordinate(x, y); err != nil {
		metrics.RecordFeedRequest(metrics.FeedResultInvalid)
		return nil, fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}

	if cards, ok := s.cache.GetFeed(ctx, x, y); ok {
		metrics.RecordFeedRequest(metrics.FeedResultCacheHit)
		return cards, nil
	}

	v, err, shared := s.group.Do(flightKey(x, y), func() (any, error) {
		// 共有呼び出しは最初のリクエストのキャンセルに巻き込まない
		return s.assemble(context.WithoutCancel(ctx), x, y)
	})
	if err != nil {
		metrics.RecordFeedRequest(metrics.FeedResultError)
		return nil, err
	}
	if shared {
		logging.FromContext(ctx).Debug("feed assembly shared",
			slog.Float64("x", x), slog.Float64("y", y))
	}
	metrics.RecordFeedRequest(metrics.FeedResultAssembled)

	cards := v.([]entity.Card)
	out := make([]entity.Card, len(cards))
	copy(out, cards)
	return out, nil
}

// Refresh assembles the feed for (x, y) ignoring any cached value and stores the result.
// It is used by the cache warmer.
func (s *Service) Refresh(ctx context.Context, x, y float64) ([]entity.Card, error) {
	if err := entity.ValidateCoordinate(x, y); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCoordinate, err)
	}
	return s.assemble(ctx, x, y)
}

func (s *Service) assemble(ctx context.Context, x, y float64) (cards []entity.Card, err error) {
	ctx, span := tracing.StartSpan(ctx, "feed.assemble",
		attribute.Float64("feed.x", x),
		attribute.Float64("feed.y", y),
	)
	defer func() { tracing.EndSpan(span, err) }()

	sources := s.selector.SelectSources(x, y)
	if len(sources) == 0 {
		return []entity.Card{}, nil
	}

	ids := make([]string, len(sources))
	for i, src := range sources {
		ids[i] = src.ID
	}
	span.SetAttributes(attribute.StringSlice("feed.sources", ids))

	articles, err := s.provider.FetchArticles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailed, err)
	}

	res := Assemble(sources, articles)
	metrics.RecordFeedCards(res.Matched, res.Fallback, res.Missing)
	if res.Fallback > 0 || res.Missing > 0 {
		logging.FromContext(ctx).Info("feed assembled with substitutions",
			slog.Any("sources", ids),
			slog.Int("articles", len(articles)),
			slog.Int("fallback", res.Fallback),
			slog.Int("missing", res.Missing))
	}

	s.cache.SetFeed(ctx, x, y, res.Cards)
	return res.Cards, nil
}

func flightKey(x, y float64) string {
	if x == 0 {
		x = 0 // -0 も同じ呼び出しに合流させる
	}
	if y == 0 {
		y = 0
	}
	return strconv.FormatFloat(x, 'f', -1, 64) + ":" + strconv.FormatFloat(y, 'f', -1, 64)
}

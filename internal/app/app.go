// Package app builds the feed stack shared by the API server and the cache warmer.
package app

import (
	"fmt"
	"log/slog"

	"spectrum-feed/internal/catalog"
	"spectrum-feed/internal/config"
	"spectrum-feed/internal/infra/cache"
	"spectrum-feed/internal/infra/newsapi"
	"spectrum-feed/internal/infra/scraper"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/usecase/article"
	"spectrum-feed/internal/usecase/feed"
)

// FeedStack holds the collaborators of the feed service.
type FeedStack struct {
	Catalog  *catalog.Catalog
	Provider string
	Feed     *feed.Service
	// Redis is nil when REDIS_URL is unset.
	Redis *cache.RedisCache
}

// Close releases the Redis connection, if any.
func (s *FeedStack) Close() error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Close()
}

// ArticleCache returns the cache for extracted articles.
func (s *FeedStack) ArticleCache() article.Cache {
	if s.Redis == nil {
		return cache.NoopCache{}
	}
	return s.Redis
}

// LoadCatalog loads the source catalog and publishes its size.
func LoadCatalog(cfg *config.AppConfig) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	metrics.UpdateCatalogSources(cat.Len())
	return cat, nil
}

// NewProvider returns the configured news provider and its name.
func NewProvider(cfg *config.AppConfig, cat *catalog.Catalog) (feed.NewsProvider, string, error) {
	newsCfg, newsErr := newsapi.LoadConfigFromEnv()
	name := cfg.ResolveProvider(newsCfg.APIKey != "")

	switch name {
	case config.ProviderNewsAPI:
		if newsErr != nil {
			return nil, name, newsErr
		}
		return newsapi.NewClient(newsCfg), name, nil
	default:
		rssCfg, err := scraper.LoadConfigFromEnv()
		if err != nil {
			return nil, name, err
		}
		return scraper.NewRSSProvider(cat, nil, rssCfg), name, nil
	}
}

// NewCaches returns the Redis cache when REDIS_URL is set, nil otherwise.
func NewCaches() (*cache.RedisCache, error) {
	cacheCfg, err := cache.LoadConfigFromEnv()
	if err != nil {
		return nil, err
	}
	if !cacheCfg.Enabled() {
		return nil, nil
	}
	return cache.NewRedisCache(cacheCfg)
}

// BuildFeed wires catalog, provider and cache into a feed service.
func BuildFeed(logger *slog.Logger, cfg *config.AppConfig) (*FeedStack, error) {
	cat, err := LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	provider, name, err := NewProvider(cfg, cat)
	if err != nil {
		return nil, fmt.Errorf("news provider %s: %w", name, err)
	}

	redisCache, err := NewCaches()
	if err != nil {
		return nil, err
	}
	var feedCache feed.Cache = cache.NoopCache{}
	if redisCache != nil {
		feedCache = redisCache
	}

	selector := feed.NewSelector(cat.Sources(), feed.SelectorConfig{
		Slots:        cfg.FeedSlots,
		BalanceSides: cfg.BalanceSides,
	})

	logger.Info("feed stack initialised",
		slog.Int("sources", cat.Len()),
		slog.String("provider", name),
		slog.Bool("redis", redisCache != nil),
		slog.Int("slots", selector.Slots()),
		slog.Bool("balance_sides", cfg.BalanceSides))

	return &FeedStack{
		Catalog:  cat,
		Provider: name,
		Feed:     feed.NewService(selector, provider, feedCache),
		Redis:    redisCache,
	}, nil
}

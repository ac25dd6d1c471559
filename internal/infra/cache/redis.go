// Package cache stores assembled feeds and extracted articles in Redis.
// Every operation is fail-open: errors are logged and reported as misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/logging"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/resilience/circuitbreaker"
)

// Metric labels.
const (
	feedCache    = "feed"
	articleCache = "article"
)

// FeedKey returns the cache key of the feed at (x, y).
// Coordinates are formatted exactly; nearby points do not share entries.
func FeedKey(x, y float64) string {
	return "feed:v1:" + formatCoord(x) + ":" + formatCoord(y)
}

func formatCoord(v float64) string {
	if v == 0 {
		v = 0 // -0 を 0 に揃える
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ArticleKey returns the cache key of the article at rawURL.
func ArticleKey(rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return "article:v1:" + hex.EncodeToString(sum[:])
}

// RedisCache implements the feed and article caches on Redis.
type RedisCache struct {
	client  *redis.Client
	config  Config
	breaker *circuitbreaker.CircuitBreaker
}

// NewRedisCache connects to the Redis at cfg.URL. It does not ping;
// an unreachable server only degrades to cache misses.
func NewRedisCache(cfg Config) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %s", logging.SanitizeError(err))
	}
	return NewRedisCacheWithClient(redis.NewClient(opts), cfg), nil
}

// NewRedisCacheWithClient wraps an existing client.
func NewRedisCacheWithClient(client *redis.Client, cfg Config) *RedisCache {
	return &RedisCache{
		client:  client,
		config:  cfg,
		breaker: circuitbreaker.New(circuitbreaker.RedisConfig()),
	}
}

// GetFeed returns the cached cards for (x, y).
func (c *RedisCache) GetFeed(ctx context.Context, x, y float64) ([]entity.Card, bool) {
	var cards []entity.Card
	if !c.get(ctx, feedCache, FeedKey(x, y), &cards) {
		return nil, false
	}
	return cards, true
}

// SetFeed caches the cards for (x, y) for the feed TTL.
func (c *RedisCache) SetFeed(ctx context.Context, x, y float64, cards []entity.Card) {
	if cards == nil {
		cards = []entity.Card{}
	}
	c.set(ctx, feedCache, FeedKey(x, y), cards, c.config.FeedTTL)
}

// GetArticle returns the cached extraction of rawURL.
func (c *RedisCache) GetArticle(ctx context.Context, rawURL string) (*entity.ExtractedArticle, bool) {
	var a entity.ExtractedArticle
	if !c.get(ctx, articleCache, ArticleKey(rawURL), &a) {
		return nil, false
	}
	return &a, true
}

// SetArticle caches the extraction of rawURL for the article TTL.
func (c *RedisCache) SetArticle(ctx context.Context, rawURL string, a *entity.ExtractedArticle) {
	if a == nil {
		return
	}
	c.set(ctx, articleCache, ArticleKey(rawURL), a, c.config.ArticleTTL)
}

// Ping checks the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) get(ctx context.Context, name, key string, dst any) bool {
	opCtx, cancel := context.WithTimeout(ctx, c.config.OpTimeout)
	defer cancel()

	var raw []byte
	err := c.breaker.Run(func() error {
		b, err := c.client.Get(opCtx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil
		}
		raw = b
		return err
	})
	if err == nil && raw != nil {
		if uerr := json.Unmarshal(raw, dst); uerr != nil {
			err = fmt.Errorf("decode cached value: %w", uerr)
		}
	}

	metrics.RecordCacheLookup(name, err == nil && raw != nil, err)
	if err != nil {
		logging.FromContext(ctx).Warn("cache lookup failed, treating as miss",
			slog.String("cache", name),
			slog.String("key", key),
			slog.String("error", logging.SanitizeError(err)))
		return false
	}
	return raw != nil
}

func (c *RedisCache) set(ctx context.Context, name, key string, v any, ttl time.Duration) {
	raw, err := json.Marshal(v)
	if err == nil {
		opCtx, cancel := context.WithTimeout(ctx, c.config.OpTimeout)
		defer cancel()
		err = c.breaker.Run(func() error {
			return c.client.Set(opCtx, key, raw, ttl).Err()
		})
	}

	metrics.RecordCacheStore(name, err)
	if err != nil {
		logging.FromContext(ctx).Warn("cache store failed",
			slog.String("cache", name),
			slog.String("key", key),
			slog.String("error", logging.SanitizeError(err)))
	}
}

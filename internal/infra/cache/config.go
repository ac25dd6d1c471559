package cache

import (
	"fmt"
	"time"

	pkgconfig "spectrum-feed/pkg/config"
)

// Config holds the Redis cache settings.
type Config struct {
	// URL is a redis:// or rediss:// URL. Empty disables caching.
	URL string

	// FeedTTL is how long an assembled feed stays cached.
	FeedTTL time.Duration

	// ArticleTTL is how long an extracted article stays cached.
	ArticleTTL time.Duration

	// OpTimeout bounds every cache round trip so a slow Redis never
	// delays a request by more than this.
	OpTimeout time.Duration
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		FeedTTL:    5 * time.Minute,
		ArticleTTL: 24 * time.Hour,
		OpTimeout:  200 * time.Millisecond,
	}
}

// Enabled reports whether a Redis URL is configured.
func (c Config) Enabled() bool {
	return c.URL != ""
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := pkgconfig.ValidateRange(c.FeedTTL, time.Second, 24*time.Hour); err != nil {
		return fmt.Errorf("FEED_CACHE_TTL: %w", err)
	}
	if err := pkgconfig.ValidateRange(c.ArticleTTL, time.Minute, 7*24*time.Hour); err != nil {
		return fmt.Errorf("ARTICLE_CACHE_TTL: %w", err)
	}
	if err := pkgconfig.ValidateRange(c.OpTimeout, 10*time.Millisecond, 5*time.Second); err != nil {
		return fmt.Errorf("CACHE_OP_TIMEOUT: %w", err)
	}
	return nil
}

// LoadConfigFromEnv loads the cache configuration.
//
// Environment variables:
//   - REDIS_URL (default: unset, cache disabled)
//   - FEED_CACHE_TTL (default: 5m)
//   - ARTICLE_CACHE_TTL (default: 24h)
//   - CACHE_OP_TIMEOUT (default: 200ms)
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		URL:        pkgconfig.GetEnvString("REDIS_URL", ""),
		FeedTTL:    pkgconfig.GetEnvDuration("FEED_CACHE_TTL", def.FeedTTL),
		ArticleTTL: pkgconfig.GetEnvDuration("ARTICLE_CACHE_TTL", def.ArticleTTL),
		OpTimeout:  pkgconfig.GetEnvDuration("CACHE_OP_TIMEOUT", def.OpTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("cache configuration: %w", err)
	}
	return cfg, nil
}

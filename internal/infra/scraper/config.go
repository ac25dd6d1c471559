package scraper

import (
	"fmt"
	"time"

	pkgconfig "spectrum-feed/pkg/config"
)

// DefaultUserAgent is sent to feed hosts.
const DefaultUserAgent = "SpectrumFeedBot/1.0 (+https://github.com/spectrum-feed)"

// Config holds the RSS provider settings.
type Config struct {
	// Timeout bounds a single feed request.
	Timeout time.Duration

	// Parallelism is the number of feeds fetched at once.
	Parallelism int

	// MaxItemsPerSource caps the articles kept per feed.
	MaxItemsPerSource int

	UserAgent string
}

// DefaultConfig returns the default RSS provider configuration.
func DefaultConfig() Config {
	return Config{
		Timeout:           8 * time.Second,
		Parallelism:       4,
		MaxItemsPerSource: 10,
		UserAgent:         DefaultUserAgent,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := pkgconfig.ValidateRange(c.Timeout, time.Second, time.Minute); err != nil {
		return fmt.Errorf("RSS_FETCH_TIMEOUT: %w", err)
	}
	if c.Parallelism < 1 || c.Parallelism > 32 {
		return fmt.Errorf("RSS_PARALLELISM must be between 1 and 32, got %d", c.Parallelism)
	}
	if c.MaxItemsPerSource < 1 {
		return fmt.Errorf("RSS_MAX_ITEMS_PER_SOURCE must be positive, got %d", c.MaxItemsPerSource)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	return nil
}

// LoadConfigFromEnv loads the RSS provider configuration.
//
// Environment variables:
//   - RSS_FETCH_TIMEOUT (default: 8s)
//   - RSS_PARALLELISM (default: 4)
//   - RSS_MAX_ITEMS_PER_SOURCE (default: 10)
//   - RSS_USER_AGENT
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		Timeout:           pkgconfig.GetEnvDuration("RSS_FETCH_TIMEOUT", def.Timeout),
		Parallelism:       pkgconfig.GetEnvInt("RSS_PARALLELISM", def.Parallelism),
		MaxItemsPerSource: pkgconfig.GetEnvInt("RSS_MAX_ITEMS_PER_SOURCE", def.MaxItemsPerSource),
		UserAgent:         pkgconfig.GetEnvString("RSS_USER_AGENT", def.UserAgent),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("rss configuration: %w", err)
	}
	return cfg, nil
}

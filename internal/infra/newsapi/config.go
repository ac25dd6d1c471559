package newsapi

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	pkgconfig "spectrum-feed/pkg/config"
)

// Config contains configuration for the NewsAPI client.
type Config struct {
	// APIKey is sent as X-Api-Key on every request.
	APIKey string

	// BaseURL is the API root, e.g. https://newsapi.org
	BaseURL string

	// Timeout is the HTTP request timeout for a single call.
	Timeout time.Duration

	// PageSize is the maximum number of articles requested per call (1-100).
	PageSize int

	// RequestsPerMinute limits outbound calls. NewsAPI bills per request.
	RequestsPerMinute int

	// Burst is the number of calls allowed back to back.
	Burst int
}

// DefaultConfig returns the default NewsAPI configuration without an API key.
func DefaultConfig() Config {
	return Config{
		BaseURL:           "https://newsapi.org",
		Timeout:           10 * time.Second,
		PageSize:          50,
		RequestsPerMinute: 60,
		Burst:             5,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("NEWSAPI_KEY is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("NEWSAPI_BASE_URL is invalid: %q", c.BaseURL)
	}
	if err := pkgconfig.ValidateRange(c.Timeout, time.Second, time.Minute); err != nil {
		return fmt.Errorf("NEWSAPI_TIMEOUT: %w", err)
	}
	if c.PageSize < 1 || c.PageSize > 100 {
		return fmt.Errorf("NEWSAPI_PAGE_SIZE must be between 1 and 100, got %d", c.PageSize)
	}
	if c.RequestsPerMinute < 1 {
		return fmt.Errorf("NEWSAPI_REQUESTS_PER_MINUTE must be positive, got %d", c.RequestsPerMinute)
	}
	if c.Burst < 1 {
		return fmt.Errorf("NEWSAPI_BURST must be positive, got %d", c.Burst)
	}
	return nil
}

// LoadConfigFromEnv loads the NewsAPI configuration.
//
// Environment variables:
//   - NEWSAPI_KEY (required)
//   - NEWSAPI_BASE_URL (default: https://newsapi.org)
//   - NEWSAPI_TIMEOUT (default: 10s)
//   - NEWSAPI_PAGE_SIZE (default: 50)
//   - NEWSAPI_REQUESTS_PER_MINUTE (default: 60)
//   - NEWSAPI_BURST (default: 5)
func LoadConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		APIKey:            pkgconfig.GetEnvString("NEWSAPI_KEY", ""),
		BaseURL:           pkgconfig.GetEnvString("NEWSAPI_BASE_URL", def.BaseURL),
		Timeout:           pkgconfig.GetEnvDuration("NEWSAPI_TIMEOUT", def.Timeout),
		PageSize:          pkgconfig.GetEnvInt("NEWSAPI_PAGE_SIZE", def.PageSize),
		RequestsPerMinute: pkgconfig.GetEnvInt("NEWSAPI_REQUESTS_PER_MINUTE", def.RequestsPerMinute),
		Burst:             pkgconfig.GetEnvInt("NEWSAPI_BURST", def.Burst),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("newsapi configuration: %w", err)
	}
	return cfg, nil
}

// Package config loads the API server configuration.
//
// Component settings (NewsAPI, RSS, Redis, article extraction, database pool)
// are owned by their infra packages; AppConfig holds what the composition root
// needs to wire them together.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"spectrum-feed/internal/pkg/config"
)

// News provider names accepted by NEWS_PROVIDER.
const (
	ProviderNewsAPI = "newsapi"
	ProviderRSS     = "rss"
)

// AppConfig holds the API server configuration.
type AppConfig struct {
	// HTTPAddr is the listen address. Default: ":8080"
	HTTPAddr string

	// Version is reported by /health. Default: "dev"
	Version string

	// CatalogPath points to a YAML source catalog.
	// Empty means the embedded default catalog.
	CatalogPath string

	// FeedSlots is the number of sources per feed. Range: 1-20, default: 4
	FeedSlots int

	// BalanceSides reserves a slot per side before filling by distance.
	// Default: true
	BalanceSides bool

	// NewsProvider is "newsapi", "rss" or empty for auto selection.
	NewsProvider string

	// RequestTimeout bounds every request handler. Range: 1s-5m, default: 30s
	RequestTimeout time.Duration

	// MaxBodyBytes caps request bodies. Range: 1KiB-10MiB, default: 1MiB
	MaxBodyBytes int

	// ShutdownTimeout bounds graceful shutdown. Range: 1s-2m, default: 10s
	ShutdownTimeout time.Duration

	// TraceSamplePercent is the share of traces sampled. Range: 0-100, default: 10
	TraceSamplePercent int

	// RateLimitEnabled toggles the per-IP limiter. Default: true
	RateLimitEnabled bool

	// RateLimitRPS is the sustained per-IP request rate. Range: 1-10000, default: 10
	RateLimitRPS int

	// RateLimitBurst is the per-IP bucket size. Range: 1-10000, default: 20
	RateLimitBurst int
}

// DefaultAppConfig returns the default configuration.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		HTTPAddr:           ":8080",
		Version:            "dev",
		FeedSlots:          4,
		BalanceSides:       true,
		RequestTimeout:     30 * time.Second,
		MaxBodyBytes:       1 << 20,
		ShutdownTimeout:    10 * time.Second,
		TraceSamplePercent: 10,
		RateLimitEnabled:   true,
		RateLimitRPS:       10,
		RateLimitBurst:     20,
	}
}

// ValidateProvider accepts the known provider names and the empty string.
func ValidateProvider(name string) error {
	switch name {
	case "", ProviderNewsAPI, ProviderRSS:
		return nil
	}
	return fmt.Errorf("unknown news provider %q (must be %s or %s)", name, ProviderNewsAPI, ProviderRSS)
}

// ResolveProvider returns the provider to use. An explicit choice wins;
// otherwise NewsAPI is used when an API key is configured, RSS when not.
func (c *AppConfig) ResolveProvider(hasAPIKey bool) string {
	if c.NewsProvider != "" {
		return c.NewsProvider
	}
	if hasAPIKey {
		return ProviderNewsAPI
	}
	return ProviderRSS
}

// Validate checks the configuration and reports every invalid field at once.
func (c *AppConfig) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, fmt.Errorf("http addr is required"))
	}
	if err := config.ValidateIntRange(c.FeedSlots, 1, 20); err != nil {
		errs = append(errs, fmt.Errorf("feed slots: %w", err))
	}
	if err := ValidateProvider(c.NewsProvider); err != nil {
		errs = append(errs, err)
	}
	if err := config.ValidateDuration(c.RequestTimeout, time.Second, 5*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("request timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.MaxBodyBytes, 1<<10, 10<<20); err != nil {
		errs = append(errs, fmt.Errorf("max body bytes: %w", err))
	}
	if err := config.ValidateDuration(c.ShutdownTimeout, time.Second, 2*time.Minute); err != nil {
		errs = append(errs, fmt.Errorf("shutdown timeout: %w", err))
	}
	if err := config.ValidateIntRange(c.TraceSamplePercent, 0, 100); err != nil {
		errs = append(errs, fmt.Errorf("trace sample percent: %w", err))
	}
	if c.RateLimitEnabled {
		if err := config.ValidateIntRange(c.RateLimitRPS, 1, 10000); err != nil {
			errs = append(errs, fmt.Errorf("rate limit rps: %w", err))
		}
		if err := config.ValidateIntRange(c.RateLimitBurst, 1, 10000); err != nil {
			errs = append(errs, fmt.Errorf("rate limit burst: %w", err))
		}
	}
	if c.CatalogPath != "" {
		// #nosec G304 -- path comes from the operator's environment
		if _, err := os.Stat(c.CatalogPath); err != nil {
			errs = append(errs, fmt.Errorf("catalog path: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed: %v", errs)
	}
	return nil
}

// LoadAppConfig loads the configuration from the environment.
//
// Tunables fail open: an invalid value falls back to its default, logs a
// warning and is counted in metrics. A missing catalog file is the only
// startup error, since silently serving the embedded catalog would hide it.
//
// Environment variables:
//   - HTTP_ADDR, VERSION, CATALOG_PATH
//   - FEED_SLOTS, FEED_BALANCE_SIDES, NEWS_PROVIDER
//   - HTTP_REQUEST_TIMEOUT, HTTP_MAX_BODY_BYTES, SHUTDOWN_TIMEOUT
//   - TRACE_SAMPLE_PERCENT
//   - RATE_LIMIT_ENABLED, RATE_LIMIT_RPS, RATE_LIMIT_BURST
func LoadAppConfig(logger *slog.Logger, metrics *config.ConfigMetrics) (*AppConfig, error) {
	cfg := DefaultAppConfig()
	tr := config.NewFallbackTracker(logger, metrics)

	intIn := func(min, max int) func(int) error {
		return func(v int) error { return config.ValidateIntRange(v, min, max) }
	}
	durationIn := func(min, max time.Duration) func(time.Duration) error {
		return func(d time.Duration) error { return config.ValidateDuration(d, min, max) }
	}

	cfg.HTTPAddr = config.LoadEnvString("HTTP_ADDR", cfg.HTTPAddr)
	cfg.Version = config.LoadEnvString("VERSION", cfg.Version)
	cfg.CatalogPath = config.LoadEnvString("CATALOG_PATH", "")

	result := config.LoadEnvInt("FEED_SLOTS", cfg.FeedSlots, intIn(1, 20))
	cfg.FeedSlots = result.Value.(int)
	tr.Track("feed_slots", result)

	result = config.LoadEnvBool("FEED_BALANCE_SIDES", cfg.BalanceSides)
	cfg.BalanceSides = result.Value.(bool)
	tr.Track("feed_balance_sides", result)

	result = config.LoadEnvWithFallback("NEWS_PROVIDER", "", ValidateProvider)
	cfg.NewsProvider = result.Value.(string)
	tr.Track("news_provider", result)

	result = config.LoadEnvDuration("HTTP_REQUEST_TIMEOUT", cfg.RequestTimeout, durationIn(time.Second, 5*time.Minute))
	cfg.RequestTimeout = result.Value.(time.Duration)
	tr.Track("request_timeout", result)

	result = config.LoadEnvInt("HTTP_MAX_BODY_BYTES", cfg.MaxBodyBytes, intIn(1<<10, 10<<20))
	cfg.MaxBodyBytes = result.Value.(int)
	tr.Track("max_body_bytes", result)

	result = config.LoadEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout, durationIn(time.Second, 2*time.Minute))
	cfg.ShutdownTimeout = result.Value.(time.Duration)
	tr.Track("shutdown_timeout", result)

	result = config.LoadEnvInt("TRACE_SAMPLE_PERCENT", cfg.TraceSamplePercent, intIn(0, 100))
	cfg.TraceSamplePercent = result.Value.(int)
	tr.Track("trace_sample_percent", result)

	result = config.LoadEnvBool("RATE_LIMIT_ENABLED", cfg.RateLimitEnabled)
	cfg.RateLimitEnabled = result.Value.(bool)
	tr.Track("rate_limit_enabled", result)

	result = config.LoadEnvInt("RATE_LIMIT_RPS", cfg.RateLimitRPS, intIn(1, 10000))
	cfg.RateLimitRPS = result.Value.(int)
	tr.Track("rate_limit_rps", result)

	result = config.LoadEnvInt("RATE_LIMIT_BURST", cfg.RateLimitBurst, intIn(1, 10000))
	cfg.RateLimitBurst = result.Value.(int)
	tr.Track("rate_limit_burst", result)

	tr.Finish()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

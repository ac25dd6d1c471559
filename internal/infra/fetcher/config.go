package fetcher

import (
	"fmt"
	"time"

	pkgconfig "spectrum-feed/pkg/config"
)

// ExtractConfig holds the configuration for fetching and extracting article pages.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF attacks by blocking private IP addresses
//   - MaxBodySize: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Prevents infinite redirect loops
//   - Timeout: Prevents resource starvation from slow servers
type ExtractConfig struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// This is enforced during response reading, not based on Content-Length header.
	// Default: 5242880 (5MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of HTTP redirects to follow.
	// Each redirect target is validated for security (SSRF check).
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs controls whether to block access to private IP addresses.
	// Should always be true in production.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent is sent with every page request.
	UserAgent string
}

// DefaultConfig returns the default configuration for article extraction.
func DefaultConfig() ExtractConfig {
	return ExtractConfig{
		Timeout:        10 * time.Second,
		MaxBodySize:    5 * 1024 * 1024, // 5MB
		MaxRedirects:   5,
		DenyPrivateIPs: true,
		UserAgent:      "SpectrumFeedBot/1.0 (+https://github.com/spectrum-feed)",
	}
}

// Validate checks if the configuration values are valid and safe.
//
// Validation rules:
//   - Timeout: 1s-60s
//   - MaxBodySize: 1KB-50MB
//   - MaxRedirects: 0-10
//   - UserAgent: non-empty
func (c *ExtractConfig) Validate() error {
	if err := pkgconfig.ValidateRange(c.Timeout, time.Second, time.Minute); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBodySize := int64(1024)             // 1KB
	maxBodySize := int64(50 * 1024 * 1024) // 50MB
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d", minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	if c.UserAgent == "" {
		return fmt.Errorf("user agent must not be empty")
	}
	return nil
}

// LoadConfigFromEnv loads configuration from environment variables.
// If a variable is not set or unparsable, the default value is used.
// After loading, the configuration is validated.
//
// Environment variables:
//   - ARTICLE_FETCH_TIMEOUT: duration string, e.g., "10s" (default: 10s)
//   - ARTICLE_FETCH_MAX_BODY_SIZE: integer in bytes (default: 5242880)
//   - ARTICLE_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - ARTICLE_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
//   - ARTICLE_FETCH_USER_AGENT: string
func LoadConfigFromEnv() (ExtractConfig, error) {
	def := DefaultConfig()
	cfg := ExtractConfig{
		Timeout:        pkgconfig.GetEnvDuration("ARTICLE_FETCH_TIMEOUT", def.Timeout),
		MaxBodySize:    int64(pkgconfig.GetEnvInt("ARTICLE_FETCH_MAX_BODY_SIZE", int(def.MaxBodySize))),
		MaxRedirects:   pkgconfig.GetEnvInt("ARTICLE_FETCH_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs: pkgconfig.GetEnvBool("ARTICLE_FETCH_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		UserAgent:      pkgconfig.GetEnvString("ARTICLE_FETCH_USER_AGENT", def.UserAgent),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

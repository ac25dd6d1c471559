package fetcher_test

import (
	"testing"
	"time"

	"spectrum-feed/internal/infra/fetcher"
)

func TestDefaultConfig(t *testing.T) {
	cfg := fetcher.DefaultConfig()

	if cfg.Timeout != 10*time.Second {
		t.Errorf("expected Timeout=10s, got %v", cfg.Timeout)
	}
	if cfg.MaxBodySize != 5*1024*1024 {
		t.Errorf("expected MaxBodySize=5MB, got %d", cfg.MaxBodySize)
	}
	if cfg.MaxRedirects != 5 {
		t.Errorf("expected MaxRedirects=5, got %d", cfg.MaxRedirects)
	}
	if !cfg.DenyPrivateIPs {
		t.Error("expected DenyPrivateIPs=true by default (security)")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid, got error: %v", err)
	}
}

func TestConfigValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*fetcher.ExtractConfig)
	}{
		{"zero timeout", func(c *fetcher.ExtractConfig) { c.Timeout = 0 }},
		{"timeout too long", func(c *fetcher.ExtractConfig) { c.Timeout = 2 * time.Minute }},
		{"body too small", func(c *fetcher.ExtractConfig) { c.MaxBodySize = 512 }},
		{"body too large", func(c *fetcher.ExtractConfig) { c.MaxBodySize = 100 * 1024 * 1024 }},
		{"negative redirects", func(c *fetcher.ExtractConfig) { c.MaxRedirects = -1 }},
		{"too many redirects", func(c *fetcher.ExtractConfig) { c.MaxRedirects = 11 }},
		{"empty user agent", func(c *fetcher.ExtractConfig) { c.UserAgent = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := fetcher.DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadConfigFromEnv_Defaults(t *testing.T) {
	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != fetcher.DefaultConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadConfigFromEnv_CustomValues(t *testing.T) {
	t.Setenv("ARTICLE_FETCH_TIMEOUT", "5s")
	t.Setenv("ARTICLE_FETCH_MAX_BODY_SIZE", "2048")
	t.Setenv("ARTICLE_FETCH_MAX_REDIRECTS", "2")
	t.Setenv("ARTICLE_FETCH_DENY_PRIVATE_IPS", "false")
	t.Setenv("ARTICLE_FETCH_USER_AGENT", "TestBot/2.0")

	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := fetcher.ExtractConfig{
		Timeout:        5 * time.Second,
		MaxBodySize:    2048,
		MaxRedirects:   2,
		DenyPrivateIPs: false,
		UserAgent:      "TestBot/2.0",
	}
	if cfg != want {
		t.Errorf("got %+v, want %+v", cfg, want)
	}
}

func TestLoadConfigFromEnv_UnparsableFallsBack(t *testing.T) {
	t.Setenv("ARTICLE_FETCH_TIMEOUT", "soon")
	t.Setenv("ARTICLE_FETCH_MAX_REDIRECTS", "many")

	cfg, err := fetcher.LoadConfigFromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Timeout != 10*time.Second || cfg.MaxRedirects != 5 {
		t.Errorf("expected defaults for unparsable values, got %+v", cfg)
	}
}

func TestLoadConfigFromEnv_OutOfRange(t *testing.T) {
	t.Setenv("ARTICLE_FETCH_MAX_REDIRECTS", "50")

	if _, err := fetcher.LoadConfigFromEnv(); err == nil {
		t.Error("expected validation error")
	}
}

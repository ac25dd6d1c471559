package middleware

import (
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteAddrExtractor(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		want       string
		wantErr    bool
	}{
		{"IPv4 with port", "192.168.1.1:54321", "192.168.1.1", false},
		{"IPv6 with port", "[2001:db8::1]:443", "2001:db8::1", false},
		{"IPv4 without port", "10.0.0.7", "10.0.0.7", false},
		{"IPv6 without port", "[::1]", "::1", false},
		{"garbage", "not-an-address", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/feed", nil)
			req.RemoteAddr = tt.remoteAddr

			got, err := RemoteAddrExtractor{}.ExtractIP(req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTrustedProxyExtractor(t *testing.T) {
	cfg := TrustedProxyConfig{
		Enabled:      true,
		AllowedCIDRs: []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")},
	}

	tests := []struct {
		name       string
		cfg        TrustedProxyConfig
		remoteAddr string
		xff        string
		xRealIP    string
		want       string
	}{
		{"trusted proxy uses first XFF entry", cfg, "10.1.2.3:80", "203.0.113.5, 10.1.2.3", "", "203.0.113.5"},
		{"trusted proxy falls back to X-Real-IP", cfg, "10.1.2.3:80", "", "198.51.100.9", "198.51.100.9"},
		{"invalid XFF falls through to X-Real-IP", cfg, "10.1.2.3:80", "bogus", "198.51.100.9", "198.51.100.9"},
		{"trusted proxy without headers", cfg, "10.1.2.3:80", "", "", "10.1.2.3"},
		{"untrusted peer headers ignored", cfg, "192.0.2.1:80", "203.0.113.5", "198.51.100.9", "192.0.2.1"},
		{"disabled config ignores headers", TrustedProxyConfig{}, "10.1.2.3:80", "203.0.113.5", "", "10.1.2.3"},
		{"IPv6 client", cfg, "10.1.2.3:80", "2001:db8::5", "", "2001:db8::5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/feed", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xRealIP != "" {
				req.Header.Set("X-Real-IP", tt.xRealIP)
			}

			got, err := NewTrustedProxyExtractor(tt.cfg).ExtractIP(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := ParseTrustedProxies([]string{"192.168.1.1", " 10.0.0.0/8 ", "", "2001:db8::/32", "::1"})
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("192.168.1.1/32"),
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("2001:db8::/32"),
		netip.MustParsePrefix("::1/128"),
	}, got)

	_, err = ParseTrustedProxies([]string{"10.0.0.0/8", "nope"})
	assert.Error(t, err)
}

func TestLoadTrustedProxyConfig(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		cfg, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.False(t, cfg.Enabled)
		assert.IsType(t, RemoteAddrExtractor{}, NewIPExtractor(cfg))
	})

	t.Run("enabled with proxies", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8,172.16.0.1")

		cfg, err := LoadTrustedProxyConfig()
		require.NoError(t, err)
		assert.True(t, cfg.Enabled)
		assert.Len(t, cfg.AllowedCIDRs, 2)
		assert.True(t, cfg.IsTrusted("172.16.0.1:443"))
		assert.False(t, cfg.IsTrusted("172.16.0.2:443"))
		assert.IsType(t, &TrustedProxyExtractor{}, NewIPExtractor(cfg))
	})

	t.Run("enabled without proxies fails", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")

		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})

	t.Run("invalid proxy fails", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_TRUST_PROXY", "true")
		t.Setenv("RATE_LIMIT_TRUSTED_PROXIES", "10.0.0.0/8,proxy.local")

		_, err := LoadTrustedProxyConfig()
		assert.Error(t, err)
	})
}

func TestParseFirstIP(t *testing.T) {
	assert.Equal(t, "192.168.1.1", parseFirstIP("192.168.1.1, 10.0.0.1"))
	assert.Equal(t, "192.168.1.1", parseFirstIP(" 192.168.1.1 "))
	assert.Equal(t, "", parseFirstIP("invalid, 10.0.0.1"))
	assert.Equal(t, "", parseFirstIP(""))
}

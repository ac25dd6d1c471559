package middleware

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/netip"
	"strings"

	pkgconfig "spectrum-feed/pkg/config"
)

// IPExtractor extracts the client IP address used as the rate limit key.
type IPExtractor interface {
	ExtractIP(r *http.Request) (string, error)
}

// RemoteAddrExtractor uses the TCP peer address only. Headers are ignored,
// so clients cannot rotate their apparent address.
type RemoteAddrExtractor struct{}

// ExtractIP strips the port from r.RemoteAddr.
//
// Examples:
//   - "192.168.1.1:54321" → "192.168.1.1"
//   - "[2001:db8::1]:8080" → "2001:db8::1"
func (RemoteAddrExtractor) ExtractIP(r *http.Request) (string, error) {
	return extractIPFromAddr(r.RemoteAddr)
}

// TrustedProxyConfig lists the reverse proxies whose forwarding headers are honoured.
type TrustedProxyConfig struct {
	Enabled      bool
	AllowedCIDRs []netip.Prefix
}

// IsTrusted reports whether remoteAddr falls inside one of the trusted ranges.
func (c TrustedProxyConfig) IsTrusted(remoteAddr string) bool {
	ip, err := extractIPFromAddr(remoteAddr)
	if err != nil {
		return false
	}
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	for _, prefix := range c.AllowedCIDRs {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}

// ParseTrustedProxies parses single IPs and CIDR ranges.
// Single addresses become /32 or /128 prefixes.
func ParseTrustedProxies(entries []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid IP or CIDR %q", entry)
		}
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// LoadTrustedProxyConfig reads RATE_LIMIT_TRUST_PROXY and RATE_LIMIT_TRUSTED_PROXIES.
// Enabling trust without any valid proxy is a startup error.
func LoadTrustedProxyConfig() (TrustedProxyConfig, error) {
	cfg := TrustedProxyConfig{
		Enabled: pkgconfig.GetEnvBool("RATE_LIMIT_TRUST_PROXY", false),
	}
	if !cfg.Enabled {
		return cfg, nil
	}

	prefixes, err := ParseTrustedProxies(pkgconfig.GetEnvStringList("RATE_LIMIT_TRUSTED_PROXIES", nil))
	if err != nil {
		return TrustedProxyConfig{}, fmt.Errorf("RATE_LIMIT_TRUSTED_PROXIES: %w", err)
	}
	if len(prefixes) == 0 {
		return TrustedProxyConfig{}, fmt.Errorf("RATE_LIMIT_TRUST_PROXY is enabled but RATE_LIMIT_TRUSTED_PROXIES is empty")
	}
	cfg.AllowedCIDRs = prefixes
	return cfg, nil
}

// TrustedProxyExtractor reads X-Forwarded-For, then X-Real-IP, but only when the
// peer is a trusted proxy. Anything else falls back to RemoteAddr.
type TrustedProxyExtractor struct {
	config TrustedProxyConfig
}

// NewTrustedProxyExtractor returns an extractor for cfg.
func NewTrustedProxyExtractor(cfg TrustedProxyConfig) *TrustedProxyExtractor {
	return &TrustedProxyExtractor{config: cfg}
}

// NewIPExtractor picks the extractor matching cfg.
func NewIPExtractor(cfg TrustedProxyConfig) IPExtractor {
	if !cfg.Enabled {
		return RemoteAddrExtractor{}
	}
	return NewTrustedProxyExtractor(cfg)
}

// ExtractIP implements IPExtractor.
func (e *TrustedProxyExtractor) ExtractIP(r *http.Request) (string, error) {
	if !e.config.Enabled {
		return extractIPFromAddr(r.RemoteAddr)
	}

	if !e.config.IsTrusted(r.RemoteAddr) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			slog.Warn("untrusted peer sent X-Forwarded-For",
				slog.String("remote_addr", r.RemoteAddr),
				slog.String("x_forwarded_for", xff))
		}
		return extractIPFromAddr(r.RemoteAddr)
	}

	if ip := parseFirstIP(r.Header.Get("X-Forwarded-For")); ip != "" {
		return ip, nil
	}
	if ip := net.ParseIP(strings.TrimSpace(r.Header.Get("X-Real-IP"))); ip != nil {
		return ip.String(), nil
	}
	return extractIPFromAddr(r.RemoteAddr)
}

func extractIPFromAddr(addr string) (string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		// ポートなしのアドレス
		if ip := net.ParseIP(strings.Trim(addr, "[]")); ip != nil {
			return ip.String(), nil
		}
		return "", fmt.Errorf("invalid address format: %s", addr)
	}
	return host, nil
}

// parseFirstIP returns the client entry of an X-Forwarded-For list, or "".
func parseFirstIP(s string) string {
	first, _, _ := strings.Cut(s, ",")
	if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
		return ip.String()
	}
	return ""
}

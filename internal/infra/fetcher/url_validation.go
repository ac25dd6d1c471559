// Package fetcher fetches article pages and extracts their readable content.
package fetcher

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"net/url"

	"spectrum-feed/internal/domain/entity"
)

// validateURL rejects URLs the extractor must not fetch: non-http(s)
// schemes, missing hosts and, with denyPrivate set, hosts that are or
// resolve to a restricted address (see entity.IsRestrictedAddr).
// Redirect targets go through the same check.
func validateURL(ctx context.Context, resolver *net.Resolver, rawURL string, denyPrivate bool) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: parse error: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme '%s' not allowed (only http/https)", ErrInvalidURL, u.Scheme)
	}
	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("%w: empty hostname", ErrInvalidURL)
	}
	if !denyPrivate {
		return nil
	}

	// IPリテラルはDNSを引かずに判定
	if addr, err := netip.ParseAddr(host); err == nil {
		if entity.IsRestrictedAddr(addr) {
			return fmt.Errorf("%w: %s", ErrPrivateIP, addr)
		}
		return nil
	}

	addrs, err := resolver.LookupNetIP(ctx, "ip", host)
	if err != nil {
		return fmt.Errorf("%w: DNS lookup failed for %s: %v", ErrInvalidURL, host, err)
	}
	for _, addr := range addrs {
		if entity.IsRestrictedAddr(addr) {
			return fmt.Errorf("%w: hostname '%s' resolves to %s", ErrPrivateIP, host, addr)
		}
	}
	return nil
}

package entity

import (
	"fmt"
	"math"
	"net/netip"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// maxURLLength defines the maximum allowed length for URLs to prevent DoS attacks.
	maxURLLength = 2048

	maxUserIDLength = 128

	// maxEmojiRunes allows ZWJ sequences and skin-tone modifiers.
	maxEmojiRunes = 8
)

// ValidateURLFormat checks that rawURL is a well-formed absolute http(s) URL.
// It performs no network lookups.
func ValidateURLFormat(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "URL is required"}
	}
	if len(rawURL) > maxURLLength {
		return &ValidationError{
			Field:   "url",
			Message: fmt.Sprintf("url must not exceed %d characters", maxURLLength),
		}
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return &ValidationError{Field: "url", Message: "URL is invalid"}
	}

	// HTTPまたはHTTPSスキームのみ許可
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "URL must use http or https scheme"}
	}
	if parsedURL.Hostname() == "" {
		return &ValidationError{Field: "url", Message: "URL must have a valid host"}
	}
	return nil
}

// ValidateCoordinate rejects NaN and infinite coordinates.
func ValidateCoordinate(x, y float64) error {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return &ValidationError{Field: "x", Message: "must be a finite number"}
	}
	if math.IsNaN(y) || math.IsInf(y, 0) {
		return &ValidationError{Field: "y", Message: "must be a finite number"}
	}
	return nil
}

// ValidateEmoji checks that s is a short, non-blank symbol sequence.
func ValidateEmoji(s string) error {
	if s == "" {
		return &ValidationError{Field: "emoji", Message: "is required"}
	}
	if !utf8.ValidString(s) {
		return &ValidationError{Field: "emoji", Message: "must be valid UTF-8"}
	}
	if utf8.RuneCountInString(s) > maxEmojiRunes {
		return &ValidationError{Field: "emoji", Message: "too long"}
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsControl(r) {
			return &ValidationError{Field: "emoji", Message: "must be an emoji"}
		}
	}
	return nil
}

// Validate validates a reaction before it is persisted.
func (r *Reaction) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return &ValidationError{Field: "userId", Message: "is required"}
	}
	if len(r.UserID) > maxUserIDLength {
		return &ValidationError{Field: "userId", Message: "too long"}
	}
	if strings.TrimSpace(r.ArticleID) == "" {
		return &ValidationError{Field: "articleId", Message: "is required"}
	}
	if len(r.ArticleID) > maxURLLength {
		return &ValidationError{Field: "articleId", Message: "too long"}
	}
	return ValidateEmoji(r.Emoji)
}

// restrictedPrefixes are ranges net/netip has no predicate for.
var restrictedPrefixes = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),     // "this" network
	netip.MustParsePrefix("100.64.0.0/10"), // carrier-grade NAT
}

// IsRestrictedAddr reports whether a server must not be made to connect to
// addr: loopback, private, link-local (cloud metadata included), unspecified
// and the ranges above. IPv4-mapped IPv6 addresses are checked as IPv4.
func IsRestrictedAddr(addr netip.Addr) bool {
	addr = addr.Unmap()
	if !addr.IsValid() {
		return true
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() ||
		addr.IsLinkLocalUnicast() || addr.IsLinkLocalMulticast() {
		return true
	}
	for _, p := range restrictedPrefixes {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

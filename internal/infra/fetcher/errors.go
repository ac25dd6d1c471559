package fetcher

import (
	"errors"
	"fmt"

	"spectrum-feed/internal/domain/entity"
)

// Sentinel errors for article extraction.
// ErrInvalidURL and ErrPrivateIP wrap entity.ErrInvalidInput so callers can
// tell rejected input apart from upstream failures.
var (
	// ErrInvalidURL indicates the URL format is invalid or uses an unsupported scheme.
	// Only http:// and https:// schemes are supported.
	ErrInvalidURL = fmt.Errorf("%w: invalid URL or unsupported scheme", entity.ErrInvalidInput)

	// ErrPrivateIP indicates the URL resolves to a private IP address (SSRF prevention).
	ErrPrivateIP = fmt.Errorf("%w: private IP access denied", entity.ErrInvalidInput)

	// ErrTooManyRedirects indicates the redirect chain exceeded the configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("request timeout")

	// ErrNotHTML indicates the response is not an HTML document.
	ErrNotHTML = errors.New("response is not HTML")

	// ErrReadabilityFailed indicates no readable content could be extracted.
	ErrReadabilityFailed = errors.New("content extraction failed")
)

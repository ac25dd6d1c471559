// Package article provides the article reading use case: fetching a news page
// and returning its readable content, with caching.
package article

import "errors"

// Sentinel errors for article use case operations.
var (
	// ErrInvalidArticleURL indicates that the requested URL is malformed or not
	// allowed to be fetched (unsupported scheme, private address).
	ErrInvalidArticleURL = errors.New("invalid article URL")

	// ErrExtractionFailed indicates that the page could not be fetched or no
	// readable content was found in it.
	ErrExtractionFailed = errors.New("article extraction failed")
)

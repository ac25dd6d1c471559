// Package feed assembles viewpoint-balanced feeds from a position on the bias plane.
// Selector and AssembleCards are pure; Service wires them to a news provider and a cache.
package feed

import "errors"

// Sentinel errors for feed use case operations.
var (
	// ErrInvalidCoordinate indicates that a query coordinate is missing or not a finite number.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrProviderFailed indicates that the news provider could not supply articles.
	// The feed cannot be assembled without them.
	ErrProviderFailed = errors.New("news provider failed")
)

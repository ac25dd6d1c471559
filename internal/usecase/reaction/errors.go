// Package reaction provides use cases for recording emoji reactions to articles.
package reaction

import "errors"

// Sentinel errors for reaction use case operations.
var (
	// ErrInvalidReaction indicates that a reaction failed validation.
	ErrInvalidReaction = errors.New("invalid reaction")

	// ErrReactionNotFound indicates that the user has not reacted to the article.
	ErrReactionNotFound = errors.New("reaction not found")
)

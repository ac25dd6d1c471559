// Package repository declares the persistence ports used by the use cases.
package repository

import (
	"context"

	"spectrum-feed/internal/domain/entity"
)

// ReactionRepository persists emoji reactions to articles.
type ReactionRepository interface {
	// Upsert stores the reaction, replacing any earlier reaction by the same
	// user to the same article. On return r.ID and r.CreatedAt reflect the
	// stored row.
	Upsert(ctx context.Context, r *entity.Reaction) error

	// CountByArticle returns the number of reactions per emoji for an article,
	// ordered by count descending then emoji ascending.
	// Returns an empty slice (not nil) when the article has no reactions.
	CountByArticle(ctx context.Context, articleID string) ([]entity.ReactionCount, error)

	// GetByUser returns the user's current reaction to an article, or
	// entity.ErrNotFound.
	GetByUser(ctx context.Context, userID, articleID string) (*entity.Reaction, error)
}

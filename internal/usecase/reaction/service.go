package reaction

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/repository"
)

// maxClockSkew bounds how far in the future a client timestamp may be.
const maxClockSkew = 5 * time.Minute

// CreateInput represents a reaction submitted by a client.
// ReactedAt is optional; the zero value means "now".
type CreateInput struct {
	UserID    string
	ArticleID string
	Emoji     string
	ReactedAt time.Time
}

// Service records reactions and summarises them per article.
type Service struct {
	Repo repository.ReactionRepository
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates and stores a reaction. A user's later reaction to the
// same article replaces the earlier one.
// Returns an error wrapping ErrInvalidReaction if validation fails.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Reaction, error) {
	now := s.now().UTC()
	r := &entity.Reaction{
		ID:        uuid.NewString(),
		UserID:    strings.TrimSpace(in.UserID),
		ArticleID: strings.TrimSpace(in.ArticleID),
		Emoji:     strings.TrimSpace(in.Emoji),
		ReactedAt: in.ReactedAt.UTC(),
		CreatedAt: now,
	}
	if in.ReactedAt.IsZero() {
		r.ReactedAt = now
	}

	if err := r.Validate(); err != nil {
		metrics.RecordReaction("invalid")
		return nil, fmt.Errorf("%w: %w", ErrInvalidReaction, err)
	}
	if r.ReactedAt.After(now.Add(maxClockSkew)) {
		metrics.RecordReaction("invalid")
		return nil, fmt.Errorf("%w: %w", ErrInvalidReaction,
			&entity.ValidationError{Field: "timestamp", Message: "must not be in the future"})
	}

	if err := s.Repo.Upsert(ctx, r); err != nil {
		metrics.RecordReaction("error")
		return nil, fmt.Errorf("store reaction: %w", err)
	}
	metrics.RecordReaction("stored")
	return r, nil
}

// Summary returns per-emoji counts for an article.
func (s *Service) Summary(ctx context.Context, articleID string) ([]entity.ReactionCount, error) {
	articleID = strings.TrimSpace(articleID)
	if articleID == "" {
		return nil, fmt.Errorf("%w: %w", ErrInvalidReaction,
			&entity.ValidationError{Field: "articleId", Message: "is required"})
	}
	counts, err := s.Repo.CountByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("count reactions: %w", err)
	}
	return counts, nil
}

// Get returns a user's current reaction to an article.
func (s *Service) Get(ctx context.Context, userID, articleID string) (*entity.Reaction, error) {
	r, err := s.Repo.GetByUser(ctx, strings.TrimSpace(userID), strings.TrimSpace(articleID))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrReactionNotFound
		}
		return nil, fmt.Errorf("get reaction: %w", err)
	}
	return r, nil
}

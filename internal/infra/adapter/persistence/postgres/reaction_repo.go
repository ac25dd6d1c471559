// Package postgres implements the repository ports on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/metrics"
	"spectrum-feed/internal/repository"
	"spectrum-feed/internal/resilience/circuitbreaker"
)

type ReactionRepo struct {
	db *circuitbreaker.DBCircuitBreaker
}

func NewReactionRepo(db *sql.DB) repository.ReactionRepository {
	return &ReactionRepo{db: circuitbreaker.NewDBCircuitBreaker(db)}
}

// Upsert inserts the reaction or replaces the user's earlier reaction to the
// same article. An update whose reacted_at is older than the stored one is
// ignored and r is overwritten with the stored row.
func (repo *ReactionRepo) Upsert(ctx context.Context, r *entity.Reaction) error {
	const query = `
INSERT INTO reactions (id, user_id, article_id, emoji, reacted_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (user_id, article_id) DO UPDATE
SET emoji = EXCLUDED.emoji, reacted_at = EXCLUDED.reacted_at
WHERE reactions.reacted_at <= EXCLUDED.reacted_at
RETURNING id, emoji, reacted_at, created_at`

	start := time.Now()
	defer func() { metrics.RecordDBQuery("reaction_upsert", time.Since(start)) }()

	rows, err := repo.db.QueryContext(ctx, query,
		r.ID, r.UserID, r.ArticleID, r.Emoji, r.ReactedAt, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if rows.Next() {
		if err := rows.Scan(&r.ID, &r.Emoji, &r.ReactedAt, &r.CreatedAt); err != nil {
			return fmt.Errorf("Upsert: %w", err)
		}
		return rows.Err()
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}

	// 古いリアクションは反映しない。保存済みの行を返す
	stored, err := repo.GetByUser(ctx, r.UserID, r.ArticleID)
	if err != nil {
		return fmt.Errorf("Upsert: %w", err)
	}
	*r = *stored
	return nil
}

// CountByArticle returns the emoji counts of an article, most used first.
func (repo *ReactionRepo) CountByArticle(ctx context.Context, articleID string) ([]entity.ReactionCount, error) {
	const query = `
SELECT emoji, COUNT(*) AS cnt
FROM reactions
WHERE article_id = $1
GROUP BY emoji
ORDER BY cnt DESC, emoji ASC`

	start := time.Now()
	defer func() { metrics.RecordDBQuery("reaction_count", time.Since(start)) }()

	rows, err := repo.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, fmt.Errorf("CountByArticle: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make([]entity.ReactionCount, 0, 8)
	for rows.Next() {
		var c entity.ReactionCount
		if err := rows.Scan(&c.Emoji, &c.Count); err != nil {
			return nil, fmt.Errorf("CountByArticle: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("CountByArticle: %w", err)
	}
	return counts, nil
}

// GetByUser returns the user's reaction to an article or entity.ErrNotFound.
func (repo *ReactionRepo) GetByUser(ctx context.Context, userID, articleID string) (*entity.Reaction, error) {
	const query = `
SELECT id, user_id, article_id, emoji, reacted_at, created_at
FROM reactions
WHERE user_id = $1 AND article_id = $2
LIMIT 1`

	start := time.Now()
	defer func() { metrics.RecordDBQuery("reaction_get", time.Since(start)) }()

	var r entity.Reaction
	err := repo.db.QueryRowScan(ctx, query, []any{userID, articleID},
		&r.ID, &r.UserID, &r.ArticleID, &r.Emoji, &r.ReactedAt, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("GetByUser: %w", err)
	}
	return &r, nil
}

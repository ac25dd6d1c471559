package db

import (
	"context"
	"database/sql"
	"fmt"
)

// schema is applied in order by MigrateUp. Every statement is idempotent.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS reactions (
    id          UUID PRIMARY KEY,
    user_id     TEXT NOT NULL,
    article_id  TEXT NOT NULL,
    emoji       TEXT NOT NULL,
    reacted_at  TIMESTAMPTZ NOT NULL,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT uq_reactions_user_article UNIQUE (user_id, article_id)
)`,
	// 記事ごとの集計用
	`CREATE INDEX IF NOT EXISTS idx_reactions_article_id ON reactions(article_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reactions_article_emoji ON reactions(article_id, emoji)`,
}

// MigrateUp creates the reactions schema.
func MigrateUp(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration step %d: %w", i+1, err)
		}
	}
	return nil
}

// MigrateDown drops the reactions schema.
// Use with caution: this deletes every stored reaction.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	dropStatements := []string{
		`DROP INDEX IF EXISTS idx_reactions_article_emoji`,
		`DROP INDEX IF EXISTS idx_reactions_article_id`,
		`DROP TABLE IF EXISTS reactions`,
	}
	for _, stmt := range dropStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

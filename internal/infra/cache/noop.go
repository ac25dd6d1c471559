package cache

import (
	"context"

	"spectrum-feed/internal/domain/entity"
)

// NoopCache is used when no Redis is configured. Every lookup misses.
type NoopCache struct{}

func (NoopCache) GetFeed(context.Context, float64, float64) ([]entity.Card, bool) { return nil, false }
func (NoopCache) SetFeed(context.Context, float64, float64, []entity.Card)        {}

func (NoopCache) GetArticle(context.Context, string) (*entity.ExtractedArticle, bool) {
	return nil, false
}
func (NoopCache) SetArticle(context.Context, string, *entity.ExtractedArticle) {}

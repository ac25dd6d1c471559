package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/observability/metrics"
)

// Extractor fetches a page and extracts its readable content.
// Errors for URLs that must not be fetched wrap entity.ErrInvalidInput.
type Extractor interface {
	Extract(ctx context.Context, url string) (*entity.ExtractedArticle, error)
}

// Cache stores extracted articles by URL. Implementations are fail-open.
type Cache interface {
	GetArticle(ctx context.Context, url string) (*entity.ExtractedArticle, bool)
	SetArticle(ctx context.Context, url string, a *entity.ExtractedArticle)
}

type noCache struct{}

func (noCache) GetArticle(context.Context, string) (*entity.ExtractedArticle, bool) {
	return nil, false
}
func (noCache) SetArticle(context.Context, string, *entity.ExtractedArticle) {}

// Service provides the article reading use case.
type Service struct {
	extractor Extractor
	cache     Cache
	group     singleflight.Group
}

// NewService creates an article service. A nil cache disables caching.
func NewService(extractor Extractor, cache Cache) *Service {
	if cache == nil {
		cache = noCache{}
	}
	return &Service{extractor: extractor, cache: cache}
}

// Extract returns the readable form of the article at rawURL.
// It returns ErrInvalidArticleURL for URLs that cannot be fetched and
// ErrExtractionFailed when the page could not be read.
func (s *Service) Extract(ctx context.Context, rawURL string) (*entity.ExtractedArticle, error) {
	rawURL = strings.TrimSpace(rawURL)
	if err := entity.ValidateURLFormat(rawURL); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArticleURL, err)
	}

	if a, ok := s.cache.GetArticle(ctx, rawURL); ok {
		metrics.RecordArticleExtractionCached()
		return a, nil
	}

	v, err, _ := s.group.Do(rawURL, func() (any, error) {
		// 共有呼び出しは最初のリクエストのキャンセルに巻き込まない
		detached := context.WithoutCancel(ctx)
		start := time.Now()
		a, err := s.extractor.Extract(detached, rawURL)
		if err != nil {
			metrics.RecordArticleExtractionFailed(time.Since(start))
			return nil, err
		}
		metrics.RecordArticleExtractionSuccess(time.Since(start), a.Length)
		s.cache.SetArticle(detached, rawURL, a)
		return a, nil
	})
	if err != nil {
		if errors.Is(err, entity.ErrInvalidInput) || entity.IsValidation(err) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidArticleURL, err)
		}
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}

	a := *v.(*entity.ExtractedArticle)
	return &a, nil
}

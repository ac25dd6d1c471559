package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/feed"
	feedUC "spectrum-feed/internal/usecase/feed"
)

/*──────────────── インメモリスタブ ────────────────*/

type stubService struct {
	cards  []entity.Card
	err    error
	called bool
	x, y   float64
}

func (s *stubService) Feed(_ context.Context, x, y float64) ([]entity.Card, error) {
	s.called = true
	s.x, s.y = x, y
	return s.cards, s.err
}

type stubProvider struct {
	articles []entity.Article
	gotIDs   []string
}

func (p *stubProvider) FetchArticles(_ context.Context, ids []string) ([]entity.Article, error) {
	p.gotIDs = ids
	return p.articles, nil
}

/*──────────────── テスト ────────────────*/

func serve(t *testing.T, svc feed.Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	feed.Register(mux, svc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body["error"]
}

func TestHandler_RejectsBadCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		wantMsg string
	}{
		{"missing x", "/feed?y=0", "x is required"},
		{"missing both", "/feed", "x is required"},
		{"empty y", "/feed?x=0.5&y=", "y is required"},
		{"blank y", "/feed?x=0.5&y=%20", "y is required"},
		{"non-numeric x", "/feed?x=left&y=0", "x must be a number"},
		{"NaN", "/feed?x=NaN&y=0", "x must be a finite number"},
		{"infinite y", "/feed?x=0&y=-Inf", "y must be a finite number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}
			rec := serve(t, svc, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
			assert.False(t, svc.called, "service must not be reached")
		})
	}
}

func TestHandler_Success(t *testing.T) {
	published := time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)
	svc := &stubService{cards: []entity.Card{{
		ArticleID:   "https://example.com/a",
		Title:       "A",
		SourceID:    "reuters",
		SourceName:  "Reuters",
		ImageURL:    "https://example.com/a.jpg",
		URL:         "https://example.com/a",
		PublishedAt: published,
		Side:        entity.SideCenter,
	}}}

	rec := serve(t, svc, "/feed?x=-0.25&y=1e-1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, -0.25, svc.x)
	assert.Equal(t, 0.1, svc.y)
	assert.JSONEq(t, `[{
		"articleId": "https://example.com/a",
		"title": "A",
		"sourceId": "reuters",
		"sourceName": "Reuters",
		"imageUrl": "https://example.com/a.jpg",
		"url": "https://example.com/a",
		"publishedAt": "2026-10-18T09:30:00Z",
		"side": "CENTER"
	}]`, rec.Body.String())
}

func TestHandler_EmptyFeedIsEmptyArray(t *testing.T) {
	rec := serve(t, &stubService{}, "/feed?x=0&y=0")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"provider failure", fmt.Errorf("%w: timeout", feedUC.ErrProviderFailed), http.StatusBadGateway, "news provider unavailable"},
		{"invalid coordinate", fmt.Errorf("%w: out of range", feedUC.ErrInvalidCoordinate), http.StatusBadRequest, "invalid coordinate: out of range"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, "/feed?x=0&y=0")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantMsg, errorMessage(t, rec))
		})
	}
}

func TestHandler_WithFeedService(t *testing.T) {
	// A(LEFT) が近く、B(RIGHT) の記事しかない場合
	sources := []entity.Source{
		{ID: "A", Name: "Alpha", Side: entity.SideLeft, X: 0, Y: 0},
		{ID: "B", Name: "Beta", Side: entity.SideRight, X: 10, Y: 10},
	}
	provider := &stubProvider{articles: []entity.Article{
		{ID: "https://b.example/1", Title: "from B", SourceID: "B"},
	}}
	svc := feedUC.NewService(feedUC.NewSelector(sources, feedUC.DefaultSelectorConfig()), provider, nil)

	rec := serve(t, svc, "/feed?x=1&y=1")

	require.Equal(t, http.StatusOK, rec.Code)
	var cards []feed.CardDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cards))
	require.Len(t, cards, 2)

	assert.Equal(t, []string{"A", "B"}, provider.gotIDs)
	assert.Equal(t, "A", cards[0].SourceID)
	assert.Equal(t, "Alpha", cards[0].SourceName)
	assert.Equal(t, "LEFT", cards[0].Side)
	assert.Equal(t, "from B", cards[0].Title)
	assert.Equal(t, "B", cards[1].SourceID)
	assert.Equal(t, "RIGHT", cards[1].Side)
}

package article_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/article"
	artUC "spectrum-feed/internal/usecase/article"
)

type stubService struct {
	art    *entity.ExtractedArticle
	err    error
	gotURL string
}

func (s *stubService) Extract(_ context.Context, rawURL string) (*entity.ExtractedArticle, error) {
	s.gotURL = rawURL
	return s.art, s.err
}

func serve(t *testing.T, svc article.Service, target string) *httptest.ResponseRecorder {
	t.Helper()
	mux := http.NewServeMux()
	article.Register(mux, svc)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Success(t *testing.T) {
	svc := &stubService{art: &entity.ExtractedArticle{
		URL:         "https://news.example.com/story",
		Title:       "Story",
		Content:     "<p>Body</p>",
		TextContent: "Body",
		Length:      4,
	}}

	rec := serve(t, svc, "/article?url="+url.QueryEscape("https://news.example.com/story?id=1&ref=x"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://news.example.com/story?id=1&ref=x", svc.gotURL)

	var got entity.ExtractedArticle
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Story", got.Title)
	assert.Equal(t, "<p>Body</p>", got.Content)
}

func TestHandler_MissingURL(t *testing.T) {
	svc := &stubService{}
	rec := serve(t, svc, "/article?url=")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"url is required"}`, rec.Body.String())
	assert.Empty(t, svc.gotURL)
}

func TestHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"invalid url", fmt.Errorf("%w: private address", artUC.ErrInvalidArticleURL), http.StatusBadRequest, "invalid article URL: private address"},
		{"extraction failed", fmt.Errorf("%w: status 404", artUC.ErrExtractionFailed), http.StatusBadGateway, "article could not be extracted"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, &stubService{err: tt.err}, "/article?url=https://example.com/a")

			assert.Equal(t, tt.wantCode, rec.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantMsg, body["error"])
		})
	}
}

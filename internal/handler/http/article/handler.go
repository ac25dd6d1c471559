// Package article provides the HTTP handler that returns the readable form of a news page.
package article

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/respond"
	artUC "spectrum-feed/internal/usecase/article"
)

// Service is the article use case consumed by the handler.
type Service interface {
	Extract(ctx context.Context, rawURL string) (*entity.ExtractedArticle, error)
}

// Handler serves GET /article.
type Handler struct{ Svc Service }

// Register registers the article route.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /article", Handler{Svc: svc})
}

// ServeHTTP 記事本文取得
// @Summary      記事本文取得
// @Description  記事ページを取得し、読みやすい本文（サニタイズ済み HTML とテキスト）を返します
// @Tags         articles
// @Produce      json
// @Param        url query string true "記事URL（http/https）" example(https://www.reuters.com/world/example)
// @Success      200 {object} entity.ExtractedArticle "抽出済み記事"
// @Failure      400 {string} string "Bad request - missing or disallowed URL"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      502 {string} string "Article page could not be fetched or parsed"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /article [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rawURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if rawURL == "" {
		respond.SafeError(w, http.StatusBadRequest, errors.New("url is required"))
		return
	}

	art, err := h.Svc.Extract(r.Context(), rawURL)
	if err != nil {
		switch {
		case errors.Is(err, artUC.ErrInvalidArticleURL):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, artUC.ErrExtractionFailed):
			respond.SafeError(w, http.StatusBadGateway,
				respond.NewAppError(http.StatusBadGateway, "article could not be extracted", err))
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, art)
}

// Package feed provides the HTTP handler for the viewpoint-balanced feed.
package feed

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/respond"
	feedUC "spectrum-feed/internal/usecase/feed"
)

// Service is the feed use case consumed by the handler.
type Service interface {
	Feed(ctx context.Context, x, y float64) ([]entity.Card, error)
}

// Handler serves GET /feed.
type Handler struct{ Svc Service }

// Register registers the feed route.
func Register(mux *http.ServeMux, svc Service) {
	mux.Handle("GET /feed", Handler{Svc: svc})
}

// ServeHTTP フィード取得
// @Summary      フィード取得
// @Description  バイアス平面上の座標 (x, y) に近いニュースソースを視点のバランスを取って選び、各ソースの記事カードを返します
// @Tags         feed
// @Produce      json
// @Param        x query number true "横軸座標" example(-0.4)
// @Param        y query number true "縦軸座標" example(0.1)
// @Success      200 {array} CardDTO "記事カード（ソース順）"
// @Failure      400 {string} string "Bad request - missing or non-numeric coordinate"
// @Failure      429 {string} string "Too many requests - rate limit exceeded"
// @Failure      502 {string} string "News provider unavailable"
// @Failure      500 {string} string "サーバーエラー"
// @Router       /feed [get]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, err := parseCoordinate(q, "x")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	y, err := parseCoordinate(q, "y")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	cards, err := h.Svc.Feed(r.Context(), x, y)
	if err != nil {
		switch {
		case errors.Is(err, feedUC.ErrInvalidCoordinate):
			respond.SafeError(w, http.StatusBadRequest, err)
		case errors.Is(err, feedUC.ErrProviderFailed):
			respond.SafeError(w, http.StatusBadGateway,
				respond.NewAppError(http.StatusBadGateway, "news provider unavailable", err))
		default:
			respond.SafeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	respond.JSON(w, http.StatusOK, toDTOs(cards))
}

// parseCoordinate reads a finite float from q[name]. Empty and missing values
// are rejected before the feed service is reached.
func parseCoordinate(q url.Values, name string) (float64, error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	// ParseFloat は "NaN" や "Inf" を受け付ける
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be a finite number", name)
	}
	return v, nil
}

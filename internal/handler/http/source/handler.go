// Package source provides read-only HTTP handlers for the news source catalog.
package source

import (
	"net/http"

	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/pathutil"
	"spectrum-feed/internal/handler/http/respond"
)

// Catalog is the read-only source catalog.
type Catalog interface {
	Sources() []entity.Source
	Get(id string) (entity.Source, bool)
}

// DTO represents a source on the bias plane.
type DTO struct {
	ID   string  `json:"id" example:"reuters"`
	Name string  `json:"name" example:"Reuters"`
	Side string  `json:"side" example:"CENTER" enums:"LEFT,CENTER,RIGHT"`
	X    float64 `json:"x" example:"0.05"`
	Y    float64 `json:"y" example:"0.8"`
}

func toDTO(s entity.Source) DTO {
	return DTO{ID: s.ID, Name: s.Name, Side: s.Side.String(), X: s.X, Y: s.Y}
}

// Register registers the source routes.
func Register(mux *http.ServeMux, catalog Catalog) {
	mux.Handle("GET /sources", ListHandler{Catalog: catalog})
	mux.Handle("GET /sources/", GetHandler{Catalog: catalog})
}

// ListHandler serves GET /sources.
type ListHandler struct{ Catalog Catalog }

// ServeHTTP ソース一覧取得
// @Summary      ソース一覧取得
// @Description  カタログに登録されたニュースソースと、そのバイアス平面上の座標を返します
// @Tags         sources
// @Produce      json
// @Success      200 {array} DTO "ソース一覧（ID 順）"
// @Router       /sources [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	sources := h.Catalog.Sources()
	out := make([]DTO, 0, len(sources))
	for _, s := range sources {
		out = append(out, toDTO(s))
	}
	respond.JSON(w, http.StatusOK, out)
}

// GetHandler serves GET /sources/{id}.
type GetHandler struct{ Catalog Catalog }

// ServeHTTP ソース取得
// @Summary      ソース取得
// @Description  指定された ID のニュースソースを返します
// @Tags         sources
// @Produce      json
// @Param        id path string true "ソースID" example(bbc-news)
// @Success      200 {object} DTO "ソース"
// @Failure      400 {string} string "Bad request - invalid source ID"
// @Failure      404 {string} string "Not found - source not found"
// @Router       /sources/{id} [get]
func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ExtractSlug(r.URL.Path, "/sources/")
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	src, ok := h.Catalog.Get(id)
	if !ok {
		respond.SafeError(w, http.StatusNotFound, entity.ErrNotFound)
		return
	}
	respond.JSON(w, http.StatusOK, toDTO(src))
}

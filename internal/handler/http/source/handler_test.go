package source_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spectrum-feed/internal/catalog"
	"spectrum-feed/internal/domain/entity"
	"spectrum-feed/internal/handler/http/source"
)

func newMux(t *testing.T, sources []entity.Source) *http.ServeMux {
	t.Helper()
	cat, err := catalog.New(sources)
	require.NoError(t, err)
	mux := http.NewServeMux()
	source.Register(mux, cat)
	return mux
}

func get(mux http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

var testSources = []entity.Source{
	{ID: "reuters", Name: "Reuters", Side: entity.SideCenter, X: 0.05, Y: 0.8},
	{ID: "fox-news", Name: "Fox News", Side: entity.SideRight, X: 0.7, Y: -0.3, FeedURL: "https://moxie.foxnews.com/feed"},
}

func TestListHandler(t *testing.T) {
	rec := get(newMux(t, testSources), "/sources")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[
		{"id":"fox-news","name":"Fox News","side":"RIGHT","x":0.7,"y":-0.3},
		{"id":"reuters","name":"Reuters","side":"CENTER","x":0.05,"y":0.8}
	]`, rec.Body.String())
}

func TestListHandler_EmptyCatalog(t *testing.T) {
	rec := get(newMux(t, nil), "/sources")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestGetHandler(t *testing.T) {
	mux := newMux(t, testSources)

	rec := get(mux, "/sources/reuters")
	require.Equal(t, http.StatusOK, rec.Code)
	var got source.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Reuters", got.Name)

	assert.Equal(t, http.StatusNotFound, get(mux, "/sources/unknown").Code)
	assert.Equal(t, http.StatusBadRequest, get(mux, "/sources/Not_A_Slug").Code)
}

func TestListHandler_DefaultCatalog(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	mux := http.NewServeMux()
	source.Register(mux, cat)

	rec := get(mux, "/sources")
	require.Equal(t, http.StatusOK, rec.Code)

	var got []source.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Len(t, got, cat.Len())
	sides := map[string]bool{}
	for _, s := range got {
		sides[s.Side] = true
	}
	assert.Equal(t, map[string]bool{"LEFT": true, "CENTER": true, "RIGHT": true}, sides)
}

package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	rw := Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.Zero(t, rw.BytesWritten())
	assert.False(t, rw.Written())
}

func TestWrap_ReusesExistingRecorder(t *testing.T) {
	rw := Wrap(httptest.NewRecorder())
	assert.Same(t, rw, Wrap(rw))
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	rw.WriteHeader(http.StatusTooManyRequests)
	rw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusTooManyRequests, rw.StatusCode())
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.True(t, rw.Written())
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	for _, chunk := range []string{`{"cards":`, `[]`, `}`} {
		_, err := rw.Write([]byte(chunk))
		require.NoError(t, err)
	}

	assert.Equal(t, http.StatusOK, rw.StatusCode())
	assert.Equal(t, 12, rw.BytesWritten())
	assert.Equal(t, `{"cards":[]}`, rec.Body.String())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := Wrap(rec)

	rw.Flush()

	assert.True(t, rec.Flushed)
	assert.True(t, rw.Written())
	require.NoError(t, http.NewResponseController(rw).Flush())
}

func TestResponseWriter_InMiddleware(t *testing.T) {
	var status, size int
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := Wrap(w)
			next.ServeHTTP(rw, r)
			status, size = rw.StatusCode(), rw.BytesWritten()
		})
	}
	h := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "source not found", http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sources/nope", nil))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, len("source not found\n"), size)
	assert.Equal(t, rec, Wrap(rec).Unwrap())
}

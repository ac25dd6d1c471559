package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Equal(t, "abc", FromContext(WithRequestID(context.Background(), "abc")))
	assert.Equal(t, "", FromContext(context.Background()))
	assert.Equal(t, "", FromContext(context.WithValue(context.Background(), ctxKey{}, 42)))
}

func serve(t *testing.T, header string) (seen string, resp string) {
	t.Helper()
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/feed", nil)
	if header != "" {
		req.Header.Set(Header, header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return seen, rec.Header().Get(Header)
}

func TestMiddleware_PropagatesValidID(t *testing.T) {
	seen, resp := serve(t, "edge-7f3a.42")
	assert.Equal(t, "edge-7f3a.42", seen)
	assert.Equal(t, "edge-7f3a.42", resp)
}

func TestMiddleware_GeneratesID(t *testing.T) {
	seen, resp := serve(t, "")
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, resp)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestMiddleware_ReplacesMalformedID(t *testing.T) {
	for _, bad := range []string{"has space", "line\nbreak", strings.Repeat("a", 129), `{"json":1}`} {
		seen, resp := serve(t, bad)
		assert.NotEqual(t, bad, seen)
		assert.Equal(t, seen, resp)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err, "input %q", bad)
	}
}

func TestNew_TimeOrdered(t *testing.T) {
	a, b := New(), New()
	idA, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), idA.Version())
	assert.LessOrEqual(t, a, b)
}

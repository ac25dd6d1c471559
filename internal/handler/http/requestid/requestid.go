// Package requestid assigns every HTTP request an ID that is echoed in the
// X-Request-ID response header and attached to log lines.
package requestid

import (
	"context"
	"net/http"
	"regexp"

	"github.com/google/uuid"
)

// Header is the request and response header carrying the ID.
const Header = "X-Request-ID"

type ctxKey struct{}

// validID accepts the IDs proxies and clients commonly send; anything else is replaced.
var validID = regexp.MustCompile(`^[A-Za-z0-9._:-]{1,128}$`)

// FromContext returns the request ID stored in ctx, or "".
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// WithRequestID stores id in ctx.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// New returns a fresh time-ordered ID (UUIDv7), so IDs sort by arrival in logs.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Middleware keeps a well-formed incoming X-Request-ID and otherwise assigns New().
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		// ログ注入を防ぐため形式をチェック
		if !validID.MatchString(id) {
			id = New()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(WithRequestID(r.Context(), id)))
	})
}

package http

import (
	"net/http"

	"spectrum-feed/internal/handler/http/respond"
)

const (
	maxPathLength  = 2048
	maxQueryLength = 4096
)

// InputValidation rejects oversized paths and query strings before routing.
// Article URLs travel in the query string, so it gets a larger allowance than the path.
func InputValidation() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > maxPathLength || len(r.URL.RawQuery) > maxQueryLength {
				respond.JSON(w, http.StatusRequestURITooLong, map[string]string{"error": "URI too long"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// CaseInsensitivePaths routes on the lower-cased request path without a
// trailing slash. r.URL is left untouched.
func CaseInsensitivePaths(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			path := r.URL.RawPath
			if path == "" {
				path = r.URL.Path
			}
			if len(path) > 1 {
				path = strings.TrimSuffix(path, "/")
			}
			rctx.RoutePath = strings.ToLower(path)
		}
		next.ServeHTTP(w, r)
	})
}

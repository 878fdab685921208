package middleware

import (
	"context"
	"net/http"
	"strings"
)

const (
	V1 = "1.0"
	V2 = "2.0"

	VersionQueryParam = "api-version"
	VersionHeader     = "X-API-Version"
)

type contextKey string

const versionKey = contextKey("api_version")

// APIVersion resolves the requested API version from the api-version query
// parameter, then the X-API-Version header, defaulting to 1.0. Unsupported
// versions are rejected with 400.
func APIVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get(VersionQueryParam)
		if raw == "" {
			raw = r.Header.Get(VersionHeader)
		}

		version, ok := normalizeVersion(raw)
		if !ok {
			http.Error(w, "unsupported api version: "+raw, http.StatusBadRequest)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithVersion(r.Context(), version)))
	})
}

// Pin fixes the API version for routes that carry it in their path.
func Pin(version string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(WithVersion(r.Context(), version)))
		})
	}
}

func WithVersion(ctx context.Context, version string) context.Context {
	return context.WithValue(ctx, versionKey, version)
}

// Version returns the resolved API version, 1.0 when none was set.
func Version(r *http.Request) string {
	if v, ok := r.Context().Value(versionKey).(string); ok {
		return v
	}
	return V1
}

func normalizeVersion(raw string) (string, bool) {
	switch strings.TrimSpace(raw) {
	case "", "1", "1.0":
		return V1, true
	case "2", "2.0":
		return V2, true
	}
	return "", false
}

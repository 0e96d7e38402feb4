package middleware

import (
	"net/http"
	"strings"
)

// TrimTrailingSlash serves "/users/me/" as "/users/me" before routing, so
// slashed and bare paths hit the same handler for every method without a
// redirect. Pair it with gin's RedirectTrailingSlash turned off.
func TrimTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			r.URL.Path = strings.TrimRight(p, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
			r.URL.RawPath = strings.TrimSuffix(r.URL.RawPath, "/")
		}
		next.ServeHTTP(w, r)
	})
}

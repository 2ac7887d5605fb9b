package util

import (
	"net/http"
	"strings"
)

// locationWriter prepends a prefix to absolute redirect locations.
type locationWriter struct {
	http.ResponseWriter
	prefix string // without trailing slash
}

// WriteHeader shadows and calls http.ResponseWriter.WriteHeader.
func (w locationWriter) WriteHeader(statusCode int) {
	if location := w.Header().Get("Location"); strings.HasPrefix(location, "/") && !strings.HasPrefix(location, "//") {
		w.Header().Set("Location", w.prefix+location)
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

// Mount serves handler below prefix. The handler sees paths without the prefix and can redirect to absolute paths as if it was mounted at the root.
// Requests outside of prefix get a 404 response.
func Mount(prefix string, handler http.Handler) http.Handler {
	prefix = strings.TrimSuffix(prefix, "/")
	if prefix == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, prefix)
		if len(rest) == len(r.URL.Path) || (rest != "" && rest[0] != '/') {
			http.NotFound(w, r)
			return
		}
		if rest == "" {
			rest = "/"
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = rest
		r2.URL.RawPath = ""
		handler.ServeHTTP(locationWriter{w, prefix}, r2)
	})
}

package http

import (
	"net/http"

	"github.com/seo-pirate/backend/internal/common/constants"
)

const DefaultMaxRequestSize = constants.DefaultMaxRequestSize

func MaxRequestSizeMiddleware(limit int64) func(next http.Handler) http.Handler {
	if limit <= 0 {
		limit = DefaultMaxRequestSize
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

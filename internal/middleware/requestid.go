package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// RequestID assigns a fresh ID to each request unless the client sent one.
// The ID is echoed on the response and embedded in error bodies.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
			r.Header.Set("X-Request-ID", id)
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

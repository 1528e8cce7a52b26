package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"simplifai-backend/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID keeps a caller-supplied X-Request-ID or assigns a new UUID, and
// exposes it on the request header, the response header and the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequestID(r.Context(), id)))
	})
}

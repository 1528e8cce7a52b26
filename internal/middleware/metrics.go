package middleware

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"simplifai-backend/internal/metrics"
)

// Metrics records request count by method, route pattern, and status code.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		metrics.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(sw.status)).Inc()
	})
}

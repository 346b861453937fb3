package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/go-chi/chi/v5"
)

// withLogging writes one access log entry per request. The route pattern
// is read after the handler ran, once chi has resolved it.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		event := logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.URL.Path).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start))

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				event = event.Str("route", pattern)
			}
		}

		event.Send()
	})
}

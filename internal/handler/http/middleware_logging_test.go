package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := &Handler{logger: logger.Nop()}

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := zerolog.New(&buf)
			next.ServeHTTP(w, r.WithContext(l.WithContext(r.Context())))
		})
	})
	router.Use(h.withLogging)
	router.Put("/api/admin/users/{id}/role", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("queued"))
	})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/users/42/role", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	out := buf.String()
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, out, `"method":"PUT"`)
	assert.Contains(t, out, `"uri":"/api/admin/users/42/role"`)
	assert.Contains(t, out, `"route":"/api/admin/users/{id}/role"`)
	assert.Contains(t, out, `"status":202`)
	assert.Contains(t, out, `"size":6`)
	assert.Contains(t, out, `"duration":`)
}

func TestResponseWriter_WriteHeaderOnce(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	w.WriteHeader(http.StatusTeapot)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("brew"))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, http.StatusTeapot, w.status)
	assert.Equal(t, 4, w.size)
	assert.Same(t, rec, w.Unwrap())
}

func TestResponseWriter_ImplicitOK(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rec}

	_, _ = w.Write([]byte("ok"))

	assert.Equal(t, http.StatusOK, w.status)
}

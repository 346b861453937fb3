package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/internal/validators"
	"github.com/stretchr/testify/assert"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "field error", err: &validators.FieldError{Field: validators.FieldEmail, Err: validators.ErrInvalidEmail}, want: http.StatusBadRequest},
		{name: "credentials", err: service.ErrInvalidCredentials, want: http.StatusUnauthorized},
		{name: "forbidden", err: service.ErrForbidden, want: http.StatusForbidden},
		{name: "wrapped not found", err: fmt.Errorf("role update: %w", service.ErrUserNotFound), want: http.StatusNotFound},
		{name: "last admin", err: service.ErrLastAdmin, want: http.StatusConflict},
		{name: "self deletion", err: service.ErrSelfDeletion, want: http.StatusConflict},
		{name: "duplicate username", err: service.ErrUsernameAlreadyExists, want: http.StatusConflict},
		{name: "storage", err: fmt.Errorf("x: %w", store.ErrExecutingQuery), want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}

func TestWriteError_HidesServerErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(rec, req, fmt.Errorf("dsn postgres://secret: %w", store.ErrExecutingQuery))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestWriteError_ExplainsClientErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	writeError(rec, req, &validators.FieldError{Field: validators.FieldUsername, Err: validators.ErrInvalidUsername})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "username")
}

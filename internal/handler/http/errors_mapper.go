package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON:   http.StatusBadRequest,
	ErrNoCurrentUser: http.StatusInternalServerError,

	validators.ErrInvalidEmail:       http.StatusBadRequest,
	validators.ErrInvalidUsername:    http.StatusBadRequest,
	validators.ErrInvalidName:        http.StatusBadRequest,
	validators.ErrPasswordTooShort:   http.StatusBadRequest,
	validators.ErrPasswordTooLong:    http.StatusBadRequest,
	validators.ErrInvalidRole:        http.StatusBadRequest,
	validators.ErrInvalidIdentifier:  http.StatusBadRequest,
	validators.ErrPasswordIsRequired: http.StatusBadRequest,

	service.ErrInvalidCredentials:    http.StatusUnauthorized,
	service.ErrForbidden:             http.StatusForbidden,
	service.ErrUserNotFound:          http.StatusNotFound,
	service.ErrEmailAlreadyExists:    http.StatusConflict,
	service.ErrUsernameAlreadyExists: http.StatusConflict,
	service.ErrLastAdmin:             http.StatusConflict,
	service.ErrSelfDeletion:          http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps err to a status and writes a short plain-text reason.
// Server errors never echo err to the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)

	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("request failed")
		http.Error(w, http.StatusText(status), status)
		return
	}

	log.Info().Err(err).Int("status", status).Msg("request rejected")
	http.Error(w, err.Error(), status)
}

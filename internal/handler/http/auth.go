package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var newUser models.NewUser
	if !decodeJSON(w, r, &newUser) {
		return
	}
	// self-registration never picks its own role
	newUser.Role = ""

	user, headers, err := h.services.AuthGateway.Register(r.Context(), newUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	headers.WriteTo(w.Header())
	utils.WriteJSON(w, models.LoginResponse{User: user, RedirectTo: service.DefaultRedirect}, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, err)
		return
	}

	user, headers, err := h.services.AuthGateway.Login(ctx, req.Identifier, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	headers.WriteTo(w.Header())
	utils.WriteJSON(w, models.LoginResponse{User: user, RedirectTo: service.SafeRedirect(req.RedirectTo)}, http.StatusOK)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	headers, err := h.services.AuthGateway.Logout(r.Context(), r.Header.Get("Cookie"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	headers.WriteTo(w.Header())
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.CurrentUserFromContext(r.Context())
	if !ok {
		writeError(w, r, ErrNoCurrentUser)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.CurrentUserFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoCurrentUser)
		return
	}

	var req models.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	_, valid, err := h.services.UserDirectory.VerifyLogin(ctx, user.Username, req.CurrentPassword)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !valid {
		writeError(w, r, service.ErrInvalidCredentials)
		return
	}

	if err = h.services.UserDirectory.UpdatePassword(ctx, user.ID, req.NewPassword); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// decodeJSON answers 400 (413 for oversized bodies) itself and reports false
// when the body is not valid JSON for dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			logger.FromRequest(r).Info().Int64("limit", maxErr.Limit).Msg("request body too large")
			http.Error(w, http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
			return false
		}
		logger.FromRequest(r).Info().Err(err).Msg("invalid JSON was passed")
		http.Error(w, ErrInvalidJSON.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
	"github.com/MKhiriev/go-fleet-keeper/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.UserDirectory.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, users, http.StatusOK)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var newUser models.NewUser
	if !decodeJSON(w, r, &newUser) {
		return
	}

	user, err := h.services.UserDirectory.Create(r.Context(), newUser)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusCreated)
}

func (h *Handler) updateRole(w http.ResponseWriter, r *http.Request) {
	var req models.RoleUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.services.UserDirectory.UpdateRole(r.Context(), chi.URLParam(r, "id"), req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.services.UserDirectory.UpdatePassword(r.Context(), chi.URLParam(r, "id"), req.Password); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	actor, ok := utils.CurrentUserFromContext(ctx)
	if !ok {
		writeError(w, r, ErrNoCurrentUser)
		return
	}

	if err := h.services.AuthGateway.DeleteUser(ctx, actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

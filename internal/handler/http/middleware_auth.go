package http

import (
	"net/http"

	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/service"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
)

// requireUser resolves the session cookie. Authenticated requests continue
// with the user in context and a refreshed cookie; everything else is
// redirected to the login page, carrying a cookie-clearing header when the
// presented token was dead.
func (h *Handler) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		result, err := h.services.AuthGateway.RequireUser(r.Context(), r.Header.Get("Cookie"), r.URL)
		if err != nil {
			writeError(w, r, err)
			return
		}

		result.ResponseHeaders().WriteTo(w.Header())

		switch res := result.(type) {
		case service.Authenticated:
			ctx := utils.WithCurrentUser(r.Context(), res.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		case service.Unauthenticated:
			log.Debug().Str("redirect_to", res.RedirectTo).Msg("unauthenticated request")
			http.Redirect(w, r, res.RedirectTo, http.StatusFound)
		default:
			log.Error().Msgf("unexpected auth result %T", result)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// requireAdmin must run after requireUser.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := utils.CurrentUserFromContext(r.Context())
		if !ok {
			writeError(w, r, ErrNoCurrentUser)
			return
		}

		if err := service.RequireAdmin(user); err != nil {
			logger.FromRequest(r).Info().Str("user_id", user.ID).Msg("admin role required")
			http.Error(w, "admin role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

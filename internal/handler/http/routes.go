package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID, h.withLogging, middleware.Recoverer)
	router.Use(middleware.Compress(5, "application/json"))

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/version/", h.getServerVersion)
	})

	// any signed-in user
	router.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Get("/api/auth/me", h.me)
		r.Put("/api/auth/password", h.changePassword)
	})

	// admins only
	router.Group(func(r chi.Router) {
		r.Use(h.requireUser, h.requireAdmin)
		r.Get("/api/admin/users", h.listUsers)
		r.Post("/api/admin/users", h.createUser)
		r.Put("/api/admin/users/{id}/role", h.updateRole)
		r.Put("/api/admin/users/{id}/password", h.resetPassword)
		r.Delete("/api/admin/users/{id}", h.deleteUser)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

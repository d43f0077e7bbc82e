package auth

import (
	"net/http"

	"github.com/bertiesbooks/bookshop-backend/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts the auth endpoints. loginLimiter throttles credential
// guessing on /login; pass nil to disable (tests do).
func SetupRoutes(h *Handler, sessions *SessionManager, loginLimiter func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/register", h.RegisterHandler)
	r.Get("/login", h.LoginPromptHandler)
	r.Get("/logout", h.LogoutHandler)

	if loginLimiter != nil {
		r.With(loginLimiter).Post("/login", h.LoginHandler)
	} else {
		r.Post("/login", h.LoginHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.SessionMiddleware(sessions))
		r.Get("/me", h.MeHandler)
		r.Get("/audit", h.AuditHandler)
		r.Get("/users", h.ListUsersHandler)
	})

	return r
}

// RegisterRootAliases exposes the auth endpoints at the top level as well, so
// clients built against the unprefixed paths (/register, /login, /logout,
// /audit) keep working alongside the /auth mount.
func RegisterRootAliases(r chi.Router, h *Handler, sessions *SessionManager, loginLimiter func(http.Handler) http.Handler) {
	r.Post("/register", h.RegisterHandler)
	r.Get("/login", h.LoginPromptHandler)
	r.Get("/logout", h.LogoutHandler)

	if loginLimiter != nil {
		r.With(loginLimiter).Post("/login", h.LoginHandler)
	} else {
		r.Post("/login", h.LoginHandler)
	}

	r.With(middleware.SessionMiddleware(sessions)).Get("/audit", h.AuditHandler)
}

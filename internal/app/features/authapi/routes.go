// internal/app/features/authapi/routes.go
package authapi

import (
	"github.com/go-chi/chi/v5"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
)

// Routes mounts the auth endpoints (typically under "/api/auth" from
// bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes.
	r.Post("/login", h.HandleLogin)
	r.Post("/check-email/registration", h.HandleRegistrationMail)
	r.Post("/check-email/forgot-password", h.HandleForgotPasswordMail)

	// Registration completes with the action token from the mailed link.
	r.Post("/register", h.HandleRegister)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/", h.ServeCurrentUser)
		pr.Put("/change-password", h.HandleChangePassword)
	})

	return r
}

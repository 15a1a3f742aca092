// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
)

// Routes mounts the user endpoints (typically under "/api/user" from
// bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Put("/update/", h.HandleUpdate)
		pr.Delete("/delete/", h.HandleDelete)
		pr.Get("/search/", h.ServeSearch)
	})

	return r
}

// internal/app/features/organizations/routes.go
package organizations

import (
	"github.com/go-chi/chi/v5"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
)

// Routes mounts the organization endpoints (typically under
// "/api/organization" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes, used by the invite flow before the invitee signs in.
	r.Get("/check-user/{organizationid}/{emailid}", h.ServeCheckUser)
	r.Put("/add/user/{organizationid}", h.HandleAddMember)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/check-existence", h.ServeCheckExistence)
		pr.Post("/create", h.HandleCreate)
		pr.Get("/my-organization", h.ServeMyOrganization)
		pr.Get("/get/members", h.ServeMembers)

		pr.Delete("/remove/user/{organizationid}/{emailid}", h.HandleRemoveMember)
		pr.Put("/change-head/{organizationid}", h.HandleChangeHead)
		pr.Put("/update/details/", h.HandleUpdateDetails)
		pr.Delete("/delete/{organizationid}", h.HandleDelete)
	})

	return r
}

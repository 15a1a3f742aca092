// internal/app/features/projects/routes.go
package projects

import (
	"github.com/go-chi/chi/v5"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
)

// Routes mounts the project endpoints (typically under "/api/project"
// from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public routes, used by the invite flow and name checks.
	r.Get("/check-user/{emailid}/{projectid}", h.ServeCheckUser)
	r.Get("/check/project/{projectname}", h.ServeCheckName)
	r.Post("/{projectid}/add/member/{emailid}", h.HandleAddMember)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Get("/get/{projectid}", h.ServeGet)
		pr.Get("/get/projects/all", h.ServeMine)
		pr.Get("/get/company-people/{projectid}", h.ServeCompanyPeople)

		pr.Post("/create/new", h.HandleCreate)
		pr.Put("/update/{projectid}", h.HandleUpdate)
		pr.Delete("/delete/{projectid}", h.HandleDelete)
		pr.Delete("/{projectid}/remove/member/{emailid}", h.HandleRemoveMember)
		pr.Put("/update/{projectid}/change-project-head/{emailid}", h.HandleChangeHead)
		pr.Put("/add/role/{projectid}/{emailid}", h.HandleAssignRole)
	})

	return r
}

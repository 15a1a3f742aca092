// internal/app/features/issues/routes.go
package issues

import (
	"github.com/go-chi/chi/v5"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
)

// Routes mounts the issue endpoints (typically under "/api/issue" from
// bootstrap). Order matters for the literal segments: "update", "delete",
// and the per-project subtrees must register before the two-wildcard get.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)

		pr.Post("/{projectid}/create/new", h.HandleCreate)
		pr.Get("/{projectid}/issues/all", h.ServeList)
		pr.Get("/{projectid}/download/issues/all", h.ServeDownload)
		pr.Put("/update/issue/{issueid}", h.HandleUpdate)
		pr.Delete("/delete/issue/{issueid}", h.HandleDelete)
		pr.Post("/{projectid}/{issueid}/add/comment", h.HandleAddComment)
		pr.Delete("/{issueid}/delete/comment/{commentid}", h.HandleDeleteComment)
		pr.Get("/{projectid}/{issueid}", h.ServeGet)
	})

	return r
}

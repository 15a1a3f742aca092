// internal/app/features/projects/view.go
package projects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// ServeGet returns a project by id.
//
// Route: GET /api/project/get/{projectid}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		h.errlog.Fault(w, r, "get project", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]models.Project{"project": project})
}

// ServeMine lists the projects the signed-in user participates in.
// Clients match by clients.id; everyone else by companyPeople.id or by
// being the head.
//
// Route: GET /api/project/get/projects/all
func (h *Handler) ServeMine(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		mine []models.Project
		err  error
	)
	if authz.IsClient(r) {
		mine, err = h.Projects.ListByClientID(ctx, userID)
	} else {
		mine, err = h.Projects.ListByCompanyOrHead(ctx, userID)
	}
	if err != nil {
		h.errlog.ServerError(w, r, "list projects", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]models.Project{"projects": mine})
}

// ServeCompanyPeople returns the internal participant list of a project.
//
// Route: GET /api/project/get/company-people/{projectid}
func (h *Handler) ServeCompanyPeople(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	project, err := h.Projects.GetByID(ctx, projectID)
	if err != nil {
		h.errlog.Fault(w, r, "company people", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]models.Participant{"members": project.CompanyPeople})
}

// internal/app/features/issues/view.go
package issues

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/lifecycle"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// ServeList returns all issues of a project.
//
// Route: GET /api/issue/{projectid}/issues/all
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Issues.ListByProject(ctx, projectID)
	if err != nil {
		h.errlog.ServerError(w, r, "list issues", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]models.Issue{"issues": list})
}

// ServeGet returns a single issue.
//
// Route: GET /api/issue/{projectid}/{issueid}
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	issueID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "issueid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("issueid", "bad issue id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	issue, err := h.Issues.GetByID(ctx, issueID)
	if err != nil {
		h.errlog.Fault(w, r, "get issue", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]models.Issue{"issue": issue})
}

// ServeDownload returns the open issues of a project, flattened for
// export.
//
// Route: GET /api/issue/{projectid}/download/issues/all
func (h *Handler) ServeDownload(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	open, err := h.Issues.ListOpenByProject(ctx, projectID)
	if err != nil {
		h.errlog.ServerError(w, r, "download issues", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]lifecycle.DownloadRow{"issues": lifecycle.DownloadRows(open)})
}

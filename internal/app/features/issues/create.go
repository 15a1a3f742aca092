// internal/app/features/issues/create.go
package issues

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/lifecycle"
	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/htmlsanitize"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// issuePayload is the mutable field set shared by create and update.
type issuePayload struct {
	ShortSummary    string            `json:"shortSummary"`
	Description     string            `json:"description"`
	Priority        string            `json:"priority"`
	EstimateInHours float64           `json:"estimateInHours"`
	Assignees       []models.Assignee `json:"assignees"`
	Status          string            `json:"status"`
}

// HandleCreate files a new issue under a project, with the signed-in user
// as reporter.
//
// Route: POST /api/issue/{projectid}/create/new
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}

	var req issuePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}

	issue := models.Issue{
		ShortSummary:    htmlsanitize.StripTags(req.ShortSummary),
		Description:     htmlsanitize.Sanitize(req.Description),
		Priority:        req.Priority,
		EstimateInHours: req.EstimateInHours,
		Assignees:       req.Assignees,
		Status:          req.Status,
		ProjectID:       projectID,
		Reporter:        userID,
	}
	if err := lifecycle.ValidateIssue(issue); err != nil {
		respond.Fault(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "create issue: lookup reporter", err)
		return
	}
	issue.ReporterName = user.Name

	if _, err := h.Issues.Create(ctx, issue); err != nil {
		h.errlog.ServerError(w, r, "create issue", err)
		return
	}
	respond.Msg(w, "Issue Created")
}

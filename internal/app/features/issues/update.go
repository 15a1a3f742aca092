// internal/app/features/issues/update.go
package issues

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/lifecycle"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/htmlsanitize"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleUpdate replaces an issue's mutable fields and applies the status
// transition. Closing stamps closedOn and leaves updatedOn alone; any
// other status stamps updatedOn and clears closedOn.
//
// Route: PUT /api/issue/update/issue/{issueid}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	issueID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "issueid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("issueid", "bad issue id"))
		return
	}

	var req issuePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	issue, err := h.Issues.GetByID(ctx, issueID)
	if err != nil {
		h.errlog.Fault(w, r, "update issue: lookup", err)
		return
	}

	issue.ShortSummary = htmlsanitize.StripTags(req.ShortSummary)
	issue.Description = htmlsanitize.Sanitize(req.Description)
	issue.Priority = req.Priority
	issue.EstimateInHours = req.EstimateInHours
	issue.Assignees = req.Assignees
	if err := lifecycle.ValidateIssue(issue); err != nil {
		respond.Fault(w, err)
		return
	}
	lifecycle.ApplyStatus(&issue, req.Status, time.Now().UTC())

	if err := h.Issues.Replace(ctx, issue); err != nil {
		h.errlog.Fault(w, r, "update issue", err)
		return
	}
	respond.Msg(w, "Issue Updated")
}

// HandleDelete removes a single issue.
//
// Route: DELETE /api/issue/delete/issue/{issueid}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	issueID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "issueid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("issueid", "bad issue id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Issues.Delete(ctx, issueID); err != nil {
		h.errlog.Fault(w, r, "delete issue", err)
		return
	}
	respond.Msg(w, "Issue Deleted")
}

// internal/app/features/projects/members.go
package projects

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// ServeCheckUser checks that the email belongs to a registered user who
// can still be added to the project: not already a participant, and under
// the global project ceiling.
//
// Route: GET /api/project/check-user/{emailid}/{projectid}
func (h *Handler) ServeCheckUser(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, email); err != nil {
		h.errlog.Fault(w, r, "check user: lookup user", err)
		return
	}
	if err := h.Registry.CheckProjectEligibility(ctx, email, projectID); err != nil {
		h.errlog.Fault(w, r, "check user: eligibility", err)
		return
	}
	respond.Msg(w, "All Good")
}

// HandleAddMember adds a registered user to the project by email. Clients
// land in the clients list, everyone else in companyPeople; the registry
// enforces per-project uniqueness and the project ceiling.
//
// Route: POST /api/project/{projectid}/add/member/{emailid}
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		h.errlog.Fault(w, r, "add project member: lookup user", err)
		return
	}
	if _, err := h.Registry.AddProjectMember(ctx, projectID, user); err != nil {
		h.errlog.Fault(w, r, "add project member", err)
		return
	}
	respond.Msg(w, "Member Added to the project")
}

// HandleRemoveMember removes the email from both participant lists.
// Idempotent.
//
// Route: DELETE /api/project/{projectid}/remove/member/{emailid}
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	projectID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "projectid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("projectid", "bad project id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registry.RemoveProjectMember(ctx, projectID, email); err != nil {
		h.errlog.Fault(w, r, "remove project member", err)
		return
	}
	respond.Msg(w, "Member Removed")
}

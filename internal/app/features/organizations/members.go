// internal/app/features/organizations/members.go
package organizations

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/policy/orgpolicy"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleAddMember adds a registered user to the organization by email.
// The registry enforces the one-organization rule.
//
// Route: PUT /api/organization/add/user/{organizationid}
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "organizationid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("organizationid", "bad organization id"))
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}
	if req.Email == "" {
		respond.Fault(w, faults.Required("email"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		h.errlog.Fault(w, r, "add member: lookup user", err)
		return
	}
	if _, err := h.Registry.AddOrganizationMember(ctx, orgID, user); err != nil {
		h.errlog.Fault(w, r, "add member", err)
		return
	}
	respond.Msg(w, "Member Added")
}

// HandleRemoveMember removes the email from the organization's member
// list. Idempotent.
//
// Route: DELETE /api/organization/remove/user/{organizationid}/{emailid}
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := orgpolicy.CanManageMembers(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}

	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "organizationid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("organizationid", "bad organization id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registry.RemoveOrganizationMember(ctx, orgID, email); err != nil {
		h.errlog.Fault(w, r, "remove member", err)
		return
	}
	respond.Msg(w, "Member Removed")
}

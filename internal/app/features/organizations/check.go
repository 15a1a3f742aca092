// internal/app/features/organizations/check.go
package organizations

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// ServeCheckExistence reports whether the signed-in user already belongs
// to an organization. Membership is a conflict here: the caller is about
// to found or join one.
//
// Route: GET /api/organization/check-existence
func (h *Handler) ServeCheckExistence(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Registry.CheckOrganizationEligibility(ctx, userID); err != nil {
		h.errlog.Fault(w, r, "check organization existence", err)
		return
	}
	respond.Msg(w, "Not in any organization")
}

// ServeCheckUser checks that the email belongs to a registered user who is
// not yet in any organization. Used before sending an invite.
//
// Route: GET /api/organization/check-user/{organizationid}/{emailid}
func (h *Handler) ServeCheckUser(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "organizationid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("organizationid", "bad organization id"))
		return
	}
	email := chi.URLParam(r, "emailid")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, email)
	if err != nil {
		h.errlog.Fault(w, r, "check user: lookup user", err)
		return
	}
	if _, err := h.Orgs.GetByID(ctx, orgID); err != nil {
		h.errlog.Fault(w, r, "check user: lookup organization", err)
		return
	}
	if err := h.Registry.CheckOrganizationEligibility(ctx, user.ID); err != nil {
		h.errlog.Fault(w, r, "check user: eligibility", err)
		return
	}
	respond.Msg(w, "Not in any organization")
}

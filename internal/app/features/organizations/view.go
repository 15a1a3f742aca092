// internal/app/features/organizations/view.go
package organizations

import (
	"context"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// ServeMyOrganization returns the organization the signed-in user belongs
// to, head or member.
//
// Route: GET /api/organization/my-organization
func (h *Handler) ServeMyOrganization(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.FindByUser(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "my organization", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]models.Organization{"organization": org})
}

// ServeMembers returns the member list of the signed-in user's
// organization.
//
// Route: GET /api/organization/get/members
func (h *Handler) ServeMembers(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	org, err := h.Orgs.FindByUser(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "organization members", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string][]models.OrgMember{"organizationMembers": org.Members})
}

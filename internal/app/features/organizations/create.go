// internal/app/features/organizations/create.go
package organizations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// HandleCreate founds an organization. The creator becomes the head AND
// the first member entry, so the single-organization rule covers them
// from either direction.
//
// Route: POST /api/organization/create
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Fault(w, faults.Required("name"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Registry.CheckOrganizationEligibility(ctx, userID); err != nil {
		h.errlog.Fault(w, r, "create organization: eligibility", err)
		return
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "create organization: lookup user", err)
		return
	}

	_, err = h.Orgs.Create(ctx, models.Organization{
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		OrganizationHead:     user.ID,
		OrganizationHeadName: user.Name,
		Members: []models.OrgMember{
			{ID: user.ID, Name: user.Name, Email: user.Email, JoinedOn: time.Now().UTC()},
		},
	})
	if err != nil {
		h.errlog.ServerError(w, r, "create organization", err)
		return
	}
	respond.Msg(w, "Organization Created")
}

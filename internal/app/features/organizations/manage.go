// internal/app/features/organizations/manage.go
package organizations

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/issuedeck/issuedeck/internal/app/policy/orgpolicy"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleChangeHead points the organization at a new head, resolved by
// email. The outgoing head keeps their member entry if they have one.
//
// Route: PUT /api/organization/change-head/{organizationid}
func (h *Handler) HandleChangeHead(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := orgpolicy.CanTransferHead(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}

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
		h.errlog.Fault(w, r, "change head: lookup user", err)
		return
	}
	if err := h.Orgs.SetHead(ctx, orgID, user.ID, user.Name); err != nil {
		h.errlog.Fault(w, r, "change head", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"msg":     "Organization Head Changed",
		"newHead": map[string]string{"id": user.ID.Hex(), "name": user.Name},
	})
}

// HandleUpdateDetails updates name and description of the signed-in
// user's organization.
//
// Route: PUT /api/organization/update/details/
func (h *Handler) HandleUpdateDetails(w http.ResponseWriter, r *http.Request) {
	id, _ := auth.CurrentIdentity(r)
	if d := orgpolicy.CanUpdate(id); !d.Allowed {
		respond.Fault(w, d.Err())
		return
	}
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

	org, err := h.Orgs.FindByUser(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "update organization: lookup", err)
		return
	}
	if err := h.Orgs.UpdateDetails(ctx, org.ID, strings.TrimSpace(req.Name), req.Description); err != nil {
		h.errlog.Fault(w, r, "update organization", err)
		return
	}
	respond.Msg(w, "Organization Updated")
}

// HandleDelete removes the organization document. Projects and issues it
// sponsored are left alone; only project deletion cascades.
//
// Route: DELETE /api/organization/delete/{organizationid}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	orgID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "organizationid"))
	if err != nil {
		respond.Fault(w, faults.Invalid("organizationid", "bad organization id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Orgs.Delete(ctx, orgID); err != nil {
		h.errlog.Fault(w, r, "delete organization", err)
		return
	}
	respond.Msg(w, "Organization deleted")
}

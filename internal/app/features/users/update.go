// internal/app/features/users/update.go
package users

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleUpdate updates the signed-in user's profile fields. The embedded
// name/email snapshots in organizations, projects, and issues are not
// rewritten; they record the user as of the time they were taken.
//
// Route: PUT /api/user/update/
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	var req struct {
		Name             string `json:"name"`
		Email            string `json:"email"`
		OrganizationName string `json:"organizationName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err := h.Users.Update(ctx, userID, normalize.Name(req.Name), normalize.Email(req.Email), req.OrganizationName)
	if err != nil {
		h.errlog.Fault(w, r, "update user", err)
		return
	}
	respond.Msg(w, "User updated")
}

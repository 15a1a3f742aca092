// internal/app/features/users/delete.go
package users

import (
	"context"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleDelete deletes the signed-in user's account. Organization and
// project membership entries are left in place; they are removed through
// the membership endpoints, not by cascade.
//
// Route: DELETE /api/user/delete/
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.Delete(ctx, userID); err != nil {
		h.errlog.Fault(w, r, "delete user", err)
		return
	}
	respond.Msg(w, "User Deleted")
}

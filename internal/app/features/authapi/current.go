// internal/app/features/authapi/current.go
package authapi

import (
	"context"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/authz"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// ServeCurrentUser returns the signed-in user, password omitted.
//
// Route: GET /api/auth/
func (h *Handler) ServeCurrentUser(w http.ResponseWriter, r *http.Request) {
	_, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.errlog.Fault(w, r, "current user: lookup", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]models.User{"user": user})
}

// internal/app/features/authapi/password.go
package authapi

import (
	"context"
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleChangePassword rehashes and stores a new password for the given
// email.
//
// Route: PUT /api/auth/change-password
func (h *Handler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}
	email := normalize.Email(req.Email)
	if email == "" || req.Password == "" {
		respond.Fault(w, faults.Required("email and password"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errlog.ServerError(w, r, "change password: hash", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Users.UpdatePassword(ctx, email, string(hash)); err != nil {
		h.errlog.Fault(w, r, "change password: update", err)
		return
	}
	respond.Msg(w, "Password Changed")
}

// internal/app/features/authapi/login.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

// HandleLogin verifies credentials and issues a bearer token.
//
// Route: POST /api/auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}
	if req.Email == "" || req.Password == "" {
		respond.Fault(w, faults.Required("email and password"))
		return
	}

	if allowed, msg := h.logins.Check(r, req.Email); !allowed {
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": msg})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			// Wrong email and wrong password look the same to the caller.
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
			return
		}
		h.errlog.ServerError(w, r, "login: lookup user", err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "invalid credentials"})
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		h.errlog.ServerError(w, r, "login: issue token", err)
		return
	}
	h.logins.ResetEmail(req.Email)
	respond.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// internal/app/features/authapi/register.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	userstore "github.com/issuedeck/issuedeck/internal/app/store/users"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// HandleRegister creates a user from the payload plus the action token the
// registration mail carried, then signs the new user in.
//
// Route: POST /api/auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Name     string `json:"name"`
		Role     string `json:"role"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return
	}
	if req.Name == "" || req.Password == "" {
		respond.Fault(w, faults.Required("name and password"))
		return
	}

	// The registration link pins the email address.
	email, err := h.Tokens.VerifyActionToken(req.Token, auth.PurposeRegister)
	if err != nil {
		respond.Fault(w, faults.ErrUnauthorized)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.errlog.ServerError(w, r, "register: hash password", err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	user, err := h.Users.Create(ctx, models.User{
		Name:     normalize.Name(req.Name),
		Email:    email,
		Role:     req.Role,
		Password: string(hash),
	})
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "user already exists"})
			return
		}
		h.errlog.Fault(w, r, "register: create user", err)
		return
	}

	token, err := h.Tokens.Issue(user.ID.Hex(), user.Role)
	if err != nil {
		h.errlog.ServerError(w, r, "register: issue token", err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]string{"token": token})
}

// internal/app/features/authapi/mail.go
package authapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/mailer"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
	"github.com/issuedeck/issuedeck/internal/app/system/timeouts"
)

const siteName = "IssueDeck"

// HandleRegistrationMail mails a registration link for an email that is
// not yet registered.
//
// Route: POST /api/auth/check-email/registration
func (h *Handler) HandleRegistrationMail(w http.ResponseWriter, r *http.Request) {
	email, ok := h.decodeEmail(w, r)
	if !ok {
		return
	}
	if !h.mails.Allow(email) {
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many emails requested for this address"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, email); err == nil {
		respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "user already exists"})
		return
	} else if !errors.Is(err, faults.ErrNotFound) {
		h.errlog.ServerError(w, r, "registration mail: lookup user", err)
		return
	}

	token, err := h.Tokens.IssueActionToken(email, auth.PurposeRegister, h.LinkTTL)
	if err != nil {
		h.errlog.ServerError(w, r, "registration mail: issue token", err)
		return
	}

	msg := mailer.BuildRegistrationEmail(mailer.LinkEmailData{
		SiteName:  siteName,
		Link:      fmt.Sprintf("%sregister/%s", h.BaseURL, token),
		ExpiresIn: h.LinkTTL.String(),
	})
	msg.To = email
	if err := h.Mail.Send(msg); err != nil {
		h.errlog.ServerError(w, r, "registration mail: send", err)
		return
	}
	respond.Msg(w, "Registration mail Sent")
}

// HandleForgotPasswordMail mails a password-reset link for a registered
// email.
//
// Route: POST /api/auth/check-email/forgot-password
func (h *Handler) HandleForgotPasswordMail(w http.ResponseWriter, r *http.Request) {
	email, ok := h.decodeEmail(w, r)
	if !ok {
		return
	}
	if !h.mails.Allow(email) {
		respond.JSON(w, http.StatusTooManyRequests, map[string]string{"error": "too many emails requested for this address"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if _, err := h.Users.GetByEmail(ctx, email); err != nil {
		if errors.Is(err, faults.ErrNotFound) {
			respond.JSON(w, http.StatusBadRequest, map[string]string{"error": "user doesn't exist"})
			return
		}
		h.errlog.ServerError(w, r, "forgot password: lookup user", err)
		return
	}

	token, err := h.Tokens.IssueActionToken(email, auth.PurposeReset, h.LinkTTL)
	if err != nil {
		h.errlog.ServerError(w, r, "forgot password: issue token", err)
		return
	}

	msg := mailer.BuildPasswordResetEmail(mailer.LinkEmailData{
		SiteName:  siteName,
		Link:      fmt.Sprintf("%schange-password/%s/%s", h.BaseURL, email, token),
		ExpiresIn: h.LinkTTL.String(),
	})
	msg.To = email
	if err := h.Mail.Send(msg); err != nil {
		h.errlog.ServerError(w, r, "forgot password: send", err)
		return
	}
	respond.Msg(w, "Change password mail Sent")
}

func (h *Handler) decodeEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fault(w, faults.Invalid("body", "malformed JSON"))
		return "", false
	}
	email := normalize.Email(req.Email)
	if email == "" {
		respond.Fault(w, faults.Required("email"))
		return "", false
	}
	return email, true
}

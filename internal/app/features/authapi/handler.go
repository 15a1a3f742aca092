// internal/app/features/authapi/handler.go

// Package authapi is the credential boundary: login, registration via
// mailed link, password reset. Everything behind it works with a verified
// Identity; nothing else in the repo touches passwords or tokens.
package authapi

import (
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/issuedeck/issuedeck/internal/app/store/users"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/mailer"
	"github.com/issuedeck/issuedeck/internal/app/system/ratelimit"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
)

// Handler is the feature-level entry point for authentication.
type Handler struct {
	Users   *userstore.Store
	Tokens  *auth.TokenManager
	Mail    *mailer.Mailer
	Log     *zap.Logger
	BaseURL string        // frontend base for mailed links
	LinkTTL time.Duration // action-token lifetime

	logins *ratelimit.LoginLimiter
	mails  *ratelimit.Limiter // per-recipient cap on link mail
	errlog *respond.ErrorLogger
}

// NewHandler constructs the auth handler.
func NewHandler(db *mongo.Database, tokens *auth.TokenManager, mail *mailer.Mailer, logger *zap.Logger, baseURL string, linkTTL time.Duration) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Tokens:  tokens,
		Mail:    mail,
		Log:     logger,
		BaseURL: baseURL,
		LinkTTL: linkTTL,
		logins:  ratelimit.NewLoginLimiter(),
		mails:   ratelimit.NewMailLimiter(),
		errlog:  respond.NewErrorLogger(logger),
	}
}

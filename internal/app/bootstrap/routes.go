// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/issuedeck/issuedeck/internal/app/features/authapi"
	healthfeature "github.com/issuedeck/issuedeck/internal/app/features/health"
	"github.com/issuedeck/issuedeck/internal/app/features/issues"
	"github.com/issuedeck/issuedeck/internal/app/features/organizations"
	"github.com/issuedeck/issuedeck/internal/app/features/projects"
	"github.com/issuedeck/issuedeck/internal/app/features/users"
	"github.com/issuedeck/issuedeck/internal/app/registry"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/app/system/limits"
	"github.com/issuedeck/issuedeck/internal/app/system/mailer"
)

// BuildHandler assembles the full HTTP surface: token auth middleware,
// the health endpoint, and the JSON API feature mounts.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Token manager signs session and action (mail link) tokens.
	tokens, err := auth.NewTokenManager(appCfg.TokenSecret, appCfg.TokenExpiry)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	mail := mailer.New(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		Username: appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
	}, logger)

	db := deps.MongoDatabase

	// The registry serializes membership mutations across handlers.
	reg := registry.New(db)

	r := chi.NewRouter()

	// Cap request bodies before anything reads them.
	r.Use(limits.MaxBody)

	// Global auth middleware: parses the bearer token, if any, and loads
	// the caller's identity into the request context.
	r.Use(tokens.LoadIdentity)

	// Health check endpoint for load balancers and orchestrators.
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	authHandler := authapi.NewHandler(db, tokens, mail, logger, appCfg.BaseURL, appCfg.LinkExpiry)
	r.Mount("/api/auth", authapi.Routes(authHandler))

	userHandler := users.NewHandler(db, logger)
	r.Mount("/api/user", users.Routes(userHandler))

	orgHandler := organizations.NewHandler(db, reg, logger)
	r.Mount("/api/organization", organizations.Routes(orgHandler))

	projectHandler := projects.NewHandler(db, reg, logger)
	r.Mount("/api/project", projects.Routes(projectHandler))

	issueHandler := issues.NewHandler(db, logger)
	r.Mount("/api/issue", issues.Routes(issueHandler))

	return r, nil
}

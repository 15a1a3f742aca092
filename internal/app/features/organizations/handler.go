// internal/app/features/organizations/handler.go

// Package organizations exposes the organization endpoints. Membership
// mutations go through the registry so the one-organization-per-user rule
// is enforced in a single place.
package organizations

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/issuedeck/issuedeck/internal/app/registry"
	organizationstore "github.com/issuedeck/issuedeck/internal/app/store/organizations"
	userstore "github.com/issuedeck/issuedeck/internal/app/store/users"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
)

// Handler is the feature-level entry point for Organizations.
type Handler struct {
	Orgs     *organizationstore.Store
	Users    *userstore.Store
	Registry *registry.Registry
	Log      *zap.Logger

	errlog *respond.ErrorLogger
}

// NewHandler constructs an Organizations handler bound to a DB and logger.
func NewHandler(db *mongo.Database, reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:     organizationstore.New(db),
		Users:    userstore.New(db),
		Registry: reg,
		Log:      logger,
		errlog:   respond.NewErrorLogger(logger),
	}
}

// internal/app/features/projects/handler.go

// Package projects exposes the project endpoints. Participant mutations
// go through the registry (per-project uniqueness plus the global project
// ceiling); role checks go through projectpolicy.
package projects

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/issuedeck/issuedeck/internal/app/registry"
	issuestore "github.com/issuedeck/issuedeck/internal/app/store/issues"
	projectstore "github.com/issuedeck/issuedeck/internal/app/store/projects"
	userstore "github.com/issuedeck/issuedeck/internal/app/store/users"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
)

// Handler is the feature-level entry point for Projects.
type Handler struct {
	Projects *projectstore.Store
	Users    *userstore.Store
	Issues   *issuestore.Store
	Registry *registry.Registry
	Log      *zap.Logger

	errlog *respond.ErrorLogger
}

// NewHandler constructs a Projects handler bound to a DB and logger.
func NewHandler(db *mongo.Database, reg *registry.Registry, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectstore.New(db),
		Users:    userstore.New(db),
		Issues:   issuestore.New(db),
		Registry: reg,
		Log:      logger,
		errlog:   respond.NewErrorLogger(logger),
	}
}

// internal/app/features/issues/handler.go

// Package issues exposes the issue endpoints. Status transitions and
// comment provenance go through the lifecycle package; handlers only
// decode, authorize, and persist.
package issues

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	issuestore "github.com/issuedeck/issuedeck/internal/app/store/issues"
	projectstore "github.com/issuedeck/issuedeck/internal/app/store/projects"
	userstore "github.com/issuedeck/issuedeck/internal/app/store/users"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
)

// Handler is the feature-level entry point for Issues.
type Handler struct {
	Issues   *issuestore.Store
	Projects *projectstore.Store
	Users    *userstore.Store
	Log      *zap.Logger

	errlog *respond.ErrorLogger
}

// NewHandler constructs an Issues handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Issues:   issuestore.New(db),
		Projects: projectstore.New(db),
		Users:    userstore.New(db),
		Log:      logger,
		errlog:   respond.NewErrorLogger(logger),
	}
}

// internal/app/features/users/handler.go

// Package users exposes the self-service user endpoints: profile update,
// account deletion, and directory search.
package users

import (
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/issuedeck/issuedeck/internal/app/store/users"
	"github.com/issuedeck/issuedeck/internal/app/system/respond"
)

// Handler is the feature-level entry point for Users.
type Handler struct {
	Users *userstore.Store
	Log   *zap.Logger

	errlog *respond.ErrorLogger
}

// NewHandler constructs a Users handler bound to a DB and logger.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		Log:    logger,
		errlog: respond.NewErrorLogger(logger),
	}
}

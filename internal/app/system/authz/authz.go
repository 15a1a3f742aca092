// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the request's role, Mongo ObjectID, and a found flag.
// ok=true guarantees a valid, authenticated user with a well-formed
// ObjectID; a malformed id in the token fails closed.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	id, ok := auth.CurrentIdentity(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(id.UserID)
	if err != nil {
		return "", primitive.NilObjectID, false
	}
	return id.Role, oid, true
}

// IsClient reports whether the current request's user is a Client user.
func IsClient(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleClient
}

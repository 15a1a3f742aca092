// internal/testutil/http.go
package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// AsIdentity injects a verified identity into the request, bypassing token
// verification.
func AsIdentity(r *http.Request, userID primitive.ObjectID, role string) *http.Request {
	return auth.WithIdentity(r, auth.Identity{UserID: userID.Hex(), Role: role})
}

// CompanyIdentity returns a fresh Company identity for handler tests.
func CompanyIdentity() auth.Identity {
	return auth.Identity{UserID: primitive.NewObjectID().Hex(), Role: "Company"}
}

// ClientIdentity returns a fresh Client identity for handler tests.
func ClientIdentity() auth.Identity {
	return auth.Identity{UserID: primitive.NewObjectID().Hex(), Role: "Client"}
}

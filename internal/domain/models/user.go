// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values for User.Role. Company accounts belong to the organization
// running a project; Client accounts are external stakeholders.
const (
	RoleCompany = "Company"
	RoleClient  = "Client"
)

// User represents a registered account.
//
// NOTE:
//   - OrganizationName is a denormalized display field set by the user
//     themselves; the authoritative relationship lives on the organization
//     document (head + members list).
//   - Deleting a user does not cascade: organization member lists and
//     project participant lists keep their snapshot entries.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Password         string             `bson:"password,omitempty" json:"-"`
	Role             string             `bson:"role" json:"role"` // Company | Client
	OrganizationName string             `bson:"organizationName,omitempty" json:"organizationName,omitempty"`
	CreatedOn        time.Time          `bson:"createdOn" json:"createdOn"`
}

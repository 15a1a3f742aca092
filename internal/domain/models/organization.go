// internal/domain/models/organization.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrgMember is an embedded member entry on an organization document.
// Name and email are snapshots taken when the member joined.
type OrgMember struct {
	ID       primitive.ObjectID `bson:"id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	JoinedOn time.Time          `bson:"joinedOn" json:"joinedOn"`
}

// Organization groups users under a single head.
//
// Invariant: a given user id appears as head or member of at most one
// organization system-wide. The registry enforces this on every insert;
// there is no storage-level constraint spanning head + members.
type Organization struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name                 string             `bson:"name" json:"name"`
	Description          string             `bson:"description,omitempty" json:"description,omitempty"`
	OrganizationHead     primitive.ObjectID `bson:"organizationHead" json:"organizationHead"`
	OrganizationHeadName string             `bson:"organizationHeadName" json:"organizationHeadName"`
	Members              []OrgMember        `bson:"members" json:"members"`
	CreatedOn            time.Time          `bson:"createdOn" json:"createdOn"`
}

// HasUser reports whether the user id is the head or appears in the
// members list.
func (o Organization) HasUser(id primitive.ObjectID) bool {
	if o.OrganizationHead == id {
		return true
	}
	for _, m := range o.Members {
		if m.ID == id {
			return true
		}
	}
	return false
}

// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MaxProjectsPerUser is the ceiling on how many projects a single email may
// participate in (clients and companyPeople counted together).
const MaxProjectsPerUser = 4

// Participant is an embedded entry in a project's clients or companyPeople
// list. Name, email, and role are snapshots of the user at add time.
// ProjectRole is a free-text label scoped to this project ("Developer",
// "QA", ...), empty until assigned.
type Participant struct {
	ID          primitive.ObjectID `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Role        string             `bson:"role" json:"role"` // Company | Client
	ProjectRole string             `bson:"projectRole" json:"projectRole"`
	AddedOn     time.Time          `bson:"addedOn" json:"addedOn"`
}

// Project is sponsored by an organization and carries two disjoint
// participant lists: internal companyPeople and external clients.
//
// Project names are unique by pre-check only (registry.CheckProjectName);
// the collection holds no unique index on name.
type Project struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name            string             `bson:"name" json:"name"`
	Description     string             `bson:"description,omitempty" json:"description,omitempty"`
	URL             string             `bson:"url,omitempty" json:"url,omitempty"`
	Deadline        string             `bson:"deadline,omitempty" json:"deadline,omitempty"`
	ProjectHead     primitive.ObjectID `bson:"projectHead" json:"projectHead"`
	ProjectHeadName string             `bson:"projectHeadName" json:"projectHeadName"`
	Clients         []Participant      `bson:"clients" json:"clients"`
	CompanyPeople   []Participant      `bson:"companyPeople" json:"companyPeople"`
	CreatedOn       time.Time          `bson:"createdOn" json:"createdOn"`
}

// FindParticipant searches clients first, then companyPeople, for the given
// user id. The search order matters: comment provenance resolves a
// commenter's project role with exactly this precedence.
func (p Project) FindParticipant(id primitive.ObjectID) (Participant, bool) {
	for _, c := range p.Clients {
		if c.ID == id {
			return c, true
		}
	}
	for _, cp := range p.CompanyPeople {
		if cp.ID == id {
			return cp, true
		}
	}
	return Participant{}, false
}

// HasEmail reports whether the email appears in either participant list.
func (p Project) HasEmail(email string) bool {
	for _, c := range p.Clients {
		if c.Email == email {
			return true
		}
	}
	for _, cp := range p.CompanyPeople {
		if cp.Email == email {
			return true
		}
	}
	return false
}

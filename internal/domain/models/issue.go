// internal/domain/models/issue.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StatusBacklog is the default status for new issues. StatusDone is the
// only distinguished status value: entering it stamps ClosedOn, leaving it
// clears ClosedOn. Every other status is free text.
const (
	StatusBacklog = "Backlog"
	StatusDone    = "Done"
)

// Assignee is an embedded display entry on an issue.
type Assignee struct {
	ID          primitive.ObjectID `bson:"id" json:"id"`
	Name        string             `bson:"name" json:"name"`
	ProjectRole string             `bson:"projectRole" json:"projectRole"`
	Email       string             `bson:"email" json:"email"`
}

// Comment is an embedded, ordered comment on an issue. Name and
// ProjectRole are snapshots resolved from the owning project's participant
// lists when the comment is posted; a later project-role change does not
// rewrite old comments.
type Comment struct {
	ID          string             `bson:"id" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	ProjectRole string             `bson:"projectRole" json:"projectRole"`
	CommentBody string             `bson:"commentBody" json:"commentBody"`
	PostedOn    time.Time          `bson:"postedOn" json:"postedOn"`
}

// Issue belongs to exactly one project and is deleted when that project is
// deleted (the only cascading delete in the model).
//
// Invariant: ClosedOn is non-nil if and only if Status == StatusDone.
type Issue struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ShortSummary    string             `bson:"shortSummary" json:"shortSummary"`
	Description     string             `bson:"description" json:"description"`
	Reporter        primitive.ObjectID `bson:"reporter" json:"reporter"`
	ReporterName    string             `bson:"reporterName" json:"reporterName"`
	Priority        string             `bson:"priority" json:"priority"`
	EstimateInHours float64            `bson:"estimateInHours" json:"estimateInHours"`
	Assignees       []Assignee         `bson:"assignees" json:"assignees"`
	ProjectID       primitive.ObjectID `bson:"projectId" json:"projectId"`
	Status          string             `bson:"status" json:"status"`
	Comments        []Comment          `bson:"comments" json:"comments"`
	CreatedOn       time.Time          `bson:"createdOn" json:"createdOn"`
	UpdatedOn       *time.Time         `bson:"updatedOn,omitempty" json:"updatedOn,omitempty"`
	ClosedOn        *time.Time         `bson:"closedOn,omitempty" json:"closedOn,omitempty"`
}

// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/issuedeck/issuedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser inserts a user with the given name, email, and role.
func (f *Fixtures) CreateUser(ctx context.Context, name, email, role string) models.User {
	f.t.Helper()

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Password:  "x", // hashed value irrelevant for these tests
		Role:      role,
		CreatedOn: time.Now().UTC(),
	}
	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateCompanyUser inserts a Company-role user.
func (f *Fixtures) CreateCompanyUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleCompany)
}

// CreateClientUser inserts a Client-role user.
func (f *Fixtures) CreateClientUser(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, name, email, models.RoleClient)
}

// CreateOrganization inserts an organization headed by the given user, with
// the head as its first member (matching the creation flow).
func (f *Fixtures) CreateOrganization(ctx context.Context, name string, head models.User) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:                   primitive.NewObjectID(),
		Name:                 name,
		Description:          "test organization",
		OrganizationHead:     head.ID,
		OrganizationHeadName: head.Name,
		Members: []models.OrgMember{
			{ID: head.ID, Name: head.Name, Email: head.Email, JoinedOn: now},
		},
		CreatedOn: now,
	}
	if _, err := f.db.Collection("organizations").InsertOne(ctx, org); err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}
	return org
}

// CreateProject inserts a project headed by the given Company user, with
// the head as its first company person.
func (f *Fixtures) CreateProject(ctx context.Context, name string, head models.User) models.Project {
	f.t.Helper()

	now := time.Now().UTC()
	proj := models.Project{
		ID:              primitive.NewObjectID(),
		Name:            name,
		Description:     "test project",
		ProjectHead:     head.ID,
		ProjectHeadName: head.Name,
		Clients:         []models.Participant{},
		CompanyPeople: []models.Participant{
			{ID: head.ID, Name: head.Name, Email: head.Email, Role: head.Role, ProjectRole: "", AddedOn: now},
		},
		CreatedOn: now,
	}
	if _, err := f.db.Collection("projects").InsertOne(ctx, proj); err != nil {
		f.t.Fatalf("failed to create test project: %v", err)
	}
	return proj
}

// AddParticipant appends a participant entry to the named list
// ("clients" or "companyPeople") of a project, bypassing the registry.
func (f *Fixtures) AddParticipant(ctx context.Context, projectID primitive.ObjectID, list string, u models.User) {
	f.t.Helper()

	p := models.Participant{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Role:    u.Role,
		AddedOn: time.Now().UTC(),
	}
	_, err := f.db.Collection("projects").UpdateByID(ctx, projectID,
		map[string]any{"$push": map[string]any{list: p}})
	if err != nil {
		f.t.Fatalf("failed to add participant: %v", err)
	}
}

// CreateIssue inserts a Backlog issue on the given project reported by the
// given user.
func (f *Fixtures) CreateIssue(ctx context.Context, projectID primitive.ObjectID, reporter models.User, summary string) models.Issue {
	f.t.Helper()

	issue := models.Issue{
		ID:              primitive.NewObjectID(),
		ShortSummary:    summary,
		Description:     "test issue",
		Reporter:        reporter.ID,
		ReporterName:    reporter.Name,
		Priority:        "Medium",
		EstimateInHours: 0,
		Assignees:       []models.Assignee{},
		ProjectID:       projectID,
		Status:          models.StatusBacklog,
		Comments:        []models.Comment{},
		CreatedOn:       time.Now().UTC(),
	}
	if _, err := f.db.Collection("issues").InsertOne(ctx, issue); err != nil {
		f.t.Fatalf("failed to create test issue: %v", err)
	}
	return issue
}

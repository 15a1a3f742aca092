// internal/app/registry/registry.go

// Package registry is the membership invariant engine. It owns the two
// cross-entity rules no single document can express:
//
//   - a user id is head or member of at most one organization, and
//   - an email participates in at most models.MaxProjectsPerUser projects.
//
// Both are read-then-write checks over the whole collection, so the
// registry serializes mutations per subject through a keyed lock and
// additionally relies on the stores' guarded appends ($ne filters) so a
// duplicate entry can never be written inside one project or organization
// even without the lock.
package registry

import (
	"context"
	"time"

	organizationstore "github.com/issuedeck/issuedeck/internal/app/store/organizations"
	projectstore "github.com/issuedeck/issuedeck/internal/app/store/projects"
	"github.com/issuedeck/issuedeck/internal/app/system/entlock"
	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Registry struct {
	orgs     *organizationstore.Store
	projects *projectstore.Store
	locks    *entlock.Registry
}

func New(db *mongo.Database) *Registry {
	return &Registry{
		orgs:     organizationstore.New(db),
		projects: projectstore.New(db),
		locks:    entlock.New(),
	}
}

/* ───────────────────────── organizations ───────────────────────── */

// CheckOrganizationEligibility reports whether the user may join or found
// an organization. Returns faults.ErrAlreadyMember if any organization
// already holds the user as head or member.
func (r *Registry) CheckOrganizationEligibility(ctx context.Context, userID primitive.ObjectID) error {
	exists, err := r.orgs.ExistsForUser(ctx, userID)
	if err != nil {
		return err
	}
	if exists {
		return faults.ErrAlreadyMember
	}
	return nil
}

// AddOrganizationMember re-validates eligibility under the user's lock and
// appends a member entry with joinedOn stamped now.
func (r *Registry) AddOrganizationMember(ctx context.Context, orgID primitive.ObjectID, user models.User) (models.OrgMember, error) {
	key := "org-member:" + user.ID.Hex()
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	if err := r.CheckOrganizationEligibility(ctx, user.ID); err != nil {
		return models.OrgMember{}, err
	}

	m := models.OrgMember{
		ID:       user.ID,
		Name:     user.Name,
		Email:    normalize.Email(user.Email),
		JoinedOn: time.Now().UTC(),
	}
	pushed, err := r.orgs.PushMember(ctx, orgID, m)
	if err != nil {
		return models.OrgMember{}, err
	}
	if !pushed {
		// The guard only rejects when the user is already present.
		return models.OrgMember{}, faults.ErrAlreadyMember
	}
	return m, nil
}

// RemoveOrganizationMember removes the email from the member list.
// Idempotent: removing a non-member succeeds.
func (r *Registry) RemoveOrganizationMember(ctx context.Context, orgID primitive.ObjectID, email string) error {
	return r.orgs.PullMemberByEmail(ctx, orgID, email)
}

/* ───────────────────────── projects ───────────────────────── */

// CheckProjectEligibility reports whether the email may be added to the
// project: faults.ErrAlreadyInProject if it already appears in either
// participant list of that project, faults.ErrLimitExceeded if the email
// has reached the system-wide project ceiling, faults.ErrNotFound if the
// project does not exist.
func (r *Registry) CheckProjectEligibility(ctx context.Context, email string, projectID primitive.ObjectID) error {
	e := normalize.Email(email)

	if _, err := r.projects.GetByID(ctx, projectID); err != nil {
		return err
	}

	inProject, err := r.projects.ContainsEmail(ctx, projectID, e)
	if err != nil {
		return err
	}
	if inProject {
		return faults.ErrAlreadyInProject
	}

	n, err := r.projects.CountByParticipantEmail(ctx, e)
	if err != nil {
		return err
	}
	if n >= models.MaxProjectsPerUser {
		return faults.ErrLimitExceeded
	}
	return nil
}

// AddProjectMember re-validates eligibility under the email's lock and
// appends the user to clients (Client role) or companyPeople (otherwise),
// with an empty projectRole and addedOn stamped now.
func (r *Registry) AddProjectMember(ctx context.Context, projectID primitive.ObjectID, user models.User) (models.Participant, error) {
	e := normalize.Email(user.Email)

	key := "project-member:" + e
	r.locks.Lock(key)
	defer r.locks.Unlock(key)

	if err := r.CheckProjectEligibility(ctx, e, projectID); err != nil {
		return models.Participant{}, err
	}

	p := models.Participant{
		ID:          user.ID,
		Name:        user.Name,
		Email:       e,
		Role:        user.Role,
		ProjectRole: "",
		AddedOn:     time.Now().UTC(),
	}
	list := "companyPeople"
	if user.Role == models.RoleClient {
		list = "clients"
	}

	pushed, err := r.projects.PushParticipant(ctx, projectID, list, p)
	if err != nil {
		return models.Participant{}, err
	}
	if !pushed {
		return models.Participant{}, faults.ErrAlreadyInProject
	}
	return p, nil
}

// RemoveProjectMember removes the email from both participant lists.
// Idempotent: removing a non-member succeeds.
func (r *Registry) RemoveProjectMember(ctx context.Context, projectID primitive.ObjectID, email string) error {
	return r.projects.PullParticipantByEmail(ctx, projectID, email)
}

// CheckProjectName reports whether a project name is still free. Names
// are unique by convention only; this pre-check is the sole enforcement.
func (r *Registry) CheckProjectName(ctx context.Context, name string) error {
	exists, err := r.projects.NameExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return faults.Invalid("name", "a project with this name already exists")
	}
	return nil
}

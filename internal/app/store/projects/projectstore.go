// internal/app/store/projects/projectstore.go
package projectstore

import (
	"context"
	"errors"
	"time"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

// emailFilter matches projects where the email appears in either
// participant list.
func emailFilter(email string) bson.M {
	return bson.M{"$or": []bson.M{
		{"clients.email": email},
		{"companyPeople.email": email},
	}}
}

// Create inserts a new project.
func (s *Store) Create(ctx context.Context, p models.Project) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.CreatedOn = now
	if p.Clients == nil {
		p.Clients = []models.Participant{}
	}
	if p.CompanyPeople == nil {
		p.CompanyPeople = []models.Participant{}
	}
	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Project, error) {
	var p models.Project
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Project{}, faults.ErrNotFound
	}
	if err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// NameExists reports whether any project carries this name. Project names
// are unique by this pre-check only; there is no storage-level constraint.
func (s *Store) NameExists(ctx context.Context, name string) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"name": name}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountByParticipantEmail counts the projects in which the email appears
// in clients or companyPeople. Feeds the per-user project ceiling.
func (s *Store) CountByParticipantEmail(ctx context.Context, email string) (int64, error) {
	return s.c.CountDocuments(ctx, emailFilter(normalize.Email(email)))
}

// ContainsEmail reports whether the given project holds the email in
// either participant list.
func (s *Store) ContainsEmail(ctx context.Context, id primitive.ObjectID, email string) (bool, error) {
	filter := bson.M{"$and": []bson.M{{"_id": id}, emailFilter(normalize.Email(email))}}
	err := s.c.FindOne(ctx, filter).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByClientID returns the projects where the user id appears in the
// clients list.
func (s *Store) ListByClientID(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"clients.id": userID})
}

// ListByCompanyOrHead returns the projects where the user id appears in
// companyPeople or is the project head.
func (s *Store) ListByCompanyOrHead(ctx context.Context, userID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"$or": []bson.M{
		{"companyPeople.id": userID},
		{"projectHead": userID},
	}})
}

func (s *Store) list(ctx context.Context, filter bson.M) ([]models.Project, error) {
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// UpdateDetails rewrites name, description, url, and deadline.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, description, url, deadline string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
		"url":         url,
		"deadline":    deadline,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// SetHead transfers the project head, refreshing the denormalized name.
func (s *Store) SetHead(ctx context.Context, id, headID primitive.ObjectID, headName string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"projectHead":     headID,
		"projectHeadName": headName,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// SetCompanyProjectRole assigns the free-text project role for the company
// person with the given email. Entries in the clients list are not
// touched; the original system scopes role labels to company people.
func (s *Store) SetCompanyProjectRole(ctx context.Context, id primitive.ObjectID, email, projectRole string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"companyPeople.$[p].projectRole": projectRole}},
		// arrayFilters targets every matching entry, mirroring the
		// original's forEach over companyPeople.
		arrayFilterOpts("p.email", normalize.Email(email)),
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

func arrayFilterOpts(field string, value any) *options.UpdateOptions {
	return options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []any{bson.M{field: value}},
	})
}

// PushParticipant appends the participant to the named list ("clients" or
// "companyPeople"), guarded so the same email can never land twice in the
// same project even by concurrent writers. Returns false when the guard
// rejected the write.
func (s *Store) PushParticipant(ctx context.Context, id primitive.ObjectID, list string, p models.Participant) (bool, error) {
	filter := bson.M{
		"_id":                 id,
		"clients.email":       bson.M{"$ne": p.Email},
		"companyPeople.email": bson.M{"$ne": p.Email},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{list: p}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return false, faults.ErrNotFound
		} else if err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// PullParticipantByEmail removes the email from both participant lists.
// An email is expected in at most one, but both are cleared
// unconditionally; removing a non-member is a no-op success.
func (s *Store) PullParticipantByEmail(ctx context.Context, id primitive.ObjectID, email string) error {
	e := normalize.Email(email)
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$pull": bson.M{
		"clients":       bson.M{"email": e},
		"companyPeople": bson.M{"email": e},
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// Delete removes a project document. Cascading issue deletion is the
// caller's responsibility (see the projects feature).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

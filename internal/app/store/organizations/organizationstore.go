// internal/app/store/organizations/organizationstore.go
package organizationstore

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
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

// Create inserts a new organization. The head is recorded both as
// organizationHead and as the first member entry, so "head counts as
// member" holds structurally from the start.
func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.CreatedOn = now
	if org.Members == nil {
		org.Members = []models.OrgMember{}
	}
	for i := range org.Members {
		if org.Members[i].JoinedOn.IsZero() {
			org.Members[i].JoinedOn = now
		}
	}
	if _, err := s.c.InsertOne(ctx, org); err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByID loads an organization by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organization{}, faults.ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// userFilter matches organizations where the user id is the head or
// appears in the members list.
func userFilter(userID primitive.ObjectID) bson.M {
	return bson.M{"$or": []bson.M{
		{"members.id": userID},
		{"organizationHead": userID},
	}}
}

// FindByUser returns the organization the user belongs to (as head or
// member), or faults.ErrNotFound.
func (s *Store) FindByUser(ctx context.Context, userID primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, userFilter(userID)).Decode(&org)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Organization{}, faults.ErrNotFound
	}
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// ExistsForUser reports whether any organization holds the user as head or
// member.
func (s *Store) ExistsForUser(ctx context.Context, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, userFilter(userID)).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// UpdateDetails rewrites name and description.
func (s *Store) UpdateDetails(ctx context.Context, id primitive.ObjectID, name, description string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"name":        name,
		"description": description,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// SetHead transfers the head role, refreshing the denormalized head name.
func (s *Store) SetHead(ctx context.Context, id, headID primitive.ObjectID, headName string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"organizationHead":     headID,
		"organizationHeadName": headName,
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// PushMember appends a member entry, guarded so the same user id can never
// be appended twice even by concurrent writers: the filter only matches
// when the id is absent from both the members list and the head field.
// Returns false when the guard rejected the write (already present).
func (s *Store) PushMember(ctx context.Context, id primitive.ObjectID, m models.OrgMember) (bool, error) {
	filter := bson.M{
		"_id":              id,
		"members.id":       bson.M{"$ne": m.ID},
		"organizationHead": bson.M{"$ne": m.ID},
	}
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"members": m}})
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 0 {
		// Distinguish "organization missing" from "guard rejected".
		if err := s.c.FindOne(ctx, bson.M{"_id": id}).Err(); errors.Is(err, mongo.ErrNoDocuments) {
			return false, faults.ErrNotFound
		} else if err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// PullMemberByEmail removes the member with the given email. Removing a
// non-member is a no-op success.
func (s *Store) PullMemberByEmail(ctx context.Context, id primitive.ObjectID, email string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"members": bson.M{"email": normalize.Email(email)}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// Delete removes an organization by ID.
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

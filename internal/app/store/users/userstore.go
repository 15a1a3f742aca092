// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/normalize"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

var (
	// ErrDuplicateEmail is returned when creating a user whose email is
	// already registered.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
)

// Create inserts a new user after normalizing fields. The password is
// stored as given; hashing happens at the auth boundary.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.Email = normalize.Email(u.Email)
	if u.Role != models.RoleCompany && u.Role != models.RoleClient {
		return models.User{}, faults.Invalid("role", `must be "Company" or "Client"`)
	}
	u.CreatedOn = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, faults.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// GetByEmail loads a user by normalized email.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, faults.ErrNotFound
	}
	if err != nil {
		return models.User{}, err
	}
	return u, nil
}

// Update rewrites a user's self-editable fields. Historical snapshots on
// organizations, projects, and issues are left as they were.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, email, organizationName string) error {
	set := bson.M{
		"name":             normalize.Name(name),
		"email":            normalize.Email(email),
		"organizationName": organizationName,
	}
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	if err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// UpdatePassword replaces the stored credential hash for the user with the
// given email.
func (s *Store) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email": normalize.Email(email)},
		bson.M{"$set": bson.M{"password": passwordHash}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// Delete removes a user. References held by organizations and projects are
// intentionally left dangling (snapshot semantics).
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

// Search returns users whose name, email, or organizationName matches the
// query, case-insensitively. The query is quoted so regex metacharacters
// in user input cannot change the match shape.
func (s *Store) Search(ctx context.Context, q string) ([]models.User, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": re},
		{"email": re},
		{"organizationName": re},
	}}

	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// internal/app/store/issues/issuestore.go
package issuestore

import (
	"context"
	"errors"
	"time"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("issues")}
}

// Create inserts a new issue. Status defaults to Backlog; createdOn is
// stamped once here and never rewritten.
func (s *Store) Create(ctx context.Context, issue models.Issue) (models.Issue, error) {
	issue.ID = primitive.NewObjectID()
	issue.CreatedOn = time.Now().UTC()
	if issue.Status == "" {
		issue.Status = models.StatusBacklog
	}
	if issue.Assignees == nil {
		issue.Assignees = []models.Assignee{}
	}
	if issue.Comments == nil {
		issue.Comments = []models.Comment{}
	}
	if _, err := s.c.InsertOne(ctx, issue); err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// GetByID loads an issue by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Issue, error) {
	var issue models.Issue
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&issue)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Issue{}, faults.ErrNotFound
	}
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

// ListByProject returns all issues of a project.
func (s *Store) ListByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Issue, error) {
	cur, err := s.c.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var issues []models.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// ListOpenByProject returns the project's issues that are not Done.
// Backs the download projection.
func (s *Store) ListOpenByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.Issue, error) {
	cur, err := s.c.Find(ctx, bson.M{
		"projectId": projectID,
		"status":    bson.M{"$ne": models.StatusDone},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var issues []models.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// Replace persists the mutable fields of an issue wholesale. The lifecycle
// engine decides what the fields look like (status coupling, timestamps);
// the store just writes them.
func (s *Store) Replace(ctx context.Context, issue models.Issue) error {
	set := bson.M{
		"shortSummary":    issue.ShortSummary,
		"description":     issue.Description,
		"priority":        issue.Priority,
		"estimateInHours": issue.EstimateInHours,
		"assignees":       issue.Assignees,
		"status":          issue.Status,
	}
	unset := bson.M{}
	if issue.UpdatedOn != nil {
		set["updatedOn"] = *issue.UpdatedOn
	}
	if issue.ClosedOn != nil {
		set["closedOn"] = *issue.ClosedOn
	} else {
		unset["closedOn"] = ""
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	res, err := s.c.UpdateByID(ctx, issue.ID, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// PushComment appends a comment to the issue's ordered comment list.
func (s *Store) PushComment(ctx context.Context, id primitive.ObjectID, c models.Comment) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{"$push": bson.M{"comments": c}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// PullComment removes the comment with the given id. Removing an unknown
// comment id is a no-op success; remaining comments keep their order.
func (s *Store) PullComment(ctx context.Context, id primitive.ObjectID, commentID string) error {
	res, err := s.c.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"comments": bson.M{"id": commentID}},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return faults.ErrNotFound
	}
	return nil
}

// Delete removes a single issue.
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

// DeleteByProject removes every issue of a project. Called from project
// deletion, the only cascading delete in the model. Returns the number of
// issues removed.
func (s *Store) DeleteByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

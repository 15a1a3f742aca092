package issuestore

import (
	"errors"
	"testing"
	"time"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"github.com/issuedeck/issuedeck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateDefaults(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	issue, err := s.Create(ctx, models.Issue{
		ShortSummary: "login broken",
		Description:  "500 on submit",
		Priority:     "High",
		ProjectID:    primitive.NewObjectID(),
		Reporter:     primitive.NewObjectID(),
		ReporterName: "Ada",
	})
	if err != nil {
		t.Fatal(err)
	}
	if issue.ID.IsZero() {
		t.Fatal("Create must assign an id")
	}
	if issue.Status != models.StatusBacklog {
		t.Fatalf("status = %q, want Backlog default", issue.Status)
	}
	if issue.CreatedOn.IsZero() {
		t.Fatal("Create must stamp createdOn")
	}
	if issue.UpdatedOn != nil || issue.ClosedOn != nil {
		t.Fatalf("fresh issue must have no updatedOn/closedOn: %+v", issue)
	}

	got, err := s.GetByID(ctx, issue.ID)
	if err != nil || got.ShortSummary != "login broken" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
}

func TestListByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	projectID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for _, summary := range []string{"a", "b"} {
		if _, err := s.Create(ctx, models.Issue{ShortSummary: summary, ProjectID: projectID}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := s.Create(ctx, models.Issue{ShortSummary: "elsewhere", ProjectID: other}); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListByProject(ctx, projectID)
	if err != nil || len(got) != 2 {
		t.Fatalf("ListByProject = %d, %v", len(got), err)
	}
}

func TestListOpenByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	projectID := primitive.NewObjectID()

	open, err := s.Create(ctx, models.Issue{ShortSummary: "open", ProjectID: projectID})
	if err != nil {
		t.Fatal(err)
	}
	done, err := s.Create(ctx, models.Issue{ShortSummary: "done", ProjectID: projectID})
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now().UTC()
	done.Status = models.StatusDone
	done.ClosedOn = &now
	if err := s.Replace(ctx, done); err != nil {
		t.Fatal(err)
	}

	got, err := s.ListOpenByProject(ctx, projectID)
	if err != nil || len(got) != 1 || got[0].ID != open.ID {
		t.Fatalf("ListOpenByProject = %+v, %v", got, err)
	}
}

func TestReplaceTimestampFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	issue, err := s.Create(ctx, models.Issue{ShortSummary: "s", ProjectID: primitive.NewObjectID()})
	if err != nil {
		t.Fatal(err)
	}

	// Close: closedOn set, updatedOn left alone.
	closed := time.Now().UTC().Truncate(time.Millisecond)
	issue.Status = models.StatusDone
	issue.ClosedOn = &closed
	if err := s.Replace(ctx, issue); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ClosedOn == nil || !got.ClosedOn.Equal(closed) {
		t.Fatalf("closedOn = %v", got.ClosedOn)
	}
	if got.UpdatedOn != nil {
		t.Fatalf("updatedOn = %v, want unset", got.UpdatedOn)
	}

	// Reopen: closedOn unset, updatedOn stamped.
	updated := time.Now().UTC().Truncate(time.Millisecond)
	got.Status = "In Progress"
	got.ClosedOn = nil
	got.UpdatedOn = &updated
	if err := s.Replace(ctx, got); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetByID(ctx, issue.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.ClosedOn != nil {
		t.Fatalf("closedOn = %v, want cleared", got.ClosedOn)
	}
	if got.UpdatedOn == nil || !got.UpdatedOn.Equal(updated) {
		t.Fatalf("updatedOn = %v", got.UpdatedOn)
	}

	missing := got
	missing.ID = primitive.NewObjectID()
	if err := s.Replace(ctx, missing); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("replace missing = %v", err)
	}
}

func TestComments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	issue, err := s.Create(ctx, models.Issue{ShortSummary: "s", ProjectID: primitive.NewObjectID()})
	if err != nil {
		t.Fatal(err)
	}

	c1 := models.Comment{ID: "c1", UserID: primitive.NewObjectID(), Name: "Ada", CommentBody: "first", PostedOn: time.Now().UTC()}
	c2 := models.Comment{ID: "c2", UserID: primitive.NewObjectID(), Name: "Grace", CommentBody: "second", PostedOn: time.Now().UTC()}
	for _, c := range []models.Comment{c1, c2} {
		if err := s.PushComment(ctx, issue.ID, c); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.GetByID(ctx, issue.ID)
	if err != nil || len(got.Comments) != 2 || got.Comments[0].ID != "c1" {
		t.Fatalf("comments = %+v, %v", got.Comments, err)
	}

	if err := s.PullComment(ctx, issue.ID, "c1"); err != nil {
		t.Fatal(err)
	}
	got, err = s.GetByID(ctx, issue.ID)
	if err != nil || len(got.Comments) != 1 || got.Comments[0].ID != "c2" {
		t.Fatalf("after pull = %+v, %v", got.Comments, err)
	}
	// Unknown comment ids are a no-op.
	if err := s.PullComment(ctx, issue.ID, "nope"); err != nil {
		t.Fatalf("pull unknown = %v", err)
	}
}

func TestDeleteByProject(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	projectID := primitive.NewObjectID()
	other := primitive.NewObjectID()

	for i := 0; i < 3; i++ {
		if _, err := s.Create(ctx, models.Issue{ShortSummary: "s", ProjectID: projectID}); err != nil {
			t.Fatal(err)
		}
	}
	keep, err := s.Create(ctx, models.Issue{ShortSummary: "keep", ProjectID: other})
	if err != nil {
		t.Fatal(err)
	}

	n, err := s.DeleteByProject(ctx, projectID)
	if err != nil || n != 3 {
		t.Fatalf("DeleteByProject = %d, %v", n, err)
	}
	if _, err := s.GetByID(ctx, keep.ID); err != nil {
		t.Fatalf("issue in another project must survive: %v", err)
	}
	if got, err := s.ListByProject(ctx, projectID); err != nil || len(got) != 0 {
		t.Fatalf("after cascade = %d, %v", len(got), err)
	}
}

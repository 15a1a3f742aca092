package indexes_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/issuedeck/issuedeck/internal/app/system/indexes"
	"github.com/issuedeck/issuedeck/internal/testutil"
)

func indexNames(t *testing.T, coll *mongo.Collection) map[string]bool {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		t.Fatalf("list indexes: %v", err)
	}
	var specs []bson.M
	if err := cur.All(ctx, &specs); err != nil {
		t.Fatalf("decode indexes: %v", err)
	}
	names := make(map[string]bool, len(specs))
	for _, s := range specs {
		if n, ok := s["name"].(string); ok {
			names[n] = true
		}
	}
	return names
}

func TestEnsureAll(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if names := indexNames(t, db.Collection("users")); !names["uniq_users_email"] {
		t.Errorf("users missing uniq_users_email, have %v", names)
	}
	if names := indexNames(t, db.Collection("issues")); !names["idx_issues_project_id"] {
		t.Errorf("issues missing idx_issues_project_id, have %v", names)
	}
	names := indexNames(t, db.Collection("projects"))
	for _, want := range []string{"idx_projects_clients_email", "idx_projects_companypeople_email"} {
		if !names[want] {
			t.Errorf("projects missing %s, have %v", want, names)
		}
	}
}

func TestEnsureAllIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("first EnsureAll failed: %v", err)
	}
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("second EnsureAll failed: %v", err)
	}
}

// A pre-existing index on the same keys with the wrong uniqueness gets
// dropped and recreated.
func TestEnsureAllReconcilesUniqueness(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_plain"),
	})
	if err != nil {
		t.Fatalf("seed non-unique index: %v", err)
	}

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	names := indexNames(t, db.Collection("users"))
	if names["email_plain"] {
		t.Error("non-unique email index should have been dropped")
	}
	if !names["uniq_users_email"] {
		t.Errorf("unique email index missing, have %v", names)
	}
}

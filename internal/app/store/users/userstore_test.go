package userstore

import (
	"errors"
	"testing"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/app/system/indexes"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"github.com/issuedeck/issuedeck/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)

	u, err := s.Create(ctx, models.User{
		Name:  "Ada Lovelace",
		Email: "  Ada@Example.COM ",
		Role:  models.RoleCompany,
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID.IsZero() {
		t.Fatal("Create must assign an id")
	}
	if u.Email != "ada@example.com" {
		t.Fatalf("email = %q, want normalized", u.Email)
	}

	got, err := s.GetByID(ctx, u.ID)
	if err != nil || got.Name != "Ada Lovelace" {
		t.Fatalf("GetByID = %+v, %v", got, err)
	}
	got, err = s.GetByEmail(ctx, "ADA@example.com")
	if err != nil || got.ID != u.ID {
		t.Fatalf("GetByEmail = %+v, %v", got, err)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Create(ctx, models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleCompany}); err != nil {
		t.Fatal(err)
	}
	_, err := s.Create(ctx, models.User{Name: "Imposter", Email: "ada@example.com", Role: models.RoleClient})
	if !errors.Is(err, ErrDuplicateEmail) {
		t.Fatalf("duplicate create = %v, want ErrDuplicateEmail", err)
	}
}

func TestCreateBadRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	if _, err := s.Create(ctx, models.User{Name: "Ada", Email: "ada@example.com", Role: "Admin"}); !faults.IsValidation(err) {
		t.Fatalf("bad role = %v, want ValidationError", err)
	}
}

func TestGetMissing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	if _, err := s.GetByID(ctx, primitive.NewObjectID()); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("missing id = %v, want ErrNotFound", err)
	}
	if _, err := s.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("missing email = %v, want ErrNotFound", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	u, err := s.Create(ctx, models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleCompany})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Update(ctx, u.ID, "Ada L.", "ada.l@example.com", "Acme"); err != nil {
		t.Fatal(err)
	}
	got, err := s.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Ada L." || got.Email != "ada.l@example.com" || got.OrganizationName != "Acme" {
		t.Fatalf("after update: %+v", got)
	}

	if err := s.UpdatePassword(ctx, got.Email, "newhash"); err != nil {
		t.Fatal(err)
	}

	if err := s.Delete(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.GetByID(ctx, u.ID); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("after delete = %v", err)
	}
}

func TestSearch(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	s := New(db)
	for _, u := range []models.User{
		{Name: "Ada Lovelace", Email: "ada@example.com", Role: models.RoleCompany, OrganizationName: "Analytical"},
		{Name: "Grace Hopper", Email: "grace@example.com", Role: models.RoleCompany},
		{Name: "Charles Babbage", Email: "charles@example.com", Role: models.RoleClient},
	} {
		if _, err := s.Create(ctx, u); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Search(ctx, "lovelace")
	if err != nil || len(got) != 1 || got[0].Name != "Ada Lovelace" {
		t.Fatalf("by name = %+v, %v", got, err)
	}
	got, err = s.Search(ctx, "Analytical")
	if err != nil || len(got) != 1 {
		t.Fatalf("by organization = %+v, %v", got, err)
	}
	// Regex metacharacters are quoted, not interpreted.
	got, err = s.Search(ctx, "a.*")
	if err != nil || len(got) != 0 {
		t.Fatalf("metacharacters = %+v, %v", got, err)
	}
}

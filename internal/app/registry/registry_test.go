package registry

import (
	"errors"
	"fmt"
	"testing"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
	"github.com/issuedeck/issuedeck/internal/testutil"
)

func TestOrganizationEligibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	member := f.CreateCompanyUser(ctx, "Member", "member@example.com")
	outsider := f.CreateCompanyUser(ctx, "Outsider", "outsider@example.com")

	org := f.CreateOrganization(ctx, "Acme", head)
	if _, err := reg.AddOrganizationMember(ctx, org.ID, member); err != nil {
		t.Fatal(err)
	}

	// The head counts as a member even without a members entry elsewhere.
	if err := reg.CheckOrganizationEligibility(ctx, head.ID); !errors.Is(err, faults.ErrAlreadyMember) {
		t.Fatalf("head eligibility = %v, want ErrAlreadyMember", err)
	}
	if err := reg.CheckOrganizationEligibility(ctx, member.ID); !errors.Is(err, faults.ErrAlreadyMember) {
		t.Fatalf("member eligibility = %v, want ErrAlreadyMember", err)
	}
	if err := reg.CheckOrganizationEligibility(ctx, outsider.ID); err != nil {
		t.Fatalf("outsider eligibility = %v, want nil", err)
	}
}

func TestAddOrganizationMemberTwice(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	member := f.CreateCompanyUser(ctx, "Member", "member@example.com")
	org := f.CreateOrganization(ctx, "Acme", head)

	if _, err := reg.AddOrganizationMember(ctx, org.ID, member); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.AddOrganizationMember(ctx, org.ID, member); !errors.Is(err, faults.ErrAlreadyMember) {
		t.Fatalf("second add = %v, want ErrAlreadyMember", err)
	}
}

func TestRemoveOrganizationMemberIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	member := f.CreateCompanyUser(ctx, "Member", "member@example.com")
	org := f.CreateOrganization(ctx, "Acme", head)

	if _, err := reg.AddOrganizationMember(ctx, org.ID, member); err != nil {
		t.Fatal(err)
	}
	if err := reg.RemoveOrganizationMember(ctx, org.ID, member.Email); err != nil {
		t.Fatal(err)
	}
	// Removed members are eligible again, and removing again is a no-op.
	if err := reg.CheckOrganizationEligibility(ctx, member.ID); err != nil {
		t.Fatalf("eligibility after removal = %v", err)
	}
	if err := reg.RemoveOrganizationMember(ctx, org.ID, member.Email); err != nil {
		t.Fatalf("second removal = %v, want nil", err)
	}
}

func TestProjectEligibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	dev := f.CreateCompanyUser(ctx, "Dev", "dev@example.com")
	project := f.CreateProject(ctx, "Apollo", head)

	if err := reg.CheckProjectEligibility(ctx, dev.Email, project.ID); err != nil {
		t.Fatalf("fresh email = %v", err)
	}
	// Head is already in companyPeople.
	if err := reg.CheckProjectEligibility(ctx, head.Email, project.ID); !errors.Is(err, faults.ErrAlreadyInProject) {
		t.Fatalf("head = %v, want ErrAlreadyInProject", err)
	}
}

func TestProjectCeiling(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	dev := f.CreateCompanyUser(ctx, "Dev", "dev@example.com")

	for i := 0; i < 4; i++ {
		p := f.CreateProject(ctx, fmt.Sprintf("Project %d", i), head)
		if _, err := reg.AddProjectMember(ctx, p.ID, dev); err != nil {
			t.Fatalf("project %d: %v", i, err)
		}
	}

	fifth := f.CreateProject(ctx, "Project 4", head)
	if _, err := reg.AddProjectMember(ctx, fifth.ID, dev); !errors.Is(err, faults.ErrLimitExceeded) {
		t.Fatalf("fifth project = %v, want ErrLimitExceeded", err)
	}
	if err := reg.CheckProjectEligibility(ctx, dev.Email, fifth.ID); !errors.Is(err, faults.ErrLimitExceeded) {
		t.Fatalf("eligibility at ceiling = %v, want ErrLimitExceeded", err)
	}
}

func TestAddProjectMemberListPlacement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	client := f.CreateClientUser(ctx, "Client", "client@example.com")
	dev := f.CreateCompanyUser(ctx, "Dev", "dev@example.com")
	project := f.CreateProject(ctx, "Apollo", head)

	if _, err := reg.AddProjectMember(ctx, project.ID, client); err != nil {
		t.Fatal(err)
	}
	if _, err := reg.AddProjectMember(ctx, project.ID, dev); err != nil {
		t.Fatal(err)
	}

	stored, err := reg.projects.GetByID(ctx, project.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored.Clients) != 1 || stored.Clients[0].ID != client.ID {
		t.Fatalf("clients = %+v", stored.Clients)
	}
	// Head plus the added dev.
	if len(stored.CompanyPeople) != 2 {
		t.Fatalf("companyPeople = %+v", stored.CompanyPeople)
	}
	if stored.CompanyPeople[1].ProjectRole != "" {
		t.Fatalf("new participants start without a project role, got %q", stored.CompanyPeople[1].ProjectRole)
	}
}

func TestRemoveProjectMemberIdempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	client := f.CreateClientUser(ctx, "Client", "client@example.com")
	project := f.CreateProject(ctx, "Apollo", head)

	if _, err := reg.AddProjectMember(ctx, project.ID, client); err != nil {
		t.Fatal(err)
	}
	if err := reg.RemoveProjectMember(ctx, project.ID, client.Email); err != nil {
		t.Fatal(err)
	}
	if err := reg.RemoveProjectMember(ctx, project.ID, client.Email); err != nil {
		t.Fatalf("second removal = %v, want nil", err)
	}
	if err := reg.CheckProjectEligibility(ctx, client.Email, project.ID); err != nil {
		t.Fatalf("eligibility after removal = %v", err)
	}
}

func TestCheckProjectName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	f := testutil.NewFixtures(t, db)
	reg := New(db)

	head := f.CreateCompanyUser(ctx, "Head", "head@example.com")
	f.CreateProject(ctx, "Apollo", head)

	if err := reg.CheckProjectName(ctx, "Apollo"); !faults.IsValidation(err) {
		t.Fatalf("taken name = %v, want ValidationError", err)
	}
	if err := reg.CheckProjectName(ctx, "Artemis"); err != nil {
		t.Fatalf("free name = %v", err)
	}
}

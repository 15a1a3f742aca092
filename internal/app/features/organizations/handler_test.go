package organizations_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/issuedeck/issuedeck/internal/app/features/organizations"
	"github.com/issuedeck/issuedeck/internal/app/registry"
	"github.com/issuedeck/issuedeck/internal/domain/models"
	"github.com/issuedeck/issuedeck/internal/testutil"
)

func newTestHandler(t *testing.T) (*organizations.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	handler := organizations.NewHandler(db, registry.New(db), zap.NewNop())
	return handler, testutil.NewFixtures(t, db)
}

func decodeMsg(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body["msg"]
}

func TestHandleCreate(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	founder := fixtures.CreateCompanyUser(ctx, "Founder", "founder@example.com")

	req := httptest.NewRequest("POST", "/create", strings.NewReader(`{"name":"Acme","description":"widgets"}`))
	req = testutil.AsIdentity(req, founder.ID, founder.Role)
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if msg := decodeMsg(t, rec); msg != "Organization Created" {
		t.Errorf("msg = %q", msg)
	}

	var org models.Organization
	err := fixtures.DB().Collection("organizations").
		FindOne(ctx, bson.M{"name": "Acme"}).Decode(&org)
	if err != nil {
		t.Fatalf("organization not persisted: %v", err)
	}
	if org.OrganizationHead != founder.ID {
		t.Error("founder should be the head")
	}
	if len(org.Members) != 1 || org.Members[0].ID != founder.ID {
		t.Errorf("founder should be the first member, got %+v", org.Members)
	}
	if org.Members[0].JoinedOn.IsZero() {
		t.Error("member joinedOn should be stamped")
	}
}

func TestHandleCreateSecondOrganizationConflicts(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	founder := fixtures.CreateCompanyUser(ctx, "Founder", "founder@example.com")
	fixtures.CreateOrganization(ctx, "First", founder)

	req := httptest.NewRequest("POST", "/create", strings.NewReader(`{"name":"Second"}`))
	req = testutil.AsIdentity(req, founder.ID, founder.Role)
	rec := httptest.NewRecorder()
	handler.HandleCreate(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
}

func TestHandleAddMember(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	head := fixtures.CreateCompanyUser(ctx, "Head", "head@example.com")
	org := fixtures.CreateOrganization(ctx, "Acme", head)
	joiner := fixtures.CreateClientUser(ctx, "Joiner", "joiner@example.com")

	req := httptest.NewRequest("PUT", "/add/user/"+org.ID.Hex(), strings.NewReader(`{"email":"joiner@example.com"}`))
	req = testutil.WithChiURLParam(req, "organizationid", org.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleAddMember(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var stored models.Organization
	if err := fixtures.DB().Collection("organizations").
		FindOne(ctx, bson.M{"_id": org.ID}).Decode(&stored); err != nil {
		t.Fatalf("reload organization: %v", err)
	}
	if len(stored.Members) != 2 || stored.Members[1].ID != joiner.ID {
		t.Errorf("joiner should be appended, members = %+v", stored.Members)
	}

	// Adding the same user again conflicts.
	req = httptest.NewRequest("PUT", "/add/user/"+org.ID.Hex(), strings.NewReader(`{"email":"joiner@example.com"}`))
	req = testutil.WithChiURLParam(req, "organizationid", org.ID.Hex())
	rec = httptest.NewRecorder()
	handler.HandleAddMember(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate add: status = %d, want 409", rec.Code)
	}
}

func TestHandleAddMemberFromAnotherOrganization(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	headA := fixtures.CreateCompanyUser(ctx, "Head A", "heada@example.com")
	fixtures.CreateOrganization(ctx, "Alpha", headA)
	headB := fixtures.CreateCompanyUser(ctx, "Head B", "headb@example.com")
	orgB := fixtures.CreateOrganization(ctx, "Beta", headB)

	// headA already heads Alpha, so Beta cannot take them.
	req := httptest.NewRequest("PUT", "/add/user/"+orgB.ID.Hex(), strings.NewReader(`{"email":"heada@example.com"}`))
	req = testutil.WithChiURLParam(req, "organizationid", orgB.ID.Hex())
	rec := httptest.NewRecorder()
	handler.HandleAddMember(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want 409; body %s", rec.Code, rec.Body.String())
	}
}

func TestHandleRemoveMemberIdempotent(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	head := fixtures.CreateCompanyUser(ctx, "Head", "head@example.com")
	org := fixtures.CreateOrganization(ctx, "Acme", head)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("DELETE", "/remove/user", nil)
		req = testutil.WithChiURLParam(req, "organizationid", org.ID.Hex())
		req = testutil.WithChiURLParam(req, "emailid", "gone@example.com")
		req = testutil.AsIdentity(req, head.ID, head.Role)
		rec := httptest.NewRecorder()
		handler.HandleRemoveMember(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("removal %d: status = %d, body %s", i+1, rec.Code, rec.Body.String())
		}
	}
}

func TestHandleRemoveMemberRequiresIdentity(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	head := fixtures.CreateCompanyUser(ctx, "Head", "head@example.com")
	org := fixtures.CreateOrganization(ctx, "Acme", head)

	req := httptest.NewRequest("DELETE", "/remove/user", nil)
	req = testutil.WithChiURLParam(req, "organizationid", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "emailid", "head@example.com")
	rec := httptest.NewRecorder()
	handler.HandleRemoveMember(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var stored models.Organization
	if err := fixtures.DB().Collection("organizations").
		FindOne(ctx, bson.M{"_id": org.ID}).Decode(&stored); err != nil {
		t.Fatalf("reload organization: %v", err)
	}
	if len(stored.Members) != 1 {
		t.Error("anonymous removal should not touch the member list")
	}
}

func TestServeCheckUser(t *testing.T) {
	handler, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	head := fixtures.CreateCompanyUser(ctx, "Head", "head@example.com")
	org := fixtures.CreateOrganization(ctx, "Acme", head)
	fixtures.CreateClientUser(ctx, "Free", "free@example.com")

	req := httptest.NewRequest("GET", "/check-user", nil)
	req = testutil.WithChiURLParam(req, "organizationid", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "emailid", "free@example.com")
	rec := httptest.NewRecorder()
	handler.ServeCheckUser(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	// The head is already in an organization.
	req = httptest.NewRequest("GET", "/check-user", nil)
	req = testutil.WithChiURLParam(req, "organizationid", org.ID.Hex())
	req = testutil.WithChiURLParam(req, "emailid", "head@example.com")
	rec = httptest.NewRecorder()
	handler.ServeCheckUser(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("member check: status = %d, want 409", rec.Code)
	}
}

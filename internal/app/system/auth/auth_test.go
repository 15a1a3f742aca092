package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestManager(t *testing.T) *TokenManager {
	t.Helper()
	tm, err := NewTokenManager("test-secret-0123456789", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	return tm
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.Issue("64f000000000000000000001", "Company")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	id, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if id.UserID != "64f000000000000000000001" {
		t.Errorf("UserID = %q, want %q", id.UserID, "64f000000000000000000001")
	}
	if id.Role != "Company" {
		t.Errorf("Role = %q, want %q", id.Role, "Company")
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	tm := newTestManager(t)
	other, _ := NewTokenManager("different-secret", time.Hour)

	token, err := other.Issue("64f000000000000000000001", "Client")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	tm, err := NewTokenManager("test-secret", time.Nanosecond)
	if err != nil {
		t.Fatalf("NewTokenManager failed: %v", err)
	}
	// NewTokenManager treats <=0 as default, so build a real but tiny expiry.
	token, err := tm.Issue("64f000000000000000000001", "Client")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	if _, err := tm.Verify(token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestActionToken_PurposeMismatch(t *testing.T) {
	tm := newTestManager(t)

	token, err := tm.IssueActionToken("user@example.com", "register", 5*time.Minute)
	if err != nil {
		t.Fatalf("IssueActionToken failed: %v", err)
	}

	email, err := tm.VerifyActionToken(token, "register")
	if err != nil {
		t.Fatalf("VerifyActionToken failed: %v", err)
	}
	if email != "user@example.com" {
		t.Errorf("email = %q, want %q", email, "user@example.com")
	}

	if _, err := tm.VerifyActionToken(token, "password-reset"); err == nil {
		t.Fatal("expected error for purpose mismatch")
	}
}

func TestNewTokenManager_EmptySecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestLoadIdentity_Middleware(t *testing.T) {
	tm := newTestManager(t)
	token, _ := tm.Issue("64f000000000000000000002", "Client")

	var got Identity
	var found bool
	h := tm.LoadIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, found = CurrentIdentity(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)

	if !found {
		t.Fatal("expected identity in context")
	}
	if got.Role != "Client" {
		t.Errorf("Role = %q, want %q", got.Role, "Client")
	}
}

func TestRequireSignedIn_Anonymous(t *testing.T) {
	h := RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run for anonymous request")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

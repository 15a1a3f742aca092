// internal/app/system/auth/auth.go

// Package auth is the identity-provider boundary. It issues and verifies
// the bearer tokens that carry {userId, role}, and injects the verified
// identity into the request context. Nothing downstream of this package
// validates credentials; handlers and the core consume the identity as
// given.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated principal for a request.
type Identity struct {
	UserID string // hex ObjectID of the user
	Role   string // Company | Client
}

// ErrInvalidToken is returned for malformed, expired, or mis-signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Action-token purposes. A token minted for one purpose never verifies
// under another.
const (
	PurposeRegister = "register"
	PurposeReset    = "password-reset"
)

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type actionClaims struct {
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret []byte
	expiry time.Duration
}

// NewTokenManager builds a TokenManager. The secret must be non-empty;
// expiry is how long session tokens stay valid.
func NewTokenManager(secret string, expiry time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("auth: signing secret must not be empty")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), expiry: expiry}, nil
}

// Issue creates a session token for the given user.
func (tm *TokenManager) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// Verify parses a session token and returns the identity it carries.
func (tm *TokenManager) Verify(token string) (Identity, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.Subject, Role: claims.Role}, nil
}

// IssueActionToken creates a short-lived token bound to an email address
// and a purpose ("register", "password-reset"). These back the emailed
// links; verifying requires the same purpose.
func (tm *TokenManager) IssueActionToken(email, purpose string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := actionClaims{
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
}

// VerifyActionToken checks an action token and returns the email it was
// issued for.
func (tm *TokenManager) VerifyActionToken(token, purpose string) (string, error) {
	var claims actionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, tm.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.Purpose != purpose || claims.Email == "" {
		return "", ErrInvalidToken
	}
	return claims.Email, nil
}

func (tm *TokenManager) keyFunc(*jwt.Token) (any, error) {
	return tm.secret, nil
}

/* ───────────────────────── request context ───────────────────────── */

type ctxKey string

const identityKey ctxKey = "identity"

// CurrentIdentity returns the verified identity for the request, if any.
func CurrentIdentity(r *http.Request) (Identity, bool) {
	id, ok := r.Context().Value(identityKey).(Identity)
	return id, ok
}

// WithIdentity injects an identity into the request context. Exported for
// handler tests.
func WithIdentity(r *http.Request, id Identity) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), identityKey, id))
}

// LoadIdentity verifies a Bearer token if one is present and stores the
// identity in context. Requests without a token pass through anonymous;
// RequireSignedIn decides whether that matters.
func (tm *TokenManager) LoadIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token := bearerToken(r); token != "" {
			if id, err := tm.Verify(token); err == nil {
				r = WithIdentity(r, id)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn rejects requests that carry no verified identity.
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentIdentity(r); !ok {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	token := strings.TrimPrefix(h, "Bearer ")
	if token == h {
		return ""
	}
	return strings.TrimSpace(token)
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized"}`))
}

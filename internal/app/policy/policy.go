// internal/app/policy/policy.go

// Package policy defines the decision type shared by the per-entity
// policy packages. Policies are pure functions over an identity and
// already-fetched entity snapshots; they never touch the database.
package policy

import (
	"fmt"

	"github.com/issuedeck/issuedeck/internal/app/system/faults"
)

// Reason codes carried by denials. Machine-readable so callers can branch
// without parsing text.
const (
	ReasonUnauthenticated = "unauthenticated"
	ReasonCompanyOnly     = "company-role-required"
	ReasonHeadOnly        = "head-only"
)

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string // set on denial
}

// Allow returns a positive decision.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny returns a denial with the given reason code.
func Deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Err converts a denial into a typed fault carrying the reason code;
// returns nil for allowed decisions.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return fmt.Errorf("%w (%s)", faults.ErrUnauthorized, d.Reason)
}

// Package orgpolicy provides authorization decisions for organization
// operations. The rules are deliberately permissive: any authenticated
// identity may update details, transfer the head, or manage membership,
// matching the behavior of the routes this package fronts.
package orgpolicy

import (
	"github.com/issuedeck/issuedeck/internal/app/policy"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
)

// CanUpdate reports whether the identity may edit organization details.
func CanUpdate(id auth.Identity) policy.Decision {
	if id.UserID == "" {
		return policy.Deny(policy.ReasonUnauthenticated)
	}
	return policy.Allow()
}

// CanTransferHead reports whether the identity may hand the
// organization to a new head.
func CanTransferHead(id auth.Identity) policy.Decision {
	return CanUpdate(id)
}

// CanManageMembers reports whether the identity may add or remove
// members.
func CanManageMembers(id auth.Identity) policy.Decision {
	return CanUpdate(id)
}

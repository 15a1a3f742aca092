// Package projectpolicy provides authorization decisions for project
// operations.
//
// Authorization rules:
//   - Creating a project and editing its details require the Company role
//   - Deleting a project requires being its current head
//   - Head transfer and project-role assignment are open to any
//     authenticated identity; the original system imposes no ownership
//     check here and callers wanting a stricter rule must add one
package projectpolicy

import (
	"github.com/issuedeck/issuedeck/internal/app/policy"
	"github.com/issuedeck/issuedeck/internal/app/system/auth"
	"github.com/issuedeck/issuedeck/internal/domain/models"
)

// CanCreate reports whether the identity may create a project.
func CanCreate(id auth.Identity) policy.Decision {
	if id.UserID == "" {
		return policy.Deny(policy.ReasonUnauthenticated)
	}
	if id.Role != models.RoleCompany {
		return policy.Deny(policy.ReasonCompanyOnly)
	}
	return policy.Allow()
}

// CanUpdate reports whether the identity may edit project details.
// Same rule as creation: Company role, no ownership requirement.
func CanUpdate(id auth.Identity) policy.Decision {
	return CanCreate(id)
}

// CanDelete reports whether the identity may delete the given project.
// Only the current project head may.
func CanDelete(id auth.Identity, project models.Project) policy.Decision {
	if id.UserID == "" {
		return policy.Deny(policy.ReasonUnauthenticated)
	}
	if project.ProjectHead.Hex() != id.UserID {
		return policy.Deny(policy.ReasonHeadOnly)
	}
	return policy.Allow()
}

// CanTransferHead reports whether the identity may hand the project to a
// new head. Any authenticated identity may.
func CanTransferHead(id auth.Identity) policy.Decision {
	if id.UserID == "" {
		return policy.Deny(policy.ReasonUnauthenticated)
	}
	return policy.Allow()
}

// CanAssignRole reports whether the identity may set a participant's
// project role. Any authenticated identity may.
func CanAssignRole(id auth.Identity) policy.Decision {
	if id.UserID == "" {
		return policy.Deny(policy.ReasonUnauthenticated)
	}
	return policy.Allow()
}

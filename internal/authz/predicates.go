// Package authz holds the per-feature permission predicates. They gate
// UI affordances through /api/me and are enforced a second time inside
// the feature handlers before any mutation; the duplication is
// deliberate, a hidden button is not a security boundary.
package authz

import "github.com/proven-platform/proven/internal/identity"

// CanCreateProject reports whether the role may create projects.
func CanCreateProject(role *identity.Role) bool {
	return roleIn(role, identity.RoleProjectOwner, identity.RoleProjectManager, identity.RoleSystemAdmin)
}

// CanEditProject reports whether the role may edit projects.
func CanEditProject(role *identity.Role) bool {
	return roleIn(role, identity.RoleProjectOwner, identity.RoleProjectManager, identity.RoleSystemAdmin)
}

// CanCreateAction reports whether the role may create action items.
func CanCreateAction(role *identity.Role) bool {
	return roleIn(role, identity.RoleProjectManager, identity.RoleProjectOwner, identity.RoleSystemAdmin)
}

// CanApprove reports whether the role may approve decisions.
func CanApprove(role *identity.Role) bool {
	return roleIn(role, identity.RoleTopManagement, identity.RoleProjectOwner)
}

// CanDeleteDocument allows the uploader of a document, and system_admin
// unconditionally.
func CanDeleteDocument(role *identity.Role, ownerID, principalID string) bool {
	if roleIn(role, identity.RoleSystemAdmin) {
		return true
	}
	return ownerID != "" && ownerID == principalID
}

// CanManageUsers is the system_admin-only gate for user management.
func CanManageUsers(role *identity.Role) bool {
	return roleIn(role, identity.RoleSystemAdmin)
}

// roleIn is the shared membership check. A nil role never matches:
// an unresolved identity holds no permissions.
func roleIn(role *identity.Role, allowed ...identity.Role) bool {
	if role == nil {
		return false
	}
	for _, a := range allowed {
		if *role == a {
			return true
		}
	}
	return false
}

package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/proven-platform/proven/internal/identity"
)

func rolePtr(r identity.Role) *identity.Role {
	return &r
}

func TestCanCreateProject(t *testing.T) {
	assert.True(t, CanCreateProject(rolePtr(identity.RoleProjectOwner)))
	assert.True(t, CanCreateProject(rolePtr(identity.RoleProjectManager)))
	assert.True(t, CanCreateProject(rolePtr(identity.RoleSystemAdmin)))

	assert.False(t, CanCreateProject(rolePtr(identity.RoleTopManagement)))
	assert.False(t, CanCreateProject(rolePtr(identity.RoleProjectOfficer)))
	assert.False(t, CanCreateProject(nil))
}

func TestCanEditProjectOfficerDenied(t *testing.T) {
	assert.False(t, CanEditProject(rolePtr(identity.RoleProjectOfficer)))
	assert.True(t, CanEditProject(rolePtr(identity.RoleProjectManager)))
}

func TestCanCreateAction(t *testing.T) {
	assert.True(t, CanCreateAction(rolePtr(identity.RoleProjectManager)))
	assert.True(t, CanCreateAction(rolePtr(identity.RoleProjectOwner)))
	assert.True(t, CanCreateAction(rolePtr(identity.RoleSystemAdmin)))
	assert.False(t, CanCreateAction(rolePtr(identity.RoleProjectOfficer)))
	assert.False(t, CanCreateAction(nil))
}

func TestCanApprove(t *testing.T) {
	assert.True(t, CanApprove(rolePtr(identity.RoleTopManagement)))
	assert.True(t, CanApprove(rolePtr(identity.RoleProjectOwner)))
	assert.False(t, CanApprove(rolePtr(identity.RoleSystemAdmin)))
	assert.False(t, CanApprove(nil))
}

func TestCanDeleteDocument(t *testing.T) {
	owner := rolePtr(identity.RoleProjectManager)

	// Owner deletes their own upload.
	assert.True(t, CanDeleteDocument(owner, "u-1", "u-1"))
	// Not the uploader, not an admin.
	assert.False(t, CanDeleteDocument(owner, "u-1", "u-2"))
	// system_admin deletes regardless of ownership.
	assert.True(t, CanDeleteDocument(rolePtr(identity.RoleSystemAdmin), "u-1", "u-2"))
	// No role at all still deletes own upload.
	assert.True(t, CanDeleteDocument(nil, "u-1", "u-1"))
	assert.False(t, CanDeleteDocument(nil, "u-1", "u-2"))
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(rolePtr(identity.RoleSystemAdmin)))
	assert.False(t, CanManageUsers(rolePtr(identity.RoleTopManagement)))
	assert.False(t, CanManageUsers(rolePtr(identity.RoleProjectOwner)))
	assert.False(t, CanManageUsers(nil))
}

func TestUnknownRoleMatchesNothing(t *testing.T) {
	unknown := identity.Role("auditor")
	assert.False(t, CanCreateProject(&unknown))
	assert.False(t, CanEditProject(&unknown))
	assert.False(t, CanCreateAction(&unknown))
	assert.False(t, CanApprove(&unknown))
	assert.False(t, CanManageUsers(&unknown))
}

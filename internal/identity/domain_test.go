package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, ok := ParseRole(string(r))
		assert.True(t, ok)
		assert.Equal(t, r, got)
	}
}

func TestParseRoleNormalises(t *testing.T) {
	got, ok := ParseRole("  Project_Owner ")
	assert.True(t, ok)
	assert.Equal(t, RoleProjectOwner, got)
}

func TestParseRoleUnknown(t *testing.T) {
	got, ok := ParseRole("superuser")
	assert.False(t, ok)
	assert.Equal(t, Role(""), got)

	got, ok = ParseRole("")
	assert.False(t, ok)
	assert.Equal(t, Role(""), got)
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "Top Management", RoleTopManagement.Display())
	assert.Equal(t, "Project Owner", RoleProjectOwner.Display())
	assert.Equal(t, "System Admin", RoleSystemAdmin.Display())
	assert.Equal(t, "Guest", Role("").Display())
}

func TestHasRole(t *testing.T) {
	role := RoleProjectManager
	ident := &Identity{ID: "u-1", Role: &role}
	assert.True(t, ident.HasRole(RoleProjectManager))
	assert.False(t, ident.HasRole(RoleSystemAdmin))

	assert.False(t, (&Identity{ID: "u-2"}).HasRole(RoleProjectManager))

	var missing *Identity
	assert.False(t, missing.HasRole(RoleProjectManager))
}

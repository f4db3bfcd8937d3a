package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proven-platform/proven/internal/identity"
)

func rolePtr(r identity.Role) *identity.Role {
	return &r
}

func labels(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Label)
	}
	return out
}

func TestEntriesPerRole(t *testing.T) {
	cases := []struct {
		name string
		role identity.Role
		want []string
	}{
		{
			name: "top management",
			role: identity.RoleTopManagement,
			want: []string{"Dashboard", "Portfolio", "Decisions", "Issues", "Analytics", "Notifications", "Meetings"},
		},
		{
			name: "project owner",
			role: identity.RoleProjectOwner,
			want: []string{"Dashboard", "Portfolio", "Decisions", "Issues", "Actions", "Documents", "Meetings", "Notifications"},
		},
		{
			name: "project manager",
			role: identity.RoleProjectManager,
			want: []string{"Dashboard", "Portfolio", "Issues", "Actions", "Documents", "Meetings", "Notifications"},
		},
		{
			name: "project officer",
			role: identity.RoleProjectOfficer,
			want: []string{"Dashboard", "Portfolio", "Actions", "Documents", "Notifications"},
		},
		{
			name: "system admin",
			role: identity.RoleSystemAdmin,
			want: []string{"Dashboard", "User Management"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Entries(rolePtr(tc.role))
			assert.Equal(t, tc.want, labels(got))
		})
	}
}

func TestEntriesNilRoleFailsClosed(t *testing.T) {
	got := Entries(nil)
	require.Len(t, got, 1)
	assert.Equal(t, "Dashboard", got[0].Label)
}

func TestEntriesUnknownRoleFailsClosed(t *testing.T) {
	unknown := identity.Role("auditor")
	got := Entries(&unknown)
	require.Len(t, got, 1)
	assert.Equal(t, "Dashboard", got[0].Label)
}

func TestLandingPath(t *testing.T) {
	assert.Equal(t, "/dashboard/top-management", LandingPath(rolePtr(identity.RoleTopManagement)))
	assert.Equal(t, "/dashboard/project-owner", LandingPath(rolePtr(identity.RoleProjectOwner)))
	assert.Equal(t, "/dashboard/project-manager", LandingPath(rolePtr(identity.RoleProjectManager)))
	assert.Equal(t, "/dashboard/project-officer", LandingPath(rolePtr(identity.RoleProjectOfficer)))
	assert.Equal(t, "/dashboard/admin", LandingPath(rolePtr(identity.RoleSystemAdmin)))
}

func TestLandingPathFallback(t *testing.T) {
	assert.Equal(t, "/dashboard", LandingPath(nil))

	unknown := identity.Role("auditor")
	assert.Equal(t, "/dashboard", LandingPath(&unknown))
}

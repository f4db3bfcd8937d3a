// Package nav maps governance roles onto the navigation entries and
// landing pages the frontend renders. The per-role tables are
// configuration data: changing what a role sees is an edit here, not a
// logic change elsewhere.
package nav

import "github.com/proven-platform/proven/internal/identity"

// Entry is a single sidebar item.
type Entry struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
}

var dashboard = Entry{Label: "Dashboard", Icon: "layout-dashboard", Path: "/dashboard"}

// roleEntries lists the entries each role sees after Dashboard, in
// render order. system_admin deliberately gets only User Management and
// none of the operational entries; see DESIGN.md before changing that.
var roleEntries = map[identity.Role][]Entry{
	identity.RoleTopManagement: {
		{Label: "Portfolio", Icon: "folder-kanban", Path: "/portfolio"},
		{Label: "Decisions", Icon: "check-circle", Path: "/decisions"},
		{Label: "Issues", Icon: "alert-circle", Path: "/issues"},
		{Label: "Analytics", Icon: "bar-chart-3", Path: "/analytics"},
		{Label: "Notifications", Icon: "bell", Path: "/notifications"},
		{Label: "Meetings", Icon: "users", Path: "/meetings"},
	},
	identity.RoleProjectOwner: {
		{Label: "Portfolio", Icon: "folder-kanban", Path: "/portfolio"},
		{Label: "Decisions", Icon: "check-circle", Path: "/decisions"},
		{Label: "Issues", Icon: "alert-circle", Path: "/issues"},
		{Label: "Actions", Icon: "list-todo", Path: "/actions"},
		{Label: "Documents", Icon: "file-text", Path: "/documents"},
		{Label: "Meetings", Icon: "users", Path: "/meetings"},
		{Label: "Notifications", Icon: "bell", Path: "/notifications"},
	},
	identity.RoleProjectManager: {
		{Label: "Portfolio", Icon: "folder-kanban", Path: "/portfolio"},
		{Label: "Issues", Icon: "alert-circle", Path: "/issues"},
		{Label: "Actions", Icon: "list-todo", Path: "/actions"},
		{Label: "Documents", Icon: "file-text", Path: "/documents"},
		{Label: "Meetings", Icon: "users", Path: "/meetings"},
		{Label: "Notifications", Icon: "bell", Path: "/notifications"},
	},
	identity.RoleProjectOfficer: {
		{Label: "Portfolio", Icon: "folder-kanban", Path: "/portfolio"},
		{Label: "Actions", Icon: "list-todo", Path: "/actions"},
		{Label: "Documents", Icon: "file-text", Path: "/documents"},
		{Label: "Notifications", Icon: "bell", Path: "/notifications"},
	},
	identity.RoleSystemAdmin: {
		{Label: "User Management", Icon: "users", Path: "/user-management"},
	},
}

// Entries returns the ordered navigation list for a role. A nil or
// unknown role yields the base list only: unrecognised roles fail
// closed, never open.
func Entries(role *identity.Role) []Entry {
	entries := []Entry{dashboard}
	if role == nil {
		return entries
	}
	return append(entries, roleEntries[*role]...)
}

// landingPaths routes the dashboard root to a role-specific page.
var landingPaths = map[identity.Role]string{
	identity.RoleTopManagement:  "/dashboard/top-management",
	identity.RoleProjectOwner:   "/dashboard/project-owner",
	identity.RoleProjectManager: "/dashboard/project-manager",
	identity.RoleProjectOfficer: "/dashboard/project-officer",
	identity.RoleSystemAdmin:    "/dashboard/admin",
}

// LandingPath returns the role-specific dashboard path. Unmapped or nil
// roles fall back to the generic dashboard.
func LandingPath(role *identity.Role) string {
	if role == nil {
		return "/dashboard"
	}
	if path, ok := landingPaths[*role]; ok {
		return path
	}
	return "/dashboard"
}

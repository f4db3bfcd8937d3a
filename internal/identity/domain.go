package identity

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is the closed set of governance roles. The zero value means
// "no role": a wire value outside the five known strings parses to it
// rather than failing, so an unexpected row never crashes callers.
type Role string

const (
	RoleTopManagement  Role = "top_management"
	RoleProjectOwner   Role = "project_owner"
	RoleProjectManager Role = "project_manager"
	RoleProjectOfficer Role = "project_officer"
	RoleSystemAdmin    Role = "system_admin"
)

// Roles lists every defined role in a stable order.
func Roles() []Role {
	return []Role{
		RoleTopManagement,
		RoleProjectOwner,
		RoleProjectManager,
		RoleProjectOfficer,
		RoleSystemAdmin,
	}
}

// ParseRole maps a wire string onto the closed enumeration. Unknown
// values yield (zero, false); callers must treat that as a null role.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.TrimSpace(strings.ToLower(raw))) {
	case RoleTopManagement:
		return RoleTopManagement, true
	case RoleProjectOwner:
		return RoleProjectOwner, true
	case RoleProjectManager:
		return RoleProjectManager, true
	case RoleProjectOfficer:
		return RoleProjectOfficer, true
	case RoleSystemAdmin:
		return RoleSystemAdmin, true
	default:
		return "", false
	}
}

var titleCaser = cases.Title(language.English)

// Display returns the human form of the role, e.g. "Project Owner".
func (r Role) Display() string {
	if r == "" {
		return "Guest"
	}
	return titleCaser.String(strings.ReplaceAll(string(r), "_", " "))
}

// Identity is the resolved pairing of a principal with its profile and
// role. Role is nil when the role row is missing or its lookup failed;
// the rest of the identity remains usable.
type Identity struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Phone      string `json:"phone,omitempty"`
	Department string `json:"department,omitempty"`
	Role       *Role  `json:"role"`
}

// HasRole reports whether the identity carries the given role.
func (i *Identity) HasRole(role Role) bool {
	return i != nil && i.Role != nil && *i.Role == role
}

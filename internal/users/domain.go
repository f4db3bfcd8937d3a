package users

import (
	"time"

	"github.com/proven-platform/proven/internal/identity"
)

// ManagedUser is the user-management view of an account: credentials
// status joined with profile and role assignment.
type ManagedUser struct {
	ID         string         `json:"id"`
	Email      string         `json:"email"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone,omitempty"`
	Department string         `json:"department,omitempty"`
	Role       *identity.Role `json:"role"`
	IsActive   bool           `json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
}

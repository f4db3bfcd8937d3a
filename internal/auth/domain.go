package auth

import "time"

// User represents a credential record held by the bundled local
// authentication provider. Nothing outside this package reads it; the
// rest of the system only ever sees the opaque principal ID.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

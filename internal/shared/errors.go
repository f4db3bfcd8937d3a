package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials indicates login failure. Handlers surface a
	// generic message for it and never the underlying provider error.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrDuplicateEmail indicates an email already provisioned.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrForbidden indicates the actor's role does not permit the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrCSRFTokenMissing occurs when CSRF token missing.
	ErrCSRFTokenMissing = errors.New("csrf token missing")
	// ErrCSRFTokenMismatch occurs when CSRF tokens do not match.
	ErrCSRFTokenMismatch = errors.New("csrf token mismatch")
)

// UserSafeMessage converts internal errors into text safe to show users.
func UserSafeMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return "Sign-in failed. Check your email and password."
	case errors.Is(err, ErrDuplicateEmail):
		return "A user with this email already exists."
	case errors.Is(err, ErrNotFound):
		return "The requested record was not found."
	case errors.Is(err, ErrForbidden):
		return "You do not have permission to perform this action."
	default:
		return "Something went wrong. Please try again."
	}
}

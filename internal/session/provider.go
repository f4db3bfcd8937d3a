package session

import "context"

// AuthEvent names an authentication state transition.
type AuthEvent string

const (
	// EventSignedIn fires after a principal authenticates.
	EventSignedIn AuthEvent = "SIGNED_IN"
	// EventSignedOut fires after a principal signs out.
	EventSignedOut AuthEvent = "SIGNED_OUT"
	// EventTokenRefreshed fires when the provider renews a session token.
	EventTokenRefreshed AuthEvent = "TOKEN_REFRESHED"
)

// Provider is the external authentication collaborator. Credential
// storage, hashing and token lifecycle are entirely its concern; this
// package only calls it and reacts to its events.
//
// Implementations are expected to invoke subscribed callbacks while
// holding their internal state lock, so callbacks must not call back
// into the provider or perform blocking work.
type Provider interface {
	SignUp(ctx context.Context, email, password, name string) (principalID string, err error)
	SignIn(ctx context.Context, email, password string) (principalID string, err error)
	SignOut(ctx context.Context, principalID string) error
	Subscribe(fn func(event AuthEvent, principalID string))
}

// Registrar creates the application-side rows that accompany a new
// principal. Self-signup writes them right after the provider account
// exists; admin provisioning does the same through the users service.
type Registrar interface {
	CreateProfile(ctx context.Context, principalID, name, email, phone, department string) error
	AssignRole(ctx context.Context, principalID, role string) error
}

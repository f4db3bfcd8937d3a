package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
)

// LocalProvider is the bundled implementation of session.Provider: a
// users table plus bcrypt. It mimics a hosted identity service closely
// enough that the rest of the system cannot tell the difference,
// including the awkward part: state-change subscribers are invoked
// while the provider's internal lock is held, so a subscriber that
// calls back into the provider, or blocks, will deadlock. The session
// store defers its work for exactly this reason.
type LocalProvider struct {
	repo Repository

	mu          sync.Mutex
	subscribers []func(event session.AuthEvent, principalID string)
}

// NewLocalProvider constructs a LocalProvider.
func NewLocalProvider(repo Repository) *LocalProvider {
	return &LocalProvider{repo: repo}
}

// Subscribe registers an auth-state-change callback.
func (p *LocalProvider) Subscribe(fn func(event session.AuthEvent, principalID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, fn)
}

// SignIn validates email/password credentials. Every failure collapses
// to ErrInvalidCredentials so callers cannot distinguish a missing
// account from a wrong password.
func (p *LocalProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := p.repo.FindByEmail(ctx, email)
	if err != nil {
		return "", shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", shared.ErrInvalidCredentials
	}
	p.notify(session.EventSignedIn, user.ID)
	return user.ID, nil
}

// SignUp registers a new principal and signs it in.
func (p *LocalProvider) SignUp(ctx context.Context, email, password, name string) (string, error) {
	id, err := p.createUser(ctx, email, password)
	if err != nil {
		return "", err
	}
	p.notify(session.EventSignedIn, id)
	return id, nil
}

// AdminCreateUser registers a principal without signing it in. Used by
// the provisioning flow, where an administrator creates the account.
func (p *LocalProvider) AdminCreateUser(ctx context.Context, email, password string) (string, error) {
	return p.createUser(ctx, email, password)
}

// SignOut invalidates the principal's provider-side state.
func (p *LocalProvider) SignOut(ctx context.Context, principalID string) error {
	p.notify(session.EventSignedOut, principalID)
	return nil
}

func (p *LocalProvider) createUser(ctx context.Context, email, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := p.repo.CreateUser(ctx, id, email, string(hash)); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", shared.ErrDuplicateEmail
		}
		return "", err
	}
	return id, nil
}

// notify invokes subscribers under the provider lock. See the type
// comment for the reentrancy constraint this imposes on callbacks.
func (p *LocalProvider) notify(event session.AuthEvent, principalID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, fn := range p.subscribers {
		fn(event, principalID)
	}
}

var _ session.Provider = (*LocalProvider)(nil)

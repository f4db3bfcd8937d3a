package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/shared"
)

const resolveTimeout = 10 * time.Second

// Store is the single source of truth for "who is signed in right now".
// It caches resolved identities per principal and owns their lifecycle:
// the only writer is the consumer goroutine started by Run; everything
// else reads through Snapshot.
type Store struct {
	provider  Provider
	registrar Registrar
	resolver  *identity.Resolver
	logger    *slog.Logger

	mu         sync.RWMutex
	identities map[string]*identity.Identity
	pending    map[string]struct{}

	queue chan string
}

// NewStore constructs a Store and subscribes it to provider events.
func NewStore(provider Provider, registrar Registrar, resolver *identity.Resolver, logger *slog.Logger) *Store {
	s := &Store{
		provider:   provider,
		registrar:  registrar,
		resolver:   resolver,
		logger:     logger,
		identities: make(map[string]*identity.Identity),
		pending:    make(map[string]struct{}),
		queue:      make(chan string, 64),
	}
	provider.Subscribe(s.onAuthStateChange)
	return s
}

// onAuthStateChange runs inside the provider's notification path, which
// holds the provider's internal lock. Resolving here would call back
// into infrastructure while that lock is held and can deadlock against
// a concurrent provider call, so the handler only records the
// transition and defers the actual lookup to the Run goroutine.
func (s *Store) onAuthStateChange(event AuthEvent, principalID string) {
	switch event {
	case EventSignedIn, EventTokenRefreshed:
		s.enqueue(principalID)
	case EventSignedOut:
		s.mu.Lock()
		delete(s.identities, principalID)
		delete(s.pending, principalID)
		s.mu.Unlock()
	}
}

func (s *Store) enqueue(principalID string) {
	if principalID == "" {
		return
	}
	s.mu.Lock()
	s.pending[principalID] = struct{}{}
	s.mu.Unlock()
	select {
	case s.queue <- principalID:
	default:
		// Never block inside the provider callback. A full queue means
		// the identity stays in loading state until re-enqueued.
		s.mu.Lock()
		delete(s.pending, principalID)
		s.mu.Unlock()
		if s.logger != nil {
			s.logger.Warn("resolution queue full", slog.String("principal", principalID))
		}
	}
}

// Run consumes the resolution queue until ctx is cancelled. Exactly one
// Run goroutine may be active per Store.
func (s *Store) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case principalID := <-s.queue:
			s.resolveOne(ctx, principalID)
		}
	}
}

func (s *Store) resolveOne(ctx context.Context, principalID string) {
	rctx, cancel := context.WithTimeout(ctx, resolveTimeout)
	ident, err := s.resolver.Resolve(rctx, principalID)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.pending[principalID]; !ok {
		// A sign-out cleared this principal after the lookup was
		// queued. Committing now would resurrect an identity for a
		// signed-out principal, so the result is dropped.
		return
	}
	delete(s.pending, principalID)
	if err != nil {
		// Degrade to an unresolved (role-less) state rather than block
		// the signed-in principal.
		if s.logger != nil {
			s.logger.Warn("identity resolution failed", slog.String("principal", principalID), slog.Any("error", err))
		}
		delete(s.identities, principalID)
		return
	}
	if ident == nil {
		// No profile row: treated as no session.
		delete(s.identities, principalID)
		return
	}
	s.identities[principalID] = ident
}

// Refresh queues a principal for re-resolution, typically after its
// profile or role rows changed outside the sign-in path.
func (s *Store) Refresh(principalID string) {
	s.enqueue(principalID)
}

// Snapshot returns the resolved identity for a principal along with a
// loading flag. (nil, true) means resolution is still in flight;
// (nil, false) means the principal resolved to no identity.
func (s *Store) Snapshot(principalID string) (*identity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ident := s.identities[principalID]
	_, loading := s.pending[principalID]
	return ident, loading
}

// Login authenticates against the provider and attaches the principal
// to the request session. Resolution of profile and role happens
// asynchronously via the provider's state-change event.
func (s *Store) Login(ctx context.Context, sess *shared.Session, email, password string) error {
	principalID, err := s.provider.SignIn(ctx, email, password)
	if err != nil {
		return shared.ErrInvalidCredentials
	}
	if sess != nil {
		sess.SetPrincipal(principalID)
	}
	return nil
}

// Signup registers a new principal with the provider, then writes the
// profile and role rows the application keys off it.
func (s *Store) Signup(ctx context.Context, sess *shared.Session, email, password, name, role string) error {
	principalID, err := s.provider.SignUp(ctx, email, password, name)
	if err != nil {
		return err
	}
	if err := s.registrar.CreateProfile(ctx, principalID, name, email, "", ""); err != nil {
		return err
	}
	if err := s.registrar.AssignRole(ctx, principalID, role); err != nil {
		return err
	}
	if sess != nil {
		sess.SetPrincipal(principalID)
	}
	// The profile rows were written after the sign-in event fired, so
	// re-enqueue to pick them up.
	s.enqueue(principalID)
	return nil
}

// Logout signs a principal out. Fire-and-forget: a failing remote
// sign-out is logged but local session state is cleared regardless, and
// calling it on an already signed-out session is a no-op.
func (s *Store) Logout(ctx context.Context, sess *shared.Session) {
	if sess == nil || !sess.Authenticated() {
		return
	}
	principalID := sess.Principal()
	if err := s.provider.SignOut(ctx, principalID); err != nil {
		if s.logger != nil {
			s.logger.Warn("provider sign-out failed", slog.Any("error", err))
		}
		// Local cleanup still happens below.
		s.mu.Lock()
		delete(s.identities, principalID)
		delete(s.pending, principalID)
		s.mu.Unlock()
	}
	sess.ClearPrincipal()
}

package session_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
	_ "github.com/proven-platform/proven/testing"
)

// memDirectory backs both the resolver lookups and the registrar
// writes, the way profiles and user_roles share a database.
type memDirectory struct {
	mu       sync.Mutex
	profiles map[string]*identity.Profile
	roles    map[string]string
}

func newMemDirectory() *memDirectory {
	return &memDirectory{
		profiles: make(map[string]*identity.Profile),
		roles:    make(map[string]string),
	}
}

func (d *memDirectory) FindProfile(ctx context.Context, principalID string) (*identity.Profile, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.profiles[principalID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (d *memDirectory) FindRole(ctx context.Context, principalID string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	role, ok := d.roles[principalID]
	if !ok {
		return "", shared.ErrNotFound
	}
	return role, nil
}

func (d *memDirectory) CreateProfile(ctx context.Context, principalID, name, email, phone, department string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.profiles[principalID] = &identity.Profile{UserID: principalID, FullName: name, Email: email, Phone: phone, Department: department}
	return nil
}

func (d *memDirectory) AssignRole(ctx context.Context, principalID, role string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[principalID] = role
	return nil
}

// fakeProvider invokes subscribers while holding its own lock, matching
// the contract documented on session.Provider.
type fakeProvider struct {
	mu         sync.Mutex
	subs       []func(session.AuthEvent, string)
	creds      map[string]string // email -> principal ID
	nextID     int
	signOutErr error
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{creds: make(map[string]string)}
}

func (p *fakeProvider) Subscribe(fn func(event session.AuthEvent, principalID string)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subs = append(p.subs, fn)
}

func (p *fakeProvider) notify(event session.AuthEvent, principalID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, fn := range p.subs {
		fn(event, principalID)
	}
}

func (p *fakeProvider) SignUp(ctx context.Context, email, password, name string) (string, error) {
	p.mu.Lock()
	p.nextID++
	id := fmt.Sprintf("principal-%d", p.nextID)
	p.creds[email] = id
	p.mu.Unlock()
	p.notify(session.EventSignedIn, id)
	return id, nil
}

func (p *fakeProvider) SignIn(ctx context.Context, email, password string) (string, error) {
	p.mu.Lock()
	id, ok := p.creds[email]
	p.mu.Unlock()
	if !ok || password != "correct-horse" {
		return "", errors.New("bad credentials")
	}
	p.notify(session.EventSignedIn, id)
	return id, nil
}

func (p *fakeProvider) SignOut(ctx context.Context, principalID string) error {
	if p.signOutErr != nil {
		return p.signOutErr
	}
	p.notify(session.EventSignedOut, principalID)
	return nil
}

func newTestSession(t *testing.T) (*shared.SessionManager, *shared.Session) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := manager.Load(context.Background(), req)
	require.NoError(t, err)
	return manager, sess
}

func newStoreFixture(t *testing.T) (*session.Store, *fakeProvider, *memDirectory, context.CancelFunc) {
	t.Helper()
	dir := newMemDirectory()
	provider := newFakeProvider()
	resolver := identity.NewResolver(dir, nil)
	store := session.NewStore(provider, dir, resolver, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go store.Run(ctx)
	t.Cleanup(cancel)
	return store, provider, dir, cancel
}

func TestLoginResolvesIdentityAsynchronously(t *testing.T) {
	store, provider, dir, _ := newStoreFixture(t)
	_, sess := newTestSession(t)

	id, err := provider.SignUp(context.Background(), "dana@proven.local", "correct-horse", "Dana Cole")
	require.NoError(t, err)
	require.NoError(t, dir.CreateProfile(context.Background(), id, "Dana Cole", "dana@proven.local", "", "PMO"))
	require.NoError(t, dir.AssignRole(context.Background(), id, "project_manager"))

	require.NoError(t, store.Login(context.Background(), sess, "dana@proven.local", "correct-horse"))
	assert.True(t, sess.Authenticated())
	assert.Equal(t, id, sess.Principal())

	require.Eventually(t, func() bool {
		ident, loading := store.Snapshot(id)
		return !loading && ident != nil
	}, 2*time.Second, 10*time.Millisecond)

	ident, _ := store.Snapshot(id)
	require.NotNil(t, ident.Role)
	assert.Equal(t, identity.RoleProjectManager, *ident.Role)
}

func TestLoginDoesNotBlockInsideProviderCallback(t *testing.T) {
	// No Run goroutine consuming the queue: the state-change callback
	// must still return while the provider holds its lock.
	dir := newMemDirectory()
	provider := newFakeProvider()
	resolver := identity.NewResolver(dir, nil)
	store := session.NewStore(provider, dir, resolver, nil)
	_, sess := newTestSession(t)

	id, err := provider.SignUp(context.Background(), "dana@proven.local", "correct-horse", "Dana Cole")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		// Well past the queue capacity; every call must return.
		for i := 0; i < 100; i++ {
			_ = store.Login(context.Background(), sess, "dana@proven.local", "correct-horse")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("login blocked inside provider callback")
	}

	// Still unresolved: nothing consumes the queue.
	ident, _ := store.Snapshot(id)
	assert.Nil(t, ident)
}

func TestLoginInvalidCredentials(t *testing.T) {
	store, provider, _, _ := newStoreFixture(t)
	_, sess := newTestSession(t)

	_, err := provider.SignUp(context.Background(), "dana@proven.local", "correct-horse", "Dana Cole")
	require.NoError(t, err)

	err = store.Login(context.Background(), sess, "dana@proven.local", "wrong")
	require.ErrorIs(t, err, shared.ErrInvalidCredentials)
	assert.False(t, sess.Authenticated())
}

func TestLogoutClearsIdentityAndIsIdempotent(t *testing.T) {
	store, provider, dir, _ := newStoreFixture(t)
	_, sess := newTestSession(t)

	id, err := provider.SignUp(context.Background(), "dana@proven.local", "correct-horse", "Dana Cole")
	require.NoError(t, err)
	require.NoError(t, dir.CreateProfile(context.Background(), id, "Dana Cole", "dana@proven.local", "", ""))
	require.NoError(t, store.Login(context.Background(), sess, "dana@proven.local", "correct-horse"))

	require.Eventually(t, func() bool {
		ident, loading := store.Snapshot(id)
		return !loading && ident != nil
	}, 2*time.Second, 10*time.Millisecond)

	store.Logout(context.Background(), sess)
	assert.False(t, sess.Authenticated())

	ident, loading := store.Snapshot(id)
	assert.Nil(t, ident)
	assert.False(t, loading)

	// Second call is a no-op.
	store.Logout(context.Background(), sess)
	assert.False(t, sess.Authenticated())
}

func TestLogoutClearsLocallyWhenProviderFails(t *testing.T) {
	store, provider, dir, _ := newStoreFixture(t)
	_, sess := newTestSession(t)

	id, err := provider.SignUp(context.Background(), "dana@proven.local", "correct-horse", "Dana Cole")
	require.NoError(t, err)
	require.NoError(t, dir.CreateProfile(context.Background(), id, "Dana Cole", "dana@proven.local", "", ""))
	require.NoError(t, store.Login(context.Background(), sess, "dana@proven.local", "correct-horse"))

	require.Eventually(t, func() bool {
		ident, loading := store.Snapshot(id)
		return !loading && ident != nil
	}, 2*time.Second, 10*time.Millisecond)

	provider.signOutErr = errors.New("provider unavailable")
	store.Logout(context.Background(), sess)

	assert.False(t, sess.Authenticated())
	ident, loading := store.Snapshot(id)
	assert.Nil(t, ident)
	assert.False(t, loading)
}

func TestSignupWritesProfileAndRole(t *testing.T) {
	store, _, _, _ := newStoreFixture(t)
	_, sess := newTestSession(t)

	err := store.Signup(context.Background(), sess, "new@proven.local", "correct-horse", "New User", "project_officer")
	require.NoError(t, err)
	require.True(t, sess.Authenticated())

	id := sess.Principal()
	require.Eventually(t, func() bool {
		ident, loading := store.Snapshot(id)
		return !loading && ident != nil && ident.Role != nil
	}, 2*time.Second, 10*time.Millisecond)

	ident, _ := store.Snapshot(id)
	assert.Equal(t, "New User", ident.Name)
	assert.Equal(t, identity.RoleProjectOfficer, *ident.Role)
}

func TestSignOutDuringQueuedResolutionLeavesNoIdentity(t *testing.T) {
	// No Run goroutine yet: the resolution stays queued while the
	// sign-out lands, then Run processes the stale queue entry.
	dir := newMemDirectory()
	provider := newFakeProvider()
	resolver := identity.NewResolver(dir, nil)
	store := session.NewStore(provider, dir, resolver, nil)
	_, sess := newTestSession(t)

	id, err := provider.SignUp(context.Background(), "dana@proven.local", "correct-horse", "Dana Cole")
	require.NoError(t, err)
	require.NoError(t, dir.CreateProfile(context.Background(), id, "Dana Cole", "dana@proven.local", "", "PMO"))
	require.NoError(t, dir.AssignRole(context.Background(), id, "project_manager"))

	require.NoError(t, store.Login(context.Background(), sess, "dana@proven.local", "correct-horse"))
	store.Logout(context.Background(), sess)

	ctx, cancel := context.WithCancel(context.Background())
	go store.Run(ctx)
	t.Cleanup(cancel)

	assert.Never(t, func() bool {
		ident, _ := store.Snapshot(id)
		return ident != nil
	}, 500*time.Millisecond, 10*time.Millisecond)

	ident, loading := store.Snapshot(id)
	assert.Nil(t, ident)
	assert.False(t, loading)
}

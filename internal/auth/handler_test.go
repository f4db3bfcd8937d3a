package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proven-platform/proven/internal/auth"
	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/observability"
	"github.com/proven-platform/proven/internal/session"
	"github.com/proven-platform/proven/internal/shared"
)

type memDirectory struct {
	mu       sync.Mutex
	profiles map[string]*identity.Profile
	roles    map[string]string
}

func newMemDirectory() *memDirectory {
	return &memDirectory{profiles: make(map[string]*identity.Profile), roles: make(map[string]string)}
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
	d.profiles[principalID] = &identity.Profile{UserID: principalID, FullName: name, Email: email}
	return nil
}

func (d *memDirectory) AssignRole(ctx context.Context, principalID, role string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.roles[principalID] = role
	return nil
}

type handlerFixture struct {
	router   chi.Router
	manager  *shared.SessionManager
	store    *session.Store
	repo     *stubRepo
	dir      *memDirectory
	provider *auth.LocalProvider
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	manager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)

	repo := newStubRepo()
	provider := auth.NewLocalProvider(repo)
	dir := newMemDirectory()
	resolver := identity.NewResolver(dir, nil)
	store := session.NewStore(provider, dir, resolver, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go store.Run(ctx)
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	handler := auth.NewHandler(logger, store, repo, manager, observability.NewMetrics())

	router := chi.NewRouter()
	router.Route("/auth", handler.MountRoutes)

	return &handlerFixture{router: router, manager: manager, store: store, repo: repo, dir: dir, provider: provider}
}

func (fx *handlerFixture) do(t *testing.T, method, path, body string, sess *shared.Session) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	res := httptest.NewRecorder()
	fx.router.ServeHTTP(res, req)
	return res
}

func (fx *handlerFixture) session(t *testing.T) *shared.Session {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := fx.manager.Load(context.Background(), req)
	require.NoError(t, err)
	return sess
}

func TestLoginSuccess(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.repo.addUser(t, "dana@proven.local", "correct-horse", true)
	sess := fx.session(t)

	res := fx.do(t, http.MethodPost, "/auth/login", `{"email":"dana@proven.local","password":"correct-horse"}`, sess)

	require.Equal(t, http.StatusOK, res.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "/dashboard", body["redirect"])
	assert.True(t, sess.Authenticated())
}

func TestLoginInvalidCredentials(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.repo.addUser(t, "dana@proven.local", "correct-horse", true)
	sess := fx.session(t)

	res := fx.do(t, http.MethodPost, "/auth/login", `{"email":"dana@proven.local","password":"wrong-password"}`, sess)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.False(t, sess.Authenticated())
}

func TestLoginValidation(t *testing.T) {
	fx := newHandlerFixture(t)
	sess := fx.session(t)

	res := fx.do(t, http.MethodPost, "/auth/login", `{"email":"not-an-email","password":"short"}`, sess)
	assert.Equal(t, http.StatusBadRequest, res.Code)

	res = fx.do(t, http.MethodPost, "/auth/login", `{not json`, sess)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSignupCreatesAccountAndProfile(t *testing.T) {
	fx := newHandlerFixture(t)
	sess := fx.session(t)

	res := fx.do(t, http.MethodPost, "/auth/signup", `{"email":"new@proven.local","password":"correct-horse","name":"New User","role":"project_officer"}`, sess)

	require.Equal(t, http.StatusCreated, res.Code)
	require.True(t, sess.Authenticated())

	id := sess.Principal()
	require.Eventually(t, func() bool {
		ident, loading := fx.store.Snapshot(id)
		return !loading && ident != nil && ident.Role != nil
	}, 2*time.Second, 10*time.Millisecond)

	ident, _ := fx.store.Snapshot(id)
	assert.Equal(t, identity.RoleProjectOfficer, *ident.Role)
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	fx := newHandlerFixture(t)
	sess := fx.session(t)

	res := fx.do(t, http.MethodPost, "/auth/signup", `{"email":"new@proven.local","password":"correct-horse","name":"New User","role":"superuser"}`, sess)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	fx := newHandlerFixture(t)
	sess := fx.session(t)

	body := `{"email":"new@proven.local","password":"correct-horse","name":"New User","role":"project_officer"}`
	res := fx.do(t, http.MethodPost, "/auth/signup", body, sess)
	require.Equal(t, http.StatusCreated, res.Code)

	res = fx.do(t, http.MethodPost, "/auth/signup", body, fx.session(t))
	assert.Equal(t, http.StatusConflict, res.Code)
}

func TestLogout(t *testing.T) {
	fx := newHandlerFixture(t)
	fx.repo.addUser(t, "dana@proven.local", "correct-horse", true)
	sess := fx.session(t)

	res := fx.do(t, http.MethodPost, "/auth/login", `{"email":"dana@proven.local","password":"correct-horse"}`, sess)
	require.Equal(t, http.StatusOK, res.Code)

	res = fx.do(t, http.MethodPost, "/auth/logout", "", sess)
	require.Equal(t, http.StatusOK, res.Code)
	assert.False(t, sess.Authenticated())

	// Logging out again is harmless.
	res = fx.do(t, http.MethodPost, "/auth/logout", "", sess)
	assert.Equal(t, http.StatusOK, res.Code)
}

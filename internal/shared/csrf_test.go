package shared_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proven-platform/proven/internal/shared"
)

func newSessionForCSRF(t *testing.T) *shared.Session {
	t.Helper()
	manager := newManager(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	sess, err := manager.Load(context.Background(), req)
	require.NoError(t, err)
	return sess
}

func TestEnsureTokenIsStable(t *testing.T) {
	m := shared.NewCSRFManager("csrfsecret")
	sess := newSessionForCSRF(t)

	token, err := m.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	again, err := m.EnsureToken(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, token, again)
}

func TestVerifyToken(t *testing.T) {
	m := shared.NewCSRFManager("csrfsecret")
	sess := newSessionForCSRF(t)

	token, err := m.EnsureToken(context.Background(), sess)
	require.NoError(t, err)

	assert.NoError(t, m.VerifyToken(context.Background(), sess, token))
	assert.ErrorIs(t, m.VerifyToken(context.Background(), sess, "forged"), shared.ErrCSRFTokenMismatch)
	assert.ErrorIs(t, m.VerifyToken(context.Background(), sess, ""), shared.ErrCSRFTokenMissing)
	assert.ErrorIs(t, m.VerifyToken(context.Background(), nil, token), shared.ErrCSRFTokenMissing)
}

func TestVerifyTokenWithoutIssuedToken(t *testing.T) {
	m := shared.NewCSRFManager("csrfsecret")
	sess := newSessionForCSRF(t)

	assert.ErrorIs(t, m.VerifyToken(context.Background(), sess, "anything"), shared.ErrCSRFTokenMissing)
}

package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proven-platform/proven/internal/shared"
)

type stubRepo struct {
	profile    *Profile
	profileErr error
	role       string
	roleErr    error
}

func (s *stubRepo) FindProfile(ctx context.Context, principalID string) (*Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profile, nil
}

func (s *stubRepo) FindRole(ctx context.Context, principalID string) (string, error) {
	if s.roleErr != nil {
		return "", s.roleErr
	}
	return s.role, nil
}

func TestResolveFullIdentity(t *testing.T) {
	repo := &stubRepo{
		profile: &Profile{UserID: "u-1", FullName: "Dana Cole", Email: "dana@proven.local", Department: "PMO"},
		role:    "project_manager",
	}
	r := NewResolver(repo, nil)

	ident, err := r.Resolve(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Equal(t, "u-1", ident.ID)
	assert.Equal(t, "Dana Cole", ident.Name)
	require.NotNil(t, ident.Role)
	assert.Equal(t, RoleProjectManager, *ident.Role)
}

func TestResolveProfileMissingMeansNoIdentity(t *testing.T) {
	repo := &stubRepo{profileErr: shared.ErrNotFound, role: "project_owner"}
	r := NewResolver(repo, nil)

	ident, err := r.Resolve(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Nil(t, ident)
}

func TestResolveProfileFailurePropagates(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &stubRepo{profileErr: boom}
	r := NewResolver(repo, nil)

	ident, err := r.Resolve(context.Background(), "u-1")
	require.Error(t, err)
	assert.Nil(t, ident)
}

func TestResolveRoleMissingIsTolerated(t *testing.T) {
	repo := &stubRepo{
		profile: &Profile{UserID: "u-1", FullName: "Dana Cole", Email: "dana@proven.local"},
		roleErr: shared.ErrNotFound,
	}
	r := NewResolver(repo, nil)

	ident, err := r.Resolve(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Nil(t, ident.Role)
}

func TestResolveRoleFailureIsTolerated(t *testing.T) {
	repo := &stubRepo{
		profile: &Profile{UserID: "u-1", FullName: "Dana Cole", Email: "dana@proven.local"},
		roleErr: errors.New("timeout"),
	}
	r := NewResolver(repo, nil)

	ident, err := r.Resolve(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Nil(t, ident.Role)
}

func TestResolveUnknownRoleStringIsTolerated(t *testing.T) {
	repo := &stubRepo{
		profile: &Profile{UserID: "u-1", FullName: "Dana Cole", Email: "dana@proven.local"},
		role:    "superuser",
	}
	r := NewResolver(repo, nil)

	ident, err := r.Resolve(context.Background(), "u-1")
	require.NoError(t, err)
	require.NotNil(t, ident)
	assert.Nil(t, ident.Role)
}

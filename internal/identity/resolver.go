package identity

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/proven-platform/proven/internal/shared"
)

// Resolver turns a bare principal ID into a usable Identity.
type Resolver struct {
	repo   Repository
	logger *slog.Logger
}

// NewResolver constructs a Resolver.
func NewResolver(repo Repository, logger *slog.Logger) *Resolver {
	return &Resolver{repo: repo, logger: logger}
}

// Resolve fetches the profile and role rows for a principal. The two
// lookups run concurrently and degrade differently:
//   - profile missing or failing means no identity at all (nil, nil for
//     a clean miss, nil, err for infrastructure failure);
//   - role missing or failing is tolerated: the identity comes back
//     with Role == nil and a warning is logged.
func (r *Resolver) Resolve(ctx context.Context, principalID string) (*Identity, error) {
	var (
		profile *Profile
		rawRole string
		roleErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := r.repo.FindProfile(gctx, principalID)
		profile = p
		return err
	})
	g.Go(func() error {
		// Errors on this leg never fail the group.
		rawRole, roleErr = r.repo.FindRole(gctx, principalID)
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	ident := &Identity{
		ID:         profile.UserID,
		Email:      profile.Email,
		Name:       profile.FullName,
		Phone:      profile.Phone,
		Department: profile.Department,
	}

	if roleErr != nil {
		if !errors.Is(roleErr, shared.ErrNotFound) && r.logger != nil {
			r.logger.Warn("role lookup failed", slog.String("principal", principalID), slog.Any("error", roleErr))
		}
		return ident, nil
	}

	role, ok := ParseRole(rawRole)
	if !ok {
		if r.logger != nil {
			r.logger.Warn("unknown role value", slog.String("principal", principalID), slog.String("role", rawRole))
		}
		return ident, nil
	}
	ident.Role = &role
	return ident, nil
}

package identity

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/proven-platform/proven/internal/shared"
)

// Profile mirrors a row of the profiles table.
type Profile struct {
	UserID     string
	FullName   string
	Email      string
	Phone      string
	Department string
}

// Repository defines the two independent lookups the resolver needs.
// Profiles and role assignments live in separate tables with no
// enforced join, so each can fail on its own.
type Repository interface {
	FindProfile(ctx context.Context, principalID string) (*Profile, error)
	FindRole(ctx context.Context, principalID string) (string, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindProfile fetches the profile row for a principal.
func (r *PGRepository) FindProfile(ctx context.Context, principalID string) (*Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT user_id, full_name, email, COALESCE(phone, ''), COALESCE(department, '') FROM profiles WHERE user_id = $1`, principalID)
	var p Profile
	if err := row.Scan(&p.UserID, &p.FullName, &p.Email, &p.Phone, &p.Department); err != nil {
		if err == pgx.ErrNoRows {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindRole fetches the role assignment for a principal. The schema
// permits several rows per user; ordering by created_at then user_id
// makes the winning row deterministic. Which row ought to win is an
// open product question tracked in DESIGN.md.
func (r *PGRepository) FindRole(ctx context.Context, principalID string) (string, error) {
	row := r.pool.QueryRow(ctx, `SELECT role FROM user_roles WHERE user_id = $1 ORDER BY created_at, user_id LIMIT 1`, principalID)
	var role string
	if err := row.Scan(&role); err != nil {
		if err == pgx.ErrNoRows {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

// CreateProfile inserts the profile row for a freshly created principal.
func (r *PGRepository) CreateProfile(ctx context.Context, principalID, name, email, phone, department string) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO profiles (user_id, full_name, email, phone, department, created_at, updated_at) VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NOW(), NOW())`, principalID, name, email, phone, department)
	return err
}

// AssignRole attaches a role assignment to a principal.
func (r *PGRepository) AssignRole(ctx context.Context, principalID, role string) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO user_roles (user_id, role, created_at) VALUES ($1, $2, NOW())`, principalID, role)
	return err
}

// ReplaceRole swaps the principal's role assignment for a new one.
func (r *PGRepository) ReplaceRole(ctx context.Context, principalID, role string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, principalID); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO user_roles (user_id, role, created_at) VALUES ($1, $2, NOW())`, principalID, role); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

var _ Repository = (*PGRepository)(nil)

package users

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/proven-platform/proven/internal/identity"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListUsers returns every account with its profile and role. The role
// join mirrors the resolver's tie-break: first assignment by creation
// time wins when the schema holds more than one row.
func (r *Repository) ListUsers(ctx context.Context) ([]ManagedUser, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT u.id, u.email, COALESCE(p.full_name, ''), COALESCE(p.phone, ''), COALESCE(p.department, ''),
		       COALESCE((SELECT role FROM user_roles ur WHERE ur.user_id = u.id ORDER BY ur.created_at, ur.user_id LIMIT 1), ''),
		       u.is_active, u.created_at
		FROM users u
		LEFT JOIN profiles p ON p.user_id = u.id
		ORDER BY u.created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []ManagedUser
	for rows.Next() {
		var (
			user    ManagedUser
			rawRole string
		)
		if err := rows.Scan(&user.ID, &user.Email, &user.Name, &user.Phone, &user.Department, &rawRole, &user.IsActive, &user.CreatedAt); err != nil {
			return nil, err
		}
		if role, ok := identity.ParseRole(rawRole); ok {
			user.Role = &role
		}
		result = append(result, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Deactivate disables an account without deleting its history.
func (r *Repository) Deactivate(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `UPDATE users SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, userID)
	return err
}

package actions

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListActions returns all action items, newest first.
func (r *Repository) ListActions(ctx context.Context) ([]Action, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(project_id::text, ''), title, COALESCE(assignee_id::text, ''), status, due_on, created_by, created_at FROM actions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Action
	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.Title, &a.AssigneeID, &a.Status, &a.DueOn, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateAction inserts a new action item.
func (r *Repository) CreateAction(ctx context.Context, a *Action) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO actions (id, project_id, title, assignee_id, status, due_on, created_by, created_at) VALUES ($1, NULLIF($2, '')::uuid, $3, NULLIF($4, '')::uuid, $5, $6, $7, NOW())`,
		a.ID, a.ProjectID, a.Title, a.AssigneeID, a.Status, a.DueOn, a.CreatedBy)
	return err
}

// UpdateStatus moves an action through its lifecycle.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	_, err := r.pool.Exec(ctx, `UPDATE actions SET status = $2 WHERE id = $1`, id, status)
	return err
}

package issues

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/proven-platform/proven/internal/shared"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListIssues returns all issues, critical severities first, then
// newest first within a severity.
func (r *Repository) ListIssues(ctx context.Context) ([]Issue, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(project_id::text, ''), title, COALESCE(description, ''), severity, status, raised_by, COALESCE(assignee_id::text, ''), created_at FROM issues ORDER BY CASE severity WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Issue
	for rows.Next() {
		var i Issue
		if err := rows.Scan(&i.ID, &i.ProjectID, &i.Title, &i.Description, &i.Severity, &i.Status, &i.RaisedBy, &i.AssigneeID, &i.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateIssue inserts a new issue.
func (r *Repository) CreateIssue(ctx context.Context, i *Issue) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO issues (id, project_id, title, description, severity, status, raised_by, assignee_id, created_at) VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, NULLIF($8, '')::uuid, NOW())`,
		i.ID, i.ProjectID, i.Title, i.Description, i.Severity, i.Status, i.RaisedBy, i.AssigneeID)
	return err
}

// UpdateStatus moves an issue through its lifecycle.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE issues SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package decisions

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
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

// ListDecisions returns all decisions, newest first.
func (r *Repository) ListDecisions(ctx context.Context) ([]Decision, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(project_id::text, ''), title, COALESCE(description, ''), COALESCE(impact, ''), priority, status, due_on, raised_by, COALESCE(decided_by::text, ''), decided_at, created_at FROM decisions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Decision
	for rows.Next() {
		var d Decision
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Description, &d.Impact, &d.Priority, &d.Status, &d.DueOn, &d.RaisedBy, &d.DecidedBy, &d.DecidedAt, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetDecision fetches a single decision.
func (r *Repository) GetDecision(ctx context.Context, id string) (*Decision, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, COALESCE(project_id::text, ''), title, COALESCE(description, ''), COALESCE(impact, ''), priority, status, due_on, raised_by, COALESCE(decided_by::text, ''), decided_at, created_at FROM decisions WHERE id = $1`, id)
	var d Decision
	if err := row.Scan(&d.ID, &d.ProjectID, &d.Title, &d.Description, &d.Impact, &d.Priority, &d.Status, &d.DueOn, &d.RaisedBy, &d.DecidedBy, &d.DecidedAt, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// CreateDecision inserts a new decision.
func (r *Repository) CreateDecision(ctx context.Context, d *Decision) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO decisions (id, project_id, title, description, impact, priority, status, due_on, raised_by, created_at) VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, $9, NOW())`,
		d.ID, d.ProjectID, d.Title, d.Description, d.Impact, d.Priority, d.Status, d.DueOn, d.RaisedBy)
	return err
}

// RecordVerdict stamps a pending decision with its outcome.
func (r *Repository) RecordVerdict(ctx context.Context, id string, status Status, decidedBy string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE decisions SET status = $2, decided_by = $3, decided_at = NOW() WHERE id = $1 AND status = 'pending'`, id, status, decidedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

package projects

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

const projectColumns = `id, title, COALESCE(description, ''), status, owner_id, starts_on, ends_on, created_at, updated_at`

// ListProjects returns all projects ordered by creation time.
func (r *Repository) ListProjects(ctx context.Context) ([]Project, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.OwnerID, &p.StartsOn, &p.EndsOn, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return projects, nil
}

// GetProject fetches a single project.
func (r *Repository) GetProject(ctx context.Context, id string) (*Project, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	var p Project
	if err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Status, &p.OwnerID, &p.StartsOn, &p.EndsOn, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CreateProject inserts a new project.
func (r *Repository) CreateProject(ctx context.Context, p *Project) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO projects (id, title, description, status, owner_id, starts_on, ends_on, created_at, updated_at) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, NOW(), NOW())`,
		p.ID, p.Title, p.Description, p.Status, p.OwnerID, p.StartsOn, p.EndsOn)
	return err
}

// UpdateProject updates mutable fields. Returns ErrNotFound when the
// row does not exist.
func (r *Repository) UpdateProject(ctx context.Context, p *Project) error {
	tag, err := r.pool.Exec(ctx, `UPDATE projects SET title = $2, description = NULLIF($3, ''), status = $4, starts_on = $5, ends_on = $6, updated_at = NOW() WHERE id = $1`,
		p.ID, p.Title, p.Description, p.Status, p.StartsOn, p.EndsOn)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteProject removes a project.
func (r *Repository) DeleteProject(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

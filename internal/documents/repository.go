package documents

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

// ListDocuments returns all document records, newest first.
func (r *Repository) ListDocuments(ctx context.Context) ([]Document, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(project_id::text, ''), title, file_name, uploaded_by, created_at FROM documents ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.ProjectID, &d.Title, &d.FileName, &d.UploadedBy, &d.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// GetDocument fetches one document record.
func (r *Repository) GetDocument(ctx context.Context, id string) (*Document, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, COALESCE(project_id::text, ''), title, file_name, uploaded_by, created_at FROM documents WHERE id = $1`, id)
	var d Document
	if err := row.Scan(&d.ID, &d.ProjectID, &d.Title, &d.FileName, &d.UploadedBy, &d.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// CreateDocument inserts a document record.
func (r *Repository) CreateDocument(ctx context.Context, d *Document) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO documents (id, project_id, title, file_name, uploaded_by, created_at) VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, NOW())`,
		d.ID, d.ProjectID, d.Title, d.FileName, d.UploadedBy)
	return err
}

// DeleteDocument removes a document record.
func (r *Repository) DeleteDocument(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

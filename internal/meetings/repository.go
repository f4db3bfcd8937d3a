package meetings

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

// ListMeetings returns all meetings, soonest first.
func (r *Repository) ListMeetings(ctx context.Context) ([]Meeting, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, COALESCE(project_id::text, ''), title, scheduled_at, attendees, status, agenda_ready, organised_by, created_at FROM meetings ORDER BY scheduled_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []Meeting
	for rows.Next() {
		var m Meeting
		if err := rows.Scan(&m.ID, &m.ProjectID, &m.Title, &m.ScheduledAt, &m.Attendees, &m.Status, &m.AgendaReady, &m.OrganisedBy, &m.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateMeeting inserts a new meeting.
func (r *Repository) CreateMeeting(ctx context.Context, m *Meeting) error {
	_, err := r.pool.Exec(ctx, `INSERT INTO meetings (id, project_id, title, scheduled_at, attendees, status, agenda_ready, organised_by, created_at) VALUES ($1, NULLIF($2, '')::uuid, $3, $4, $5, $6, $7, $8, NOW())`,
		m.ID, m.ProjectID, m.Title, m.ScheduledAt, m.Attendees, m.Status, m.AgendaReady, m.OrganisedBy)
	return err
}

// UpdateStatus moves a meeting through its lifecycle.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx, `UPDATE meetings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

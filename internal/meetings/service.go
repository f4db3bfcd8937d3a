package meetings

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for meetings.
type RepositoryPort interface {
	ListMeetings(ctx context.Context) ([]Meeting, error)
	CreateMeeting(ctx context.Context, m *Meeting) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Service handles meeting business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListMeetings returns all meetings.
func (s *Service) ListMeetings(ctx context.Context) ([]Meeting, error) {
	return s.repo.ListMeetings(ctx)
}

// CreateMeeting schedules a meeting organised by the acting principal.
func (s *Service) CreateMeeting(ctx context.Context, actorID string, m *Meeting) error {
	m.ID = uuid.NewString()
	m.OrganisedBy = actorID
	m.Title = strings.TrimSpace(m.Title)
	m.Status = StatusScheduled
	return s.repo.CreateMeeting(ctx, m)
}

// UpdateStatus moves a meeting through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

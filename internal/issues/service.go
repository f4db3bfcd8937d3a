package issues

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for issues.
type RepositoryPort interface {
	ListIssues(ctx context.Context) ([]Issue, error)
	CreateIssue(ctx context.Context, i *Issue) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Service handles issue business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListIssues returns all issues.
func (s *Service) ListIssues(ctx context.Context) ([]Issue, error) {
	return s.repo.ListIssues(ctx)
}

// CreateIssue records an issue raised by the acting principal.
func (s *Service) CreateIssue(ctx context.Context, actorID string, i *Issue) error {
	i.ID = uuid.NewString()
	i.RaisedBy = actorID
	i.Title = strings.TrimSpace(i.Title)
	if i.Severity == "" {
		i.Severity = SeverityMedium
	}
	i.Status = StatusOpen
	return s.repo.CreateIssue(ctx, i)
}

// UpdateStatus moves an issue through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

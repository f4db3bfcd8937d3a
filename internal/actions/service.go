package actions

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// RepositoryPort defines data access methods for actions.
type RepositoryPort interface {
	ListActions(ctx context.Context) ([]Action, error)
	CreateAction(ctx context.Context, a *Action) error
	UpdateStatus(ctx context.Context, id string, status Status) error
}

// Service handles action item business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListActions returns all action items.
func (s *Service) ListActions(ctx context.Context) ([]Action, error) {
	return s.repo.ListActions(ctx)
}

// CreateAction inserts an action raised by the acting principal.
func (s *Service) CreateAction(ctx context.Context, actorID string, a *Action) error {
	a.ID = uuid.NewString()
	a.CreatedBy = actorID
	a.Title = strings.TrimSpace(a.Title)
	if a.Status == "" {
		a.Status = StatusOpen
	}
	return s.repo.CreateAction(ctx, a)
}

// UpdateStatus moves an action through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) error {
	return s.repo.UpdateStatus(ctx, id, status)
}

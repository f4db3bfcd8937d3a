package projects

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/proven-platform/proven/internal/shared"
	"github.com/proven-platform/proven/jobs"
)

// RepositoryPort defines data access methods for projects.
type RepositoryPort interface {
	ListProjects(ctx context.Context) ([]Project, error)
	GetProject(ctx context.Context, id string) (*Project, error)
	CreateProject(ctx context.Context, p *Project) error
	UpdateProject(ctx context.Context, p *Project) error
	DeleteProject(ctx context.Context, id string) error
}

// Service handles project business logic.
type Service struct {
	repo     RepositoryPort
	enqueuer jobs.Enqueuer
	audit    *shared.AuditLogger
	logger   *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, enqueuer jobs.Enqueuer, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, enqueuer: enqueuer, audit: audit, logger: logger}
}

// ListProjects returns the portfolio.
func (s *Service) ListProjects(ctx context.Context) ([]Project, error) {
	return s.repo.ListProjects(ctx)
}

// GetProject fetches one project.
func (s *Service) GetProject(ctx context.Context, id string) (*Project, error) {
	return s.repo.GetProject(ctx, id)
}

// CreateProject inserts a project owned by the acting principal and
// notifies the owner.
func (s *Service) CreateProject(ctx context.Context, actorID string, p *Project) error {
	p.ID = uuid.NewString()
	p.OwnerID = actorID
	p.Title = strings.TrimSpace(p.Title)
	if p.Status == "" {
		p.Status = StatusPlanning
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "project.create", p.ID, map[string]any{"title": p.Title})

	if s.enqueuer != nil {
		task, err := jobs.NewNotificationFanoutTask(jobs.NotificationFanoutPayload{
			Recipients: []string{p.OwnerID},
			Title:      "Project created",
			Body:       p.Title,
			Link:       "/portfolio",
		})
		if err == nil {
			_, err = s.enqueuer.Enqueue(task)
		}
		if err != nil {
			s.logger.Warn("project notification enqueue failed", slog.Any("error", err))
		}
	}
	return nil
}

// UpdateProject applies edits to an existing project.
func (s *Service) UpdateProject(ctx context.Context, actorID string, p *Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if err := s.repo.UpdateProject(ctx, p); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "project.update", p.ID, nil)
	return nil
}

// DeleteProject removes a project.
func (s *Service) DeleteProject(ctx context.Context, actorID, id string) error {
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "project.delete", id, nil)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorID, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actorID, Action: action, Entity: "project", EntityID: entityID, Meta: meta}); err != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}

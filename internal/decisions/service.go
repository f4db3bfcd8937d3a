package decisions

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/proven-platform/proven/internal/shared"
)

// RepositoryPort defines data access methods for decisions.
type RepositoryPort interface {
	ListDecisions(ctx context.Context) ([]Decision, error)
	GetDecision(ctx context.Context, id string) (*Decision, error)
	CreateDecision(ctx context.Context, d *Decision) error
	RecordVerdict(ctx context.Context, id string, status Status, decidedBy string) error
}

// Service handles decision business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListDecisions returns all decisions.
func (s *Service) ListDecisions(ctx context.Context) ([]Decision, error) {
	return s.repo.ListDecisions(ctx)
}

// CreateDecision records a decision raised by the acting principal.
// New decisions always start pending regardless of what the client
// submits.
func (s *Service) CreateDecision(ctx context.Context, actorID string, d *Decision) error {
	d.ID = uuid.NewString()
	d.RaisedBy = actorID
	d.Title = strings.TrimSpace(d.Title)
	d.Status = StatusPending
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return s.repo.CreateDecision(ctx, d)
}

// Decide rules on a pending decision. Only approved and rejected are
// valid verdicts; a decision that is no longer pending reports not
// found, so two approvers racing on the same item cannot both win.
func (s *Service) Decide(ctx context.Context, actorID, id string, verdict Status) (*Decision, error) {
	if verdict != StatusApproved && verdict != StatusRejected {
		return nil, fmt.Errorf("%w: verdict %q", shared.ErrForbidden, verdict)
	}
	if err := s.repo.RecordVerdict(ctx, id, verdict, actorID); err != nil {
		return nil, err
	}
	return s.repo.GetDecision(ctx, id)
}

// Overdue reports whether a pending decision has passed its due date.
func Overdue(d *Decision, now time.Time) bool {
	return d.Status == StatusPending && d.DueOn != nil && d.DueOn.Before(now)
}

package documents

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/shared"
)

// RepositoryPort defines data access methods for documents.
type RepositoryPort interface {
	ListDocuments(ctx context.Context) ([]Document, error)
	GetDocument(ctx context.Context, id string) (*Document, error)
	CreateDocument(ctx context.Context, d *Document) error
	DeleteDocument(ctx context.Context, id string) error
}

// Service handles document metadata business logic.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ListDocuments returns all document records.
func (s *Service) ListDocuments(ctx context.Context) ([]Document, error) {
	return s.repo.ListDocuments(ctx)
}

// CreateDocument records an upload by the acting principal.
func (s *Service) CreateDocument(ctx context.Context, actorID string, d *Document) error {
	d.ID = uuid.NewString()
	d.UploadedBy = actorID
	d.Title = strings.TrimSpace(d.Title)
	return s.repo.CreateDocument(ctx, d)
}

// DeleteDocument removes a record if the actor owns it or is
// system_admin. The ownership rule is checked here, against the stored
// row, not against anything the client claims.
func (s *Service) DeleteDocument(ctx context.Context, actor *identity.Identity, id string) error {
	doc, err := s.repo.GetDocument(ctx, id)
	if err != nil {
		return err
	}
	if !authz.CanDeleteDocument(actor.Role, doc.UploadedBy, actor.ID) {
		return shared.ErrForbidden
	}
	return s.repo.DeleteDocument(ctx, id)
}

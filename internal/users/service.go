package users

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log/slog"

	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/shared"
	"github.com/proven-platform/proven/jobs"
)

// AccountCreator creates a principal at the authentication provider
// without signing it in.
type AccountCreator interface {
	AdminCreateUser(ctx context.Context, email, password string) (string, error)
}

// Registrar writes the profile and role rows attached to a principal.
type Registrar interface {
	CreateProfile(ctx context.Context, principalID, name, email, phone, department string) error
	AssignRole(ctx context.Context, principalID, role string) error
	ReplaceRole(ctx context.Context, principalID, role string) error
}

// RepositoryPort defines data access methods for user management.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]ManagedUser, error)
	Deactivate(ctx context.Context, userID string) error
}

// ProvisionInput describes an administrator-created account.
type ProvisionInput struct {
	Email      string
	FullName   string
	Role       identity.Role
	Phone      string
	Department string
}

// Service handles user management: listing, provisioning, role changes
// and deactivation. Everything here is reachable only by system_admin;
// the handler enforces that and the service audit-logs every mutation.
type Service struct {
	repo      RepositoryPort
	accounts  AccountCreator
	registrar Registrar
	enqueuer  jobs.Enqueuer
	audit     *shared.AuditLogger
	logger    *slog.Logger
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort, accounts AccountCreator, registrar Registrar, enqueuer jobs.Enqueuer, audit *shared.AuditLogger, logger *slog.Logger) *Service {
	return &Service{repo: repo, accounts: accounts, registrar: registrar, enqueuer: enqueuer, audit: audit, logger: logger}
}

// ListUsers returns all accounts.
func (s *Service) ListUsers(ctx context.Context) ([]ManagedUser, error) {
	return s.repo.ListUsers(ctx)
}

// Provision creates the principal, profile and role assignment in one
// administrative action and queues a credentials email. The generated
// password is never stored or returned; it exists only in the queued
// email payload.
func (s *Service) Provision(ctx context.Context, actorID string, input ProvisionInput) (string, error) {
	password, err := generatePassword()
	if err != nil {
		return "", err
	}

	principalID, err := s.accounts.AdminCreateUser(ctx, input.Email, password)
	if err != nil {
		return "", err
	}
	if err := s.registrar.CreateProfile(ctx, principalID, input.FullName, input.Email, input.Phone, input.Department); err != nil {
		return "", err
	}
	if err := s.registrar.AssignRole(ctx, principalID, string(input.Role)); err != nil {
		return "", err
	}

	if err := jobs.EnqueueCredentialsEmail(s.enqueuer, jobs.CredentialsEmailPayload{
		To:       input.Email,
		FullName: input.FullName,
		Password: password,
		Role:     input.Role.Display(),
	}); err != nil {
		// The account exists; a lost email is recoverable by a reset.
		s.logger.Warn("credentials email enqueue failed", slog.String("email", input.Email), slog.Any("error", err))
	}

	s.recordAudit(ctx, actorID, "user.provision", principalID, map[string]any{"role": string(input.Role)})
	return principalID, nil
}

// ChangeRole replaces a user's role assignment.
func (s *Service) ChangeRole(ctx context.Context, actorID, userID string, role identity.Role) error {
	if err := s.registrar.ReplaceRole(ctx, userID, string(role)); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "user.change_role", userID, map[string]any{"role": string(role)})
	return nil
}

// Deactivate disables an account.
func (s *Service) Deactivate(ctx context.Context, actorID, userID string) error {
	if err := s.repo.Deactivate(ctx, userID); err != nil {
		return err
	}
	s.recordAudit(ctx, actorID, "user.deactivate", userID, nil)
	return nil
}

func (s *Service) recordAudit(ctx context.Context, actorID, action, entityID string, meta map[string]any) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Record(ctx, shared.AuditLog{ActorID: actorID, Action: action, Entity: "user", EntityID: entityID, Meta: meta}); err != nil {
		s.logger.Warn("audit record failed", slog.String("action", action), slog.Any("error", err))
	}
}

func generatePassword() (string, error) {
	b := make([]byte, 18)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

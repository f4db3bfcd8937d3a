package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages the user-management endpoints. Every route requires
// system_admin; this is the data-layer leg of the permission check the
// UI also applies when hiding the User Management page.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	authz     authz.Middleware
	validator *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, authzMW authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: authzMW, validator: validator.New()}
}

// MountRoutes registers user management routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanManageUsers))
		r.Get("/", h.listUsers)
		r.Post("/", h.provisionUser)
		r.Put("/{id}/role", h.changeRole)
		r.Delete("/{id}", h.deactivateUser)
	})
}

type provisionRequest struct {
	Email      string `json:"email" validate:"required,email"`
	FullName   string `json:"full_name" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=top_management project_owner project_manager project_officer system_admin"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

type changeRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=top_management project_owner project_manager project_officer system_admin"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"users": list})
}

func (h *Handler) provisionUser(w http.ResponseWriter, r *http.Request) {
	var req provisionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "check the provisioning fields")
		return
	}
	role, _ := identity.ParseRole(req.Role)

	actor := h.authz.Identity(r)
	id, err := h.service.Provision(r.Context(), actor.ID, ProvisionInput{
		Email:      req.Email,
		FullName:   req.FullName,
		Role:       role,
		Phone:      req.Phone,
		Department: req.Department,
	})
	if err != nil {
		h.logger.Error("provision user failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (h *Handler) changeRole(w http.ResponseWriter, r *http.Request) {
	var req changeRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown role")
		return
	}
	role, _ := identity.ParseRole(req.Role)

	actor := h.authz.Identity(r)
	userID := chi.URLParam(r, "id")
	if err := h.service.ChangeRole(r.Context(), actor.ID, userID, role); err != nil {
		h.logger.Error("change role failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	// A signed-in user picks the new role up without re-authenticating.
	h.authz.Store.Refresh(userID)
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) deactivateUser(w http.ResponseWriter, r *http.Request) {
	actor := h.authz.Identity(r)
	if err := h.service.Deactivate(r.Context(), actor.ID, chi.URLParam(r, "id")); err != nil {
		h.logger.Error("deactivate user failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

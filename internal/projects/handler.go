package projects

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/identity"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages project endpoints. Reads are open to any signed-in
// role; mutations repeat the affordance predicates server-side.
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

// MountRoutes registers project routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listProjects)
	r.Get("/{id}", h.getProject)
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanCreateProject))
		r.Post("/", h.createProject)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanEditProject))
		r.Put("/{id}", h.updateProject)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireRole(identity.RoleSystemAdmin))
		r.Delete("/{id}", h.deleteProject)
	})
}

type projectRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Status      string     `json:"status" validate:"omitempty,oneof=planning active on_hold completed"`
	StartsOn    *time.Time `json:"starts_on"`
	EndsOn      *time.Time `json:"ends_on"`
}

func (h *Handler) listProjects(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListProjects(r.Context())
	if err != nil {
		h.logger.Error("list projects failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"projects": list})
}

func (h *Handler) getProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.GetProject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *Handler) createProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title is required")
		return
	}

	actor := h.authz.Identity(r)
	project := &Project{
		Title:       req.Title,
		Description: req.Description,
		Status:      Status(req.Status),
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	}
	if err := h.service.CreateProject(r.Context(), actor.ID, project); err != nil {
		h.logger.Error("create project failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, project)
}

func (h *Handler) updateProject(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title is required")
		return
	}

	actor := h.authz.Identity(r)
	project := &Project{
		ID:          chi.URLParam(r, "id"),
		Title:       req.Title,
		Description: req.Description,
		Status:      Status(req.Status),
		StartsOn:    req.StartsOn,
		EndsOn:      req.EndsOn,
	}
	if err := h.service.UpdateProject(r.Context(), actor.ID, project); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, project)
}

func (h *Handler) deleteProject(w http.ResponseWriter, r *http.Request) {
	actor := h.authz.Identity(r)
	if err := h.service.DeleteProject(r.Context(), actor.ID, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

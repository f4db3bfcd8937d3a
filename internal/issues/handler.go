package issues

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages issue endpoints.
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

// MountRoutes registers issue routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listIssues)
	r.Post("/", h.createIssue)
	r.Put("/{id}/status", h.updateStatus)
}

type issueRequest struct {
	ProjectID   string `json:"project_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Severity    string `json:"severity" validate:"omitempty,oneof=critical high medium low"`
	AssigneeID  string `json:"assignee_id"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress resolved"`
}

func (h *Handler) listIssues(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListIssues(r.Context())
	if err != nil {
		h.logger.Error("list issues failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"issues": list})
}

func (h *Handler) createIssue(w http.ResponseWriter, r *http.Request) {
	var req issueRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title is required")
		return
	}

	actor := h.authz.Identity(r)
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
		return
	}
	issue := &Issue{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Severity:    Severity(req.Severity),
		AssigneeID:  req.AssigneeID,
	}
	if err := h.service.CreateIssue(r.Context(), actor.ID, issue); err != nil {
		h.logger.Error("create issue failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, issue)
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "unknown status")
		return
	}
	if err := h.service.UpdateStatus(r.Context(), chi.URLParam(r, "id"), Status(req.Status)); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

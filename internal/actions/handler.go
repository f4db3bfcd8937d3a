package actions

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages action item endpoints.
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

// MountRoutes registers action routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listActions)
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanCreateAction))
		r.Post("/", h.createAction)
		r.Put("/{id}/status", h.updateStatus)
	})
}

type actionRequest struct {
	ProjectID  string     `json:"project_id"`
	Title      string     `json:"title" validate:"required"`
	AssigneeID string     `json:"assignee_id"`
	DueOn      *time.Time `json:"due_on"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=open in_progress done"`
}

func (h *Handler) listActions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListActions(r.Context())
	if err != nil {
		h.logger.Error("list actions failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"actions": list})
}

func (h *Handler) createAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title is required")
		return
	}

	actor := h.authz.Identity(r)
	action := &Action{
		ProjectID:  req.ProjectID,
		Title:      req.Title,
		AssigneeID: req.AssigneeID,
		DueOn:      req.DueOn,
	}
	if err := h.service.CreateAction(r.Context(), actor.ID, action); err != nil {
		h.logger.Error("create action failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, action)
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

package decisions

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages decision endpoints.
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

// MountRoutes registers decision routes. Ruling on a decision is the
// approver operation: the route is gated on the same predicate the
// client reads from /api/me.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listDecisions)
	r.Post("/", h.createDecision)
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanApprove))
		r.Post("/{id}/decide", h.decide)
	})
}

type decisionRequest struct {
	ProjectID   string     `json:"project_id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	Impact      string     `json:"impact"`
	Priority    string     `json:"priority" validate:"omitempty,oneof=critical high medium low"`
	DueOn       *time.Time `json:"due_on"`
}

type verdictRequest struct {
	Verdict string `json:"verdict" validate:"required,oneof=approved rejected"`
}

func (h *Handler) listDecisions(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDecisions(r.Context())
	if err != nil {
		h.logger.Error("list decisions failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"decisions": list})
}

func (h *Handler) createDecision(w http.ResponseWriter, r *http.Request) {
	var req decisionRequest
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
	decision := &Decision{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Impact:      req.Impact,
		Priority:    Priority(req.Priority),
		DueOn:       req.DueOn,
	}
	if err := h.service.CreateDecision(r.Context(), actor.ID, decision); err != nil {
		h.logger.Error("create decision failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, decision)
}

func (h *Handler) decide(w http.ResponseWriter, r *http.Request) {
	var req verdictRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "verdict must be approved or rejected")
		return
	}

	actor := h.authz.Identity(r)
	decision, err := h.service.Decide(r.Context(), actor.ID, chi.URLParam(r, "id"), Status(req.Verdict))
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, decision)
}

package meetings

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages meeting endpoints.
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

// MountRoutes registers meeting routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listMeetings)
	r.Post("/", h.createMeeting)
	r.Put("/{id}/status", h.updateStatus)
}

type meetingRequest struct {
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title" validate:"required"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Attendees   int       `json:"attendees" validate:"gte=0"`
	AgendaReady bool      `json:"agenda_ready"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=scheduled completed cancelled"`
}

func (h *Handler) listMeetings(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListMeetings(r.Context())
	if err != nil {
		h.logger.Error("list meetings failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"meetings": list})
}

func (h *Handler) createMeeting(w http.ResponseWriter, r *http.Request) {
	var req meetingRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title and scheduled_at are required")
		return
	}

	actor := h.authz.Identity(r)
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
		return
	}
	meeting := &Meeting{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		ScheduledAt: req.ScheduledAt,
		Attendees:   req.Attendees,
		AgendaReady: req.AgendaReady,
	}
	if err := h.service.CreateMeeting(r.Context(), actor.ID, meeting); err != nil {
		h.logger.Error("create meeting failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, meeting)
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

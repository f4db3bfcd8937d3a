package documents

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/proven-platform/proven/internal/authz"
	"github.com/proven-platform/proven/internal/platform/httpx"
)

// Handler manages document endpoints.
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

// MountRoutes registers document routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.listDocuments)
	r.Post("/", h.createDocument)
	r.Delete("/{id}", h.deleteDocument)
}

type documentRequest struct {
	ProjectID string `json:"project_id"`
	Title     string `json:"title" validate:"required"`
	FileName  string `json:"file_name" validate:"required"`
}

func (h *Handler) listDocuments(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListDocuments(r.Context())
	if err != nil {
		h.logger.Error("list documents failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"documents": list})
}

func (h *Handler) createDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", "title and file_name are required")
		return
	}

	actor := h.authz.Identity(r)
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
		return
	}
	doc := &Document{ProjectID: req.ProjectID, Title: req.Title, FileName: req.FileName}
	if err := h.service.CreateDocument(r.Context(), actor.ID, doc); err != nil {
		h.logger.Error("create document failed", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, doc)
}

func (h *Handler) deleteDocument(w http.ResponseWriter, r *http.Request) {
	actor := h.authz.Identity(r)
	if actor == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "sign in to continue")
		return
	}
	if err := h.service.DeleteDocument(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

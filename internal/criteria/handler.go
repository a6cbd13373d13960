// AngelaMos | 2026
// handler.go

package criteria

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/criteria", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
	})
}

// RegisterAdminRoutes registers criteria management endpoints. Mutation
// is admin-only; reads are open to any authenticated user.
func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/criteria", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Put("/", h.Upsert)
		r.Delete("/{criterionID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	interactionType := r.URL.Query().Get("type")

	list, err := h.service.List(r.Context(), interactionType)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "unknown interaction type")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCriterionResponseList(list))
}

func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertCriterionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	criterion, err := h.service.Upsert(r.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrInvalidInput) {
			core.BadRequest(w, "invalid criterion")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCriterionResponse(criterion))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	criterionID := chi.URLParam(r, "criterionID")

	if err := h.service.Delete(r.Context(), criterionID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "criterion")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

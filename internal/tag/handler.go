// AngelaMos | 2026
// handler.go

package tag

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/veritas-backend/internal/core"
	"github.com/carterperez-dev/veritas-backend/internal/middleware"
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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/tags", h.ListTags)
		r.Put("/pois/{poiID}/tag", h.Assign)
		r.Delete("/pois/{poiID}/tag", h.Clear)
		r.Get("/pois/{poiID}/tag", h.Get)
		r.Get("/pois/{poiID}/tags", h.CountByPOI)
	})
}

func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.ListTags(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToTagResponseList(tags))
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	poiID := chi.URLParam(r, "poiID")

	var req AssignTagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	assignment, err := h.service.Assign(r.Context(), userID, poiID, req.TagID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tag or person of interest")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(assignment))
}

func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	poiID := chi.URLParam(r, "poiID")

	if err := h.service.Clear(r.Context(), userID, poiID); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	poiID := chi.URLParam(r, "poiID")

	assignment, err := h.service.Get(r.Context(), userID, poiID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "tag assignment")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(assignment))
}

func (h *Handler) CountByPOI(w http.ResponseWriter, r *http.Request) {
	poiID := chi.URLParam(r, "poiID")

	counts, err := h.service.CountByPOI(r.Context(), poiID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "person of interest")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, counts)
}

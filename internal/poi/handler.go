// AngelaMos | 2026
// handler.go

package poi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

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
	r.Route("/pois", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{poiID}", h.Get)
		r.Put("/{poiID}", h.Update)
		r.Get("/by-slug/{slug}", h.GetBySlug)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	creatorID := middleware.GetUserID(r.Context())

	var req CreatePOIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	poi, err := h.service.Create(r.Context(), creatorID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToPOIResponse(poi))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	poiID := chi.URLParam(r, "poiID")

	poi, err := h.service.GetByID(r.Context(), poiID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "person of interest")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPOIResponse(poi))
}

func (h *Handler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	poi, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "person of interest")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToPOIResponse(poi))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.GetUserID(r.Context())
	poiID := chi.URLParam(r, "poiID")

	var req UpdatePOIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	poi, err := h.service.Update(r.Context(), actorID, poiID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "person of interest")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "only the creator may modify this record")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToPOIResponse(poi))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListPOIParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
		Search:   r.URL.Query().Get("search"),
		City:     r.URL.Query().Get("city"),
		State:    r.URL.Query().Get("state"),
	}

	pois, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToPOIResponseList(pois),
		params.Page,
		params.PageSize,
		total,
	)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

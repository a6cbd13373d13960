// AngelaMos | 2026
// handler.go

package interaction

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
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/interactions", h.Log)
		r.Get("/pois/{poiID}/interactions", h.ListByPOI)
	})
}

func (h *Handler) Log(w http.ResponseWriter, r *http.Request) {
	reporterID := middleware.GetUserID(r.Context())

	var req LogInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	interaction, err := h.service.Log(r.Context(), reporterID, req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "referenced entity")
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, err.Error())
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToInteractionResponse(interaction))
}

func (h *Handler) ListByPOI(w http.ResponseWriter, r *http.Request) {
	poiID := chi.URLParam(r, "poiID")

	params := ListParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	interactions, total, err := h.service.ListByPOI(r.Context(), poiID, params)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "person of interest")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToInteractionResponseList(interactions),
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

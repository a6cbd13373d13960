// AngelaMos | 2026
// handler.go

package trust

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carterperez-dev/veritas-backend/internal/core"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/pois/{poiID}/trust", h.Get)
	})
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	poiID := chi.URLParam(r, "poiID")

	summary, err := h.service.Get(r.Context(), poiID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "person of interest")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summary)
}

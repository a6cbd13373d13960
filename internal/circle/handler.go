// AngelaMos | 2026
// handler.go

package circle

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

		r.Post("/circles", h.Create)
		r.Get("/circles", h.List)
		r.Get("/circles/{circleID}", h.Get)
		r.Post("/circles/{circleID}/join", h.Join)
		r.Post("/circles/{circleID}/membership", h.ManageMember)
		r.Post("/circles/{circleID}/invitations", h.InviteByEmail)
		r.Get("/circles/{circleID}/members", h.ListMembers)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateCircleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	circle, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "invalid circle type")
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "a circle with this name already exists")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToCircleResponse(circle))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListCirclesParams{
		Search:   r.URL.Query().Get("search"),
		City:     r.URL.Query().Get("city"),
		State:    r.URL.Query().Get("state"),
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 20),
	}

	circles, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(w, ToCircleResponseList(circles), params.Page, params.PageSize, total)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	circleID := chi.URLParam(r, "circleID")

	circle, err := h.service.GetByID(r.Context(), circleID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "circle")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToCircleResponse(circle))
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	circleID := chi.URLParam(r, "circleID")

	var req JoinCircleRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
		if err := h.validator.Struct(req); err != nil {
			core.BadRequest(w, core.FormatValidationError(err))
			return
		}
	}

	membership, err := h.service.RequestJoin(r.Context(), userID, circleID, req.InviteToken)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "circle or invitation")
		case errors.Is(err, core.ErrConflict):
			core.Conflict(w, "membership already pending or approved")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "a valid invitation is required to join this circle")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToMembershipResponse(membership))
}

func (h *Handler) ManageMember(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	circleID := chi.URLParam(r, "circleID")

	var req ManageMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	membership, err := h.service.ManageMember(r.Context(), userID, circleID, &req)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "circle or membership")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "transition not permitted")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToMembershipResponse(membership))
}

func (h *Handler) InviteByEmail(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	circleID := chi.URLParam(r, "circleID")

	var req InviteByEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	invitation, err := h.service.InviteByEmail(r.Context(), userID, circleID, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "circle")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "only approved members can invite")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToInvitationResponse(invitation))
}

func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	circleID := chi.URLParam(r, "circleID")

	members, err := h.service.ListMembers(r.Context(), userID, circleID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "circle")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "members are visible to approved members only")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToMembershipResponseList(members))
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

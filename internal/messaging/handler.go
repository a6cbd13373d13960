// AngelaMos | 2026
// handler.go

package messaging

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

		r.Get("/threads", h.ListThreads)
		r.Post("/threads/find-or-create", h.FindOrCreateThread)
		r.Get("/threads/{threadID}/messages", h.ListMessages)
		r.Post("/threads/{threadID}/messages", h.SendMessage)
		r.Post("/messages/{messageID}/read", h.MarkRead)
		r.Delete("/messages/{messageID}", h.DeleteMessage)
	})
}

func (h *Handler) ListThreads(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	summaries, err := h.service.ListThreads(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, summaries)
}

func (h *Handler) FindOrCreateThread(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req FindOrCreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	thread, err := h.service.FindOrCreateThread(r.Context(), userID, req.OtherUserID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "cannot open a thread with yourself")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToThreadResponse(thread))
}

func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	threadID := chi.URLParam(r, "threadID")

	params := ListMessagesParams{
		Page:     parseIntQuery(r, "page", 1),
		PageSize: parseIntQuery(r, "page_size", 50),
	}

	messages, total, err := h.service.ListMessages(r.Context(), userID, threadID, params)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "thread")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "not a participant in this thread")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	params.Normalize()
	core.Paginated(w, ToMessageResponseList(messages), params.Page, params.PageSize, total)
}

func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	threadID := chi.URLParam(r, "threadID")

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, threadID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidInput):
			core.BadRequest(w, "message text cannot be empty")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "thread")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "not a participant in this thread")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, ToMessageResponse(message))
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID := chi.URLParam(r, "messageID")

	message, err := h.service.MarkRead(r.Context(), userID, messageID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "message")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "only the receiver can mark a message read")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, ToMessageResponse(message))
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	messageID := chi.URLParam(r, "messageID")

	if err := h.service.DeleteMessage(r.Context(), userID, messageID); err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "message")
		case errors.Is(err, core.ErrForbidden):
			core.Forbidden(w, "only the sender can delete a message")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

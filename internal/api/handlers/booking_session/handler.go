package booking_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Handler обработчики сессии бронирования: выбор слотов и шаги оформления
type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Create POST /api/v1/sessions
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r, "POST /sessions")
	if !ok {
		return
	}

	sess, err := h.service.Create(r.Context(), userID)
	if err != nil {
		h.respondServiceError(w, "POST /sessions", "", err)
		return
	}

	h.logger.Info("POST /sessions - Session created: session_id=%s, user_id=%s", sess.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainSession(sess))
}

// Get GET /api/v1/sessions/{sessionId}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "GET /sessions/{id}", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.Get(r.Context(), sessionID, userID)
	})
}

// ToggleSlot POST /api/v1/sessions/{sessionId}/selection
func (h *Handler) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	var req ToggleSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/selection - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.run(w, r, "POST /sessions/{id}/selection", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.ToggleSlot(r.Context(), sessionID, userID, req.SlotID)
	})
}

// ClearSelection DELETE /api/v1/sessions/{sessionId}/selection
func (h *Handler) ClearSelection(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "DELETE /sessions/{id}/selection", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.ClearSelection(r.Context(), sessionID, userID)
	})
}

// Open POST /api/v1/sessions/{sessionId}/open
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "POST /sessions/{id}/open", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.Open(r.Context(), sessionID, userID)
	})
}

// Confirm POST /api/v1/sessions/{sessionId}/confirm
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.run(w, r, "POST /sessions/{id}/confirm", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.Confirm(r.Context(), sessionID, userID, req.Name)
	})
}

// Pay POST /api/v1/sessions/{sessionId}/pay
func (h *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	var payment domain.Payment
	if err := handlers.DecodeJSON(r, &payment); err != nil {
		h.logger.Warn("POST /sessions/{id}/pay - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	h.run(w, r, "POST /sessions/{id}/pay", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.Pay(r.Context(), sessionID, userID, payment)
	})
}

// Cancel POST /api/v1/sessions/{sessionId}/cancel
func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "POST /sessions/{id}/cancel", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.Cancel(r.Context(), sessionID, userID)
	})
}

// Reset POST /api/v1/sessions/{sessionId}/reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.run(w, r, "POST /sessions/{id}/reset", func(userID, sessionID string) (*domain.BookingSession, error) {
		return h.service.Reset(r.Context(), sessionID, userID)
	})
}

// run общий путь: userID из контекста, sessionId из пути, операция, ответ
func (h *Handler) run(w http.ResponseWriter, r *http.Request, op string, fn func(userID, sessionID string) (*domain.BookingSession, error)) {
	userID, ok := h.userID(w, r, op)
	if !ok {
		return
	}
	sessionID := mux.Vars(r)["sessionId"]

	sess, err := fn(userID, sessionID)
	if err != nil {
		h.respondServiceError(w, op, sessionID, err)
		return
	}

	h.logger.Info("%s - OK: session_id=%s, state=%s", op, sessionID, sess.State)
	handlers.RespondJSON(w, http.StatusOK, FromDomainSession(sess))
}

func (h *Handler) userID(w http.ResponseWriter, r *http.Request, op string) (string, bool) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("%s - Missing user ID", op)
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return "", false
	}
	return userID, true
}

package get_user_reservations

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/reservations/models"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgForbidden     = "доступ запрещен"
	msgInvalidFilter = "некорректный фильтр, ожидается upcoming или past"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/reservations
// Query params: filter (optional, upcoming|past)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]

	// Получаем userID из контекста (через middleware Auth)
	callerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Пользователь видит только свои брони
	if callerID != userID {
		h.logger.Warn("GET /users/{userId}/reservations - Access denied: user_id=%s, caller=%s", userID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	filter, err := models.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		h.logger.Warn("GET /users/{userId}/reservations - Invalid filter: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.GetUserReservations(r.Context(), &models.GetUserReservationsRequest{
		UserID: userID,
		Filter: filter,
	})
	if err != nil {
		h.logger.Error("GET /users/{userId}/reservations - Failed to get reservations: user_id=%s, error=%v",
			userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/{userId}/reservations - Reservations retrieved successfully: user_id=%s, count=%d",
		userID, result.Count)
	handlers.RespondJSON(w, http.StatusOK, result)
}

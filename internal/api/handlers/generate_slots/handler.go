package generate_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	generateSlots "github.com/m04kA/SMC-PlaygroundBooking/internal/usecase/generate_slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast         = "нельзя создать слоты на прошедшую дату"
	msgInvalidTimeRange   = "время открытия должно быть раньше времени закрытия"
	msgInvalidInput       = "некорректные параметры генерации слотов"
)

type Handler struct {
	useCase GenerateSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GenerateSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/resources/{resourceId}/slots/generate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	resourceID := mux.Vars(r)["resourceId"]

	var req GenerateSlotsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /resources/{id}/slots/generate - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(resourceID)
	if err != nil {
		h.logger.Warn("POST /resources/{id}/slots/generate - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, generateSlots.ErrInvalidDate):
			h.logger.Warn("POST /resources/{id}/slots/generate - Date in past: resource_id=%s", resourceID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, generateSlots.ErrInvalidTimeRange):
			h.logger.Warn("POST /resources/{id}/slots/generate - Invalid time range: resource_id=%s", resourceID)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, generateSlots.ErrInvalidInput):
			h.logger.Warn("POST /resources/{id}/slots/generate - Invalid input: resource_id=%s: %v", resourceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /resources/{id}/slots/generate - Failed to generate slots: resource_id=%s, error=%v",
				resourceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /resources/{id}/slots/generate - Slots generated: resource_id=%s, created=%d, skipped=%d",
		resourceID, len(result.Created), result.Skipped)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

package booking_session

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/handlers"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/sessions"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/workflow"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSessionNotFound    = "сессия не найдена или истекла"
	msgSlotNotFound       = "слот не найден"
	msgAccessDenied       = "доступ к сессии запрещен"
	msgSlotConflict       = "слот уже забронирован"
	msgSelectionLocked    = "выбор нельзя изменить во время оформления брони"
	msgHeterogeneous      = "все слоты должны относиться к одной площадке и дате"
	msgEmptySelection     = "не выбрано ни одного слота"
	msgInvalidTransition  = "действие недоступно на текущем шаге"
	msgMissingName        = "укажите имя"
	msgReselect           = "часть слотов уже занята, выберите слоты заново"
	msgInvalidCard        = "некорректные данные карты"
	msgInvalidTransferID  = "некорректный UPI ID"
	msgUnsupportedPayment = "способ оплаты не поддерживается"
	msgPaymentFailed      = "платеж не прошел"
	msgInvalidInput       = "некорректные входные данные"
	msgRequestAborted     = "запрос прерван"
)

// respondServiceError отображает ошибку сервиса сессий в HTTP ответ
func (h *Handler) respondServiceError(w http.ResponseWriter, op, sessionID string, err error) {
	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: session_id=%s", op, sessionID)
		handlers.RespondNotFound(w, msgSessionNotFound)

	case errors.Is(err, domain.ErrSlotNotFound):
		h.logger.Warn("%s - Slot not found: session_id=%s", op, sessionID)
		handlers.RespondNotFound(w, msgSlotNotFound)

	case errors.Is(err, sessions.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: session_id=%s", op, sessionID)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, domain.ErrSlotConflict):
		h.logger.Warn("%s - Slot conflict: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondConflict(w, msgSlotConflict)

	case errors.Is(err, workflow.ErrInvalidCardDetails):
		handlers.RespondUnprocessable(w, msgInvalidCard)

	case errors.Is(err, workflow.ErrInvalidTransferID):
		handlers.RespondUnprocessable(w, msgInvalidTransferID)

	case errors.Is(err, workflow.ErrUnsupportedPaymentMethod):
		handlers.RespondUnprocessable(w, msgUnsupportedPayment)

	case errors.Is(err, workflow.ErrPaymentFailed):
		h.logger.Warn("%s - Payment failed: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentFailed)

	case errors.Is(err, sessions.ErrSelectionLocked):
		handlers.RespondBadRequest(w, msgSelectionLocked)

	case errors.Is(err, domain.ErrHeterogeneousSelection):
		handlers.RespondBadRequest(w, msgHeterogeneous)

	case errors.Is(err, domain.ErrEmptySelection):
		handlers.RespondBadRequest(w, msgEmptySelection)

	case errors.Is(err, workflow.ErrInvalidTransition):
		h.logger.Warn("%s - Invalid transition: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidTransition)

	case errors.Is(err, workflow.ErrReselectionRequired):
		handlers.RespondBadRequest(w, msgReselect)

	case errors.Is(err, workflow.ErrMissingName):
		handlers.RespondBadRequest(w, msgMissingName)

	case errors.Is(err, sessions.ErrInvalidInput), errors.Is(err, domain.ErrInvalidInput):
		handlers.RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warn("%s - Request aborted: session_id=%s", op, sessionID)
		handlers.RespondError(w, http.StatusRequestTimeout, msgRequestAborted)

	default:
		h.logger.Error("%s - Internal error: session_id=%s, error=%v", op, sessionID, err)
		handlers.RespondInternalError(w)
	}
}

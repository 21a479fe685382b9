package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата попадает в окно бронирования [сегодня, сегодня+windowDays)
func validateDate(requestDate time.Time, now time.Time, windowDays int) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	// Если windowDays = 0, нет ограничений на дату
	if windowDays == 0 {
		return nil
	}

	lastDate := domain.DateOnly(now).AddDate(0, 0, windowDays-1)
	if domain.DateOnly(requestDate).After(lastDate) {
		return fmt.Errorf("%w: can only book %d days ahead", ErrDateTooFarInFuture, windowDays)
	}

	return nil
}

package generate_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// applyDefaults заполняет незаданные поля значениями по умолчанию
func applyDefaults(req *Request) {
	if req.OpenTime.IsZero() {
		req.OpenTime = types.TimeString(domain.DefaultOpenTime)
	}
	if req.CloseTime.IsZero() {
		req.CloseTime = types.TimeString(domain.DefaultCloseTime)
	}
	if req.DurationMinutes == 0 {
		req.DurationMinutes = domain.DefaultSlotDurationMinutes
	}
	if req.Price == nil {
		price := int64(domain.DefaultSlotPrice)
		req.Price = &price
	}
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if strings.TrimSpace(req.ResourceID) == "" {
		return fmt.Errorf("%w: resourceID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if domain.DateOnly(req.Date).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	if err := req.OpenTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}

	if err := req.CloseTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}

	if !req.OpenTime.IsBefore(req.CloseTime) {
		return fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidTimeRange)
	}

	if req.DurationMinutes < domain.MinSlotDurationMinutes || req.DurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}

	if *req.Price < 0 || *req.Price > domain.MaxSlotPrice {
		return fmt.Errorf("%w: price must be between 0 and %d", ErrInvalidInput, domain.MaxSlotPrice)
	}

	return nil
}

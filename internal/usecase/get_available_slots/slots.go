package get_available_slots

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// filterStartedSlots для сегодняшней даты оставляет только слоты,
// начинающиеся не раньше now + minNoticeMinutes. Для других дат возвращает слоты как есть.
func filterStartedSlots(slots []*domain.TimeSlot, requestDate, now time.Time, minNoticeMinutes int) ([]*domain.TimeSlot, error) {
	if !domain.SameDate(requestDate, now) {
		return slots, nil
	}

	minAllowedTime, err := types.NewTimeString(now).AddMinutes(minNoticeMinutes)
	if errors.Is(err, types.ErrTimeOverflow) {
		// уведомление переходит через полночь: сегодня слотов больше нет
		return []*domain.TimeSlot{}, nil
	}
	if err != nil {
		return nil, err
	}

	available := make([]*domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if !slot.StartTime.IsBefore(minAllowedTime) {
			available = append(available, slot)
		}
	}

	return available, nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}

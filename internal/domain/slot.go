package domain

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// TimeSlot бронируемый интервал площадки на конкретную дату.
// После создания меняется только IsBooked (false -> true при подтверждении брони).
type TimeSlot struct {
	ID         string           `json:"id"`
	ResourceID string           `json:"resourceId"` // ID площадки
	Date       time.Time        `json:"date"`       // календарный день, время 00:00 UTC
	StartTime  types.TimeString `json:"startTime"`
	EndTime    types.TimeString `json:"endTime"`
	IsBooked   bool             `json:"isBooked"`
	Price      int64            `json:"price"`
}

// BelongsTo возвращает true, если слот относится к площадке resourceID на дату date
func (s *TimeSlot) BelongsTo(resourceID string, date time.Time) bool {
	return s.ResourceID == resourceID && SameDate(s.Date, date)
}

// SameDate сравнивает только календарные дни
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly обнуляет время и приводит к UTC, сохраняя календарный день
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

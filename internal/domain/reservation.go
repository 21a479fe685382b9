package domain

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

// ReservationStatus статус брони
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// ReservationRequest снимок выбора, с которым открывается workflow
type ReservationRequest struct {
	UserID     string     `json:"userId"`
	ResourceID string     `json:"resourceId"`
	Date       time.Time  `json:"date"`
	SlotIDs    []string   `json:"slotIds"`
	Slots      []TimeSlot `json:"slots"`
	Total      int64      `json:"total"`
}

// Reservation зафиксированная бронь.
// Total всегда вычисляется из цен слотов (см. TotalOf).
type Reservation struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	CustomerName  string            `json:"customerName,omitempty"`
	ResourceID    string            `json:"resourceId"`
	Date          time.Time         `json:"date"`
	SlotIDs       []string          `json:"slotIds"`
	StartTime     types.TimeString  `json:"startTime"`
	EndTime       types.TimeString  `json:"endTime"`
	Total         int64             `json:"total"`
	Status        ReservationStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"paymentMethod,omitempty"`
	PaymentRef    *string           `json:"paymentRef,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// IsUpcoming подтвержденная бронь на сегодня или позже
func (r *Reservation) IsUpcoming(now time.Time) bool {
	return r.Status == ReservationConfirmed && !DateOnly(r.Date).Before(DateOnly(now))
}

// IsPast отмененная бронь или подтвержденная бронь на прошедшую дату
func (r *Reservation) IsPast(now time.Time) bool {
	return r.Status == ReservationCancelled ||
		(r.Status == ReservationConfirmed && DateOnly(r.Date).Before(DateOnly(now)))
}

// TotalOf сумма цен слотов
func TotalOf(slots []TimeSlot) int64 {
	var total int64
	for _, slot := range slots {
		total += slot.Price
	}
	return total
}

// TimeRangeOf самое раннее начало и самый поздний конец набора слотов
func TimeRangeOf(slots []TimeSlot) (types.TimeString, types.TimeString) {
	if len(slots) == 0 {
		return "", ""
	}
	start, end := slots[0].StartTime, slots[0].EndTime
	for _, slot := range slots[1:] {
		if slot.StartTime.IsBefore(start) {
			start = slot.StartTime
		}
		if slot.EndTime.IsAfter(end) {
			end = slot.EndTime
		}
	}
	return start, end
}

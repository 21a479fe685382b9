package notifier

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// ReservationConfirmedEvent событие подтверждения брони
type ReservationConfirmedEvent struct {
	ReservationID string    `json:"reservationId"`
	UserID        string    `json:"userId"`
	CustomerName  string    `json:"customerName"`
	ResourceID    string    `json:"resourceId"`
	Date          string    `json:"date"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	SlotIDs       []string  `json:"slotIds"`
	Total         int64     `json:"total"`
	ConfirmedAt   time.Time `json:"confirmedAt"`
}

// NewReservationConfirmedEvent собирает событие из подтвержденной брони
func NewReservationConfirmedEvent(r *domain.Reservation, at time.Time) ReservationConfirmedEvent {
	return ReservationConfirmedEvent{
		ReservationID: r.ID,
		UserID:        r.UserID,
		CustomerName:  r.CustomerName,
		ResourceID:    r.ResourceID,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		SlotIDs:       r.SlotIDs,
		Total:         r.Total,
		ConfirmedAt:   at.UTC(),
	}
}

package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrInvalidFilter возвращается при некорректном фильтре
	ErrInvalidFilter = errors.New("invalid reservations filter")
)

// Filter фильтр истории броней
type Filter string

const (
	FilterAll      Filter = ""
	FilterUpcoming Filter = "upcoming"
	FilterPast     Filter = "past"
)

// ParseFilter конвертирует строку из query в Filter
func ParseFilter(s string) (Filter, error) {
	switch Filter(s) {
	case FilterAll, FilterUpcoming, FilterPast:
		return Filter(s), nil
	default:
		return "", ErrInvalidFilter
	}
}

// Request модели

// GetUserReservationsRequest запрос истории броней пользователя
type GetUserReservationsRequest struct {
	UserID string `json:"userId"`
	Filter Filter `json:"filter,omitempty"`
}

// Response модели

// ReservationResponse ответ с данными брони
type ReservationResponse struct {
	ID            string   `json:"id"`
	UserID        string   `json:"userId"`
	CustomerName  string   `json:"customerName,omitempty"`
	ResourceID    string   `json:"resourceId"`
	Date          string   `json:"date"`      // "2024-06-01"
	StartTime     string   `json:"startTime"` // "10:00"
	EndTime       string   `json:"endTime"`
	SlotIDs       []string `json:"slotIds"`
	Total         int64    `json:"total"`
	Status        string   `json:"status"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	PaymentRef    *string  `json:"paymentRef,omitempty"`
	CreatedAt     string   `json:"createdAt,omitempty"`
}

// ReservationListResponse список броней
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Count        int                   `json:"count"`
}

// FromDomainReservation конвертирует domain.Reservation в ответ
func FromDomainReservation(r *domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		ID:            r.ID,
		UserID:        r.UserID,
		CustomerName:  r.CustomerName,
		ResourceID:    r.ResourceID,
		Date:          r.Date.Format(domain.DateFormat),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		SlotIDs:       r.SlotIDs,
		Total:         r.Total,
		Status:        string(r.Status),
		PaymentMethod: string(r.PaymentMethod),
		PaymentRef:    r.PaymentRef,
	}
	if !r.CreatedAt.IsZero() {
		resp.CreatedAt = r.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

// FromDomainReservationList конвертирует список броней
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	items := make([]ReservationResponse, 0, len(reservations))
	for _, r := range reservations {
		items = append(items, FromDomainReservation(r))
	}
	return &ReservationListResponse{Reservations: items, Count: len(items)}
}

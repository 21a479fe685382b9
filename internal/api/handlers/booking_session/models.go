package booking_session

import (
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/reservations/models"
)

// ToggleSlotRequest тело POST /sessions/{sessionId}/selection
type ToggleSlotRequest struct {
	SlotID string `json:"slotId"`
}

// ConfirmRequest тело POST /sessions/{sessionId}/confirm
type ConfirmRequest struct {
	Name string `json:"name"`
}

// SlotResponse выбранный слот
type SlotResponse struct {
	ID        string `json:"id"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Price     int64  `json:"price"`
}

// SelectionResponse текущий выбор слотов
type SelectionResponse struct {
	ResourceID string         `json:"resourceId,omitempty"`
	Date       string         `json:"date,omitempty"`
	Slots      []SlotResponse `json:"slots"`
	Total      int64          `json:"total"`
}

// RequestResponse снимок выбора, по которому идет оформление
type RequestResponse struct {
	ResourceID string   `json:"resourceId"`
	Date       string   `json:"date"`
	SlotIDs    []string `json:"slotIds"`
	Total      int64    `json:"total"`
}

// SessionResponse HTTP response model
type SessionResponse struct {
	ID           string                      `json:"id"`
	UserID       string                      `json:"userId"`
	State        string                      `json:"state"`
	Selection    SelectionResponse           `json:"selection"`
	Request      *RequestResponse            `json:"request,omitempty"`
	CustomerName string                      `json:"customerName,omitempty"`
	Reservation  *models.ReservationResponse `json:"reservation,omitempty"`
	LastError    string                      `json:"lastError,omitempty"`
	UpdatedAt    string                      `json:"updatedAt"`
}

// FromDomainSession конвертирует сессию в HTTP response
func FromDomainSession(sess *domain.BookingSession) *SessionResponse {
	resp := &SessionResponse{
		ID:           sess.ID,
		UserID:       sess.UserID,
		State:        string(sess.State),
		Selection:    fromSelection(sess.Selection),
		CustomerName: sess.CustomerName,
		LastError:    sess.LastError,
		UpdatedAt:    sess.UpdatedAt.Format(time.RFC3339),
	}

	if sess.Request != nil {
		resp.Request = &RequestResponse{
			ResourceID: sess.Request.ResourceID,
			Date:       sess.Request.Date.Format(domain.DateFormat),
			SlotIDs:    sess.Request.SlotIDs,
			Total:      sess.Request.Total,
		}
	}

	if sess.Reservation != nil {
		reservation := models.FromDomainReservation(sess.Reservation)
		resp.Reservation = &reservation
	}

	return resp
}

func fromSelection(sel *domain.SlotSelection) SelectionResponse {
	resp := SelectionResponse{Slots: make([]SlotResponse, 0)}
	if sel == nil || sel.IsEmpty() {
		return resp
	}

	resp.ResourceID = sel.ResourceID
	resp.Date = sel.Date.Format(domain.DateFormat)
	resp.Total = sel.Total()
	for _, slot := range sel.Slots {
		resp.Slots = append(resp.Slots, SlotResponse{
			ID:        slot.ID,
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
			Price:     slot.Price,
		})
	}
	return resp
}

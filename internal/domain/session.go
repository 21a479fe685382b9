package domain

import "time"

// WorkflowState состояние workflow бронирования
type WorkflowState string

const (
	StateIdle                 WorkflowState = "idle"
	StateAwaitingConfirmation WorkflowState = "awaiting_confirmation"
	StateAwaitingPayment      WorkflowState = "awaiting_payment"
	StateCompleted            WorkflowState = "completed"
	StateCancelled            WorkflowState = "cancelled"
)

// IsTerminal completed и cancelled выходят только через reset
func (s WorkflowState) IsTerminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// BookingSession контекст бронирования одного пользователя.
// Передается в операции workflow явно; временем жизни управляет вызывающая сессия.
type BookingSession struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	Selection    *SlotSelection      `json:"selection"`
	State        WorkflowState       `json:"state"`
	Request      *ReservationRequest `json:"request,omitempty"`
	CustomerName string              `json:"customerName,omitempty"`
	Reservation  *Reservation        `json:"reservation,omitempty"`
	LastError    string              `json:"lastError,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// NeedsReselection после конфликта слотов запрос сброшен, и выбор нужно собрать заново
func (s *BookingSession) NeedsReselection() bool {
	return s.State == StateAwaitingConfirmation && s.Request == nil
}

// SelectionEditable выбор можно менять в idle и после конфликта слотов
func (s *BookingSession) SelectionEditable() bool {
	return s.State == StateIdle || s.NeedsReselection()
}

// NewBookingSession создает пустую сессию в состоянии idle
func NewBookingSession(id, userID string, now time.Time) *BookingSession {
	return &BookingSession{
		ID:        id,
		UserID:    userID,
		Selection: NewSlotSelection(),
		State:     StateIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

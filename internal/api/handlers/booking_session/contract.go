package booking_session

import (
	"context"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// SessionService сервис сессий бронирования
type SessionService interface {
	Create(ctx context.Context, userID string) (*domain.BookingSession, error)
	Get(ctx context.Context, id, userID string) (*domain.BookingSession, error)
	ToggleSlot(ctx context.Context, id, userID, slotID string) (*domain.BookingSession, error)
	ClearSelection(ctx context.Context, id, userID string) (*domain.BookingSession, error)
	Open(ctx context.Context, id, userID string) (*domain.BookingSession, error)
	Confirm(ctx context.Context, id, userID, name string) (*domain.BookingSession, error)
	Pay(ctx context.Context, id, userID string, payment domain.Payment) (*domain.BookingSession, error)
	Cancel(ctx context.Context, id, userID string) (*domain.BookingSession, error)
	Reset(ctx context.Context, id, userID string) (*domain.BookingSession, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// SessionStore хранилище сессий бронирования
type SessionStore interface {
	Save(ctx context.Context, sess *domain.BookingSession) error
	Get(ctx context.Context, id string) (*domain.BookingSession, error)
}

// SlotCatalog интерфейс каталога слотов
type SlotCatalog interface {
	GetByIDs(ctx context.Context, slotIDs []string) ([]*domain.TimeSlot, error)
}

// Workflow конечный автомат бронирования
type Workflow interface {
	Open(sess *domain.BookingSession, req *domain.ReservationRequest) error
	Confirm(sess *domain.BookingSession, name string) error
	Pay(ctx context.Context, sess *domain.BookingSession, payment domain.Payment) error
	Cancel(sess *domain.BookingSession) error
	Reset(sess *domain.BookingSession) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

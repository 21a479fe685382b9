package workflow

import (
	"context"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/notifier"
)

// SlotCatalog атомарная пометка слотов занятыми
type SlotCatalog interface {
	MarkBooked(ctx context.Context, slotIDs []string) error
}

// ReservationRepository интерфейс репозитория броней
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
}

// PaymentProcessor интерфейс платежного шлюза
type PaymentProcessor interface {
	Charge(ctx context.Context, amount int64, payment domain.Payment) (string, error)
	Refund(ctx context.Context, ref string) error
}

// EventPublisher публикация событий подтверждения брони
type EventPublisher interface {
	PublishReservationConfirmed(ctx context.Context, event notifier.ReservationConfirmedEvent) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics счетчики исходов workflow
type Metrics interface {
	ObserveReservation(outcome string)
	ObserveSlotsBooked(count int)
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

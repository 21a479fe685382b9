package paymentgateway

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Simulator имитирует платежный шлюз: ждет latency и всегда списывает средства.
// Ожидание прерывается отменой контекста.
type Simulator struct {
	latency time.Duration
	log     Logger

	mu      sync.Mutex
	charges map[string]int64
}

// NewSimulator создает симулятор платежей
func NewSimulator(latency time.Duration, log Logger) *Simulator {
	return &Simulator{
		latency: latency,
		log:     log,
		charges: make(map[string]int64),
	}
}

// Charge списывает amount и возвращает ссылку на платеж
func (s *Simulator) Charge(ctx context.Context, amount int64, payment domain.Payment) (string, error) {
	if amount <= 0 {
		return "", ErrInvalidAmount
	}

	if err := s.wait(ctx); err != nil {
		return "", err
	}

	ref := "pay_" + uuid.NewString()

	s.mu.Lock()
	s.charges[ref] = amount
	s.mu.Unlock()

	s.log.Info("Payment charged: ref=%s, method=%s, amount=%d", ref, payment.Method, amount)
	return ref, nil
}

// Refund возвращает средства по ссылке платежа
func (s *Simulator) Refund(ctx context.Context, ref string) error {
	s.mu.Lock()
	amount, ok := s.charges[ref]
	delete(s.charges, ref)
	s.mu.Unlock()

	if !ok {
		return ErrUnknownCharge
	}

	s.log.Warn("Payment refunded: ref=%s, amount=%d", ref, amount)
	return nil
}

func (s *Simulator) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(s.latency)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/metrics"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/txmanager"
)

// Service конечный автомат бронирования.
// Состояние хранится в domain.BookingSession, сервис его не кеширует.
type Service struct {
	catalog      SlotCatalog
	reservations ReservationRepository
	payments     PaymentProcessor
	publisher    EventPublisher
	txManager    TransactionManager
	metrics      Metrics
	logger       Logger
	timeProvider TimeProvider
	newID        func() string
}

// NewService создает новый экземпляр сервиса workflow
func NewService(
	catalog SlotCatalog,
	reservations ReservationRepository,
	payments PaymentProcessor,
	publisher EventPublisher,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		catalog:      catalog,
		reservations: reservations,
		payments:     payments,
		publisher:    publisher,
		txManager:    txManager,
		metrics:      metrics,
		logger:       logger,
		timeProvider: timeProvider,
		newID:        uuid.NewString,
	}
}

// Open фиксирует снимок выбора и создает бронь в статусе pending
func (s *Service) Open(sess *domain.BookingSession, req *domain.ReservationRequest) error {
	to, err := s.transition(sess, EventOpen)
	if err != nil {
		return err
	}
	if sess.State == domain.StateAwaitingConfirmation && !sess.NeedsReselection() {
		return fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, EventOpen, sess.State)
	}

	if req == nil || len(req.Slots) == 0 {
		return domain.ErrEmptySelection
	}

	start, end := domain.TimeRangeOf(req.Slots)
	req.Total = domain.TotalOf(req.Slots)

	sess.Request = req
	sess.Reservation = &domain.Reservation{
		ID:         s.newID(),
		UserID:     req.UserID,
		ResourceID: req.ResourceID,
		Date:       req.Date,
		SlotIDs:    append([]string(nil), req.SlotIDs...),
		StartTime:  start,
		EndTime:    end,
		Total:      req.Total,
		Status:     domain.ReservationPending,
	}
	sess.CustomerName = ""
	sess.LastError = ""
	sess.State = to

	s.logger.Info("Open: session=%s, user=%s, resource=%s, date=%s, slots=%d, total=%d",
		sess.ID, req.UserID, req.ResourceID, req.Date.Format(domain.DateFormat), len(req.SlotIDs), req.Total)
	return nil
}

// Confirm сохраняет имя клиента и переводит workflow к оплате
func (s *Service) Confirm(sess *domain.BookingSession, name string) error {
	to, err := s.transition(sess, EventConfirm)
	if err != nil {
		return err
	}

	if sess.Request == nil {
		return ErrReselectionRequired
	}

	trimmed, err := validateName(name)
	if err != nil {
		sess.LastError = err.Error()
		return err
	}

	sess.CustomerName = trimmed
	sess.Reservation.CustomerName = trimmed
	sess.LastError = ""
	sess.State = to

	s.logger.Info("Confirm: session=%s, reservation=%s", sess.ID, sess.Reservation.ID)
	return nil
}

// Cancel из awaiting_confirmation отменяет бронь, из awaiting_payment возвращает к подтверждению
func (s *Service) Cancel(sess *domain.BookingSession) error {
	to, err := s.transition(sess, EventCancel)
	if err != nil {
		return err
	}

	switch to {
	case domain.StateCancelled:
		if sess.Reservation != nil {
			sess.Reservation.Status = domain.ReservationCancelled
		}
		sess.Request = nil
		s.metrics.ObserveReservation(metrics.OutcomeCancelled)
		s.logger.Info("Cancel: session=%s, reservation abandoned", sess.ID)
	case domain.StateAwaitingConfirmation:
		s.logger.Info("Cancel: session=%s, back to confirmation", sess.ID)
	}

	sess.LastError = ""
	sess.State = to
	return nil
}

// Reset возвращает завершенный или отмененный workflow в idle
func (s *Service) Reset(sess *domain.BookingSession) error {
	to, err := s.transition(sess, EventReset)
	if err != nil {
		return err
	}

	sess.Request = nil
	sess.Reservation = nil
	sess.CustomerName = ""
	sess.LastError = ""
	sess.Selection.Clear()
	sess.State = to
	return nil
}

// Pay проверяет данные оплаты, списывает сумму и в одной транзакции
// помечает слоты занятыми и сохраняет подтвержденную бронь.
// При конфликте слотов платеж возвращается, workflow переходит в awaiting_confirmation.
func (s *Service) Pay(ctx context.Context, sess *domain.BookingSession, payment domain.Payment) error {
	to, err := s.transition(sess, EventPay)
	if err != nil {
		return err
	}

	if err := validatePayment(payment); err != nil {
		s.logger.Warn("Pay: session=%s, validation failed: %v", sess.ID, err)
		s.metrics.ObserveReservation(metrics.OutcomeInvalidInput)
		sess.LastError = err.Error()
		return err
	}

	req := sess.Request
	ref, err := s.payments.Charge(ctx, req.Total, payment)
	if err != nil {
		s.metrics.ObserveReservation(metrics.OutcomePaymentFailed)
		if ctxErr := ctx.Err(); ctxErr != nil {
			s.logger.Warn("Pay: session=%s, aborted: %v", sess.ID, ctxErr)
			sess.LastError = ctxErr.Error()
			return ctxErr
		}
		s.logger.Warn("Pay: session=%s, charge failed: %v", sess.ID, err)
		sess.LastError = ErrPaymentFailed.Error()
		return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
	}

	reservation := *sess.Reservation
	reservation.SlotIDs = append([]string(nil), req.SlotIDs...)
	reservation.Status = domain.ReservationConfirmed
	reservation.PaymentMethod = payment.Method
	reservation.PaymentRef = &ref

	var created *domain.Reservation
	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		if err := s.catalog.MarkBooked(txCtx, req.SlotIDs); err != nil {
			return err
		}

		var createErr error
		created, createErr = s.reservations.Create(txCtx, &reservation)
		return createErr
	})

	if err != nil {
		s.refund(ctx, sess.ID, ref)
		return s.handleCommitError(sess, err)
	}

	sess.Reservation = created
	sess.Selection.Clear()
	sess.LastError = ""
	sess.State = to

	s.metrics.ObserveReservation(metrics.OutcomeCompleted)
	s.metrics.ObserveSlotsBooked(len(created.SlotIDs))
	s.logger.Info("Pay: session=%s, reservation=%s confirmed, slots=%v, total=%d",
		sess.ID, created.ID, created.SlotIDs, created.Total)

	event := notifier.NewReservationConfirmedEvent(created, s.timeProvider.Now())
	if err := s.publisher.PublishReservationConfirmed(ctx, event); err != nil {
		s.logger.Error("Pay: failed to publish reservation=%s: %v", created.ID, err)
	}

	return nil
}

// handleCommitError переводит конфликт слотов в awaiting_confirmation, остальное оставляет в awaiting_payment
func (s *Service) handleCommitError(sess *domain.BookingSession, err error) error {
	if errors.Is(err, txmanager.ErrSerializationFailure) {
		err = domain.NewSlotConflictError("")
	}

	if errors.Is(err, domain.ErrSlotConflict) {
		s.logger.Warn("Pay: session=%s, slot conflict: %v", sess.ID, err)
		s.metrics.ObserveReservation(metrics.OutcomeSlotConflict)
		dropConflicting(sess, err)
		sess.LastError = err.Error()
		sess.State = domain.StateAwaitingConfirmation
		return err
	}

	if errors.Is(err, domain.ErrSlotNotFound) {
		s.logger.Warn("Pay: session=%s, slot no longer exists: %v", sess.ID, err)
		sess.LastError = err.Error()
		return err
	}

	s.logger.Error("Pay: session=%s, commit failed: %v", sess.ID, err)
	sess.LastError = ErrInternal.Error()
	return fmt.Errorf("%w: commit reservation: %v", ErrInternal, err)
}

// dropConflicting сбрасывает запрос и убирает занятый слот из выбора.
// Если слот неизвестен (ошибка сериализации), выбор очищается целиком.
func dropConflicting(sess *domain.BookingSession, err error) {
	var conflict *domain.SlotConflictError
	if !errors.As(err, &conflict) || conflict.SlotID == "" || !sess.Selection.Remove(conflict.SlotID) {
		sess.Selection.Clear()
	}
	sess.Request = nil
	sess.Reservation = nil
	sess.CustomerName = ""
}

// refund возвращает платеж; отмена запроса не должна прерывать возврат
func (s *Service) refund(ctx context.Context, sessionID, ref string) {
	if err := s.payments.Refund(context.WithoutCancel(ctx), ref); err != nil {
		s.logger.Error("Pay: session=%s, refund of %s failed: %v", sessionID, ref, err)
	}
}

func (s *Service) transition(sess *domain.BookingSession, event Event) (domain.WorkflowState, error) {
	to, ok := CanTransition(sess.State, event)
	if !ok {
		return "", fmt.Errorf("%w: %s in state %s", ErrInvalidTransition, event, sess.State)
	}
	return to, nil
}

package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	sessionStore "github.com/m04kA/SMC-PlaygroundBooking/internal/infra/session"
)

// Service сервис сессий бронирования: загрузка, проверка владельца, операция, сохранение
type Service struct {
	store        SessionStore
	catalog      SlotCatalog
	workflow     Workflow
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса сессий
func NewService(
	store SessionStore,
	catalog SlotCatalog,
	workflow Workflow,
	logger Logger,
	timeProvider TimeProvider,
) *Service {
	return &Service{
		store:        store,
		catalog:      catalog,
		workflow:     workflow,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// Create создает пустую сессию пользователя
func (s *Service) Create(ctx context.Context, userID string) (*domain.BookingSession, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	sess := domain.NewBookingSession(uuid.NewString(), userID, s.timeProvider.Now())
	if err := s.store.Save(ctx, sess); err != nil {
		s.logger.Error("Create: failed to save session for user=%s: %v", userID, err)
		return nil, fmt.Errorf("%w: Create - save session: %v", ErrInternal, err)
	}

	s.logger.Info("Create: session=%s created for user=%s", sess.ID, userID)
	return sess, nil
}

// Get возвращает сессию владельца
func (s *Service) Get(ctx context.Context, id, userID string) (*domain.BookingSession, error) {
	return s.load(ctx, id, userID)
}

// ToggleSlot добавляет или убирает слот из выбора; доступно в idle и после конфликта слотов
func (s *Service) ToggleSlot(ctx context.Context, id, userID, slotID string) (*domain.BookingSession, error) {
	if strings.TrimSpace(slotID) == "" {
		return nil, fmt.Errorf("%w: slotID is required", ErrInvalidInput)
	}

	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		if !sess.SelectionEditable() {
			return ErrSelectionLocked
		}

		slots, err := s.catalog.GetByIDs(ctx, []string{slotID})
		if err != nil {
			if errors.Is(err, domain.ErrSlotNotFound) {
				return domain.ErrSlotNotFound
			}
			return fmt.Errorf("%w: ToggleSlot - get slot: %v", ErrInternal, err)
		}

		return sess.Selection.Toggle(slots[0])
	})
}

// ClearSelection очищает выбор (смена даты); доступно в idle и после конфликта слотов
func (s *Service) ClearSelection(ctx context.Context, id, userID string) (*domain.BookingSession, error) {
	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		if !sess.SelectionEditable() {
			return ErrSelectionLocked
		}
		sess.Selection.Clear()
		return nil
	})
}

// Open начинает оформление текущего выбора
func (s *Service) Open(ctx context.Context, id, userID string) (*domain.BookingSession, error) {
	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		if !sess.SelectionEditable() {
			return s.workflow.Open(sess, nil)
		}
		req, err := sess.Selection.ToReservationRequest(sess.UserID)
		if err != nil {
			return err
		}
		return s.workflow.Open(sess, req)
	})
}

// Confirm подтверждает бронь с именем клиента
func (s *Service) Confirm(ctx context.Context, id, userID, name string) (*domain.BookingSession, error) {
	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		return s.workflow.Confirm(sess, name)
	})
}

// Pay оплачивает и фиксирует бронь
func (s *Service) Pay(ctx context.Context, id, userID string, payment domain.Payment) (*domain.BookingSession, error) {
	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		return s.workflow.Pay(ctx, sess, payment)
	})
}

// Cancel отменяет текущий шаг оформления
func (s *Service) Cancel(ctx context.Context, id, userID string) (*domain.BookingSession, error) {
	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		return s.workflow.Cancel(sess)
	})
}

// Reset возвращает сессию в idle после завершения или отмены
func (s *Service) Reset(ctx context.Context, id, userID string) (*domain.BookingSession, error) {
	return s.mutate(ctx, id, userID, func(sess *domain.BookingSession) error {
		return s.workflow.Reset(sess)
	})
}

// mutate загружает сессию, применяет op и сохраняет результат.
// Сессия сохраняется и при ошибке op: workflow фиксирует в ней LastError и переходы при конфликте.
func (s *Service) mutate(ctx context.Context, id, userID string, op func(sess *domain.BookingSession) error) (*domain.BookingSession, error) {
	sess, err := s.load(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	opErr := op(sess)
	sess.UpdatedAt = s.timeProvider.Now()

	// сохраняем без отмены: оплата уже могла зафиксировать бронь
	if err := s.store.Save(context.WithoutCancel(ctx), sess); err != nil {
		s.logger.Error("mutate: failed to save session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: save session: %v", ErrInternal, err)
	}

	if opErr != nil {
		s.logger.Warn("session=%s, user=%s, state=%s: %v", id, userID, sess.State, opErr)
		return sess, opErr
	}

	return sess, nil
}

func (s *Service) load(ctx context.Context, id, userID string) (*domain.BookingSession, error) {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			s.logger.Warn("session=%s not found", id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("failed to load session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: load session: %v", ErrInternal, err)
	}

	if sess.UserID != userID {
		s.logger.Warn("access denied for user=%s to session=%s", userID, id)
		return nil, ErrAccessDenied
	}

	if sess.Selection == nil {
		sess.Selection = domain.NewSlotSelection()
	}

	return sess, nil
}

package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	catalog          SlotCatalog
	windowDays       int
	minNoticeMinutes int
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case.
// windowDays - сколько дней, включая сегодня, доступно для бронирования (0 - без ограничений).
func NewUseCase(catalog SlotCatalog, windowDays, minNoticeMinutes int, logger Logger) *UseCase {
	return &UseCase{
		catalog:          catalog,
		windowDays:       windowDays,
		minNoticeMinutes: minNoticeMinutes,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: user=%s, resource=%s, date=%s",
		req.UserID, req.ResourceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация даты относительно окна бронирования
	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now, uc.windowDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем свободные слоты из каталога
	slots, err := uc.catalog.ListAvailable(ctx, req.ResourceID, req.Date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list slots for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to list slots: %v", ErrInternal, err)
	}

	// 4. На сегодня убираем уже начавшиеся слоты
	slots, err = filterStartedSlots(slots, req.Date, now, uc.minNoticeMinutes)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to filter slots: %v", err)
		return nil, fmt.Errorf("%w: failed to filter slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GetAvailableSlots: found %d slots for resource=%s, date=%s",
		len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:       domain.DateOnly(req.Date),
		ResourceID: req.ResourceID,
		Slots:      slots,
	}, nil
}

package generate_slots

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// UseCase use case генерации слотов площадки на дату
type UseCase struct {
	catalog      SlotCatalog
	timeProvider TimeProvider
	logger       Logger
	newID        func() string
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(catalog SlotCatalog, logger Logger) *UseCase {
	return &UseCase{
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		newID:        uuid.NewString,
	}
}

// Execute генерирует слоты и добавляет в каталог те, которых там еще нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	applyDefaults(req)

	uc.logger.Info("GenerateSlots: resource=%s, date=%s, %s-%s, duration=%d, price=%d",
		req.ResourceID, req.Date.Format(domain.DateFormat), req.OpenTime, req.CloseTime, req.DurationMinutes, *req.Price)

	if err := validateRequest(req, uc.timeProvider.Now()); err != nil {
		uc.logger.Warn("GenerateSlots: validation failed: %v", err)
		return nil, err
	}

	slots, err := generateTimeSlots(
		req.ResourceID,
		req.Date,
		req.OpenTime,
		req.CloseTime,
		req.DurationMinutes,
		*req.Price,
		uc.newID,
	)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	created, err := uc.catalog.CreateBatch(ctx, slots)
	if err != nil {
		uc.logger.Error("GenerateSlots: failed to save slots for resource=%s: %v", req.ResourceID, err)
		return nil, fmt.Errorf("%w: failed to save slots: %v", ErrInternal, err)
	}

	uc.logger.Info("GenerateSlots: created %d of %d slots for resource=%s, date=%s",
		len(created), len(slots), req.ResourceID, req.Date.Format(domain.DateFormat))

	return &Response{
		ResourceID: req.ResourceID,
		Date:       domain.DateOnly(req.Date),
		Created:    created,
		Skipped:    len(slots) - len(created),
	}, nil
}

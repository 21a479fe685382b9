package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// Catalog каталог слотов в памяти.
// Один mutex защищает проверку и переключение IsBooked, поэтому MarkBooked атомарен.
type Catalog struct {
	mu    sync.Mutex
	slots map[string]*domain.TimeSlot
}

// NewCatalog создает пустой каталог
func NewCatalog() *Catalog {
	return &Catalog{slots: make(map[string]*domain.TimeSlot)}
}

// ListAvailable возвращает свободные слоты площадки на дату, отсортированные по времени начала
func (c *Catalog) ListAvailable(ctx context.Context, resourceID string, date time.Time) ([]*domain.TimeSlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]*domain.TimeSlot, 0)
	for _, slot := range c.slots {
		if slot.IsBooked || !slot.BelongsTo(resourceID, date) {
			continue
		}
		copied := *slot
		result = append(result, &copied)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].StartTime.IsBefore(result[j].StartTime)
	})

	return result, nil
}

// GetByIDs возвращает слоты по ID в порядке запроса; неизвестный ID - ErrSlotNotFound
func (c *Catalog) GetByIDs(ctx context.Context, slotIDs []string) ([]*domain.TimeSlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]*domain.TimeSlot, 0, len(slotIDs))
	for _, id := range slotIDs {
		slot, ok := c.slots[id]
		if !ok {
			return nil, ErrSlotNotFound
		}
		copied := *slot
		result = append(result, &copied)
	}
	return result, nil
}

// MarkBooked атомарно помечает все слоты занятыми.
// Если хотя бы один уже занят или не найден, ничего не меняется.
// Внутри TxManager бронь снимается при откате транзакции.
func (c *Catalog) MarkBooked(ctx context.Context, slotIDs []string) error {
	if len(slotIDs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range slotIDs {
		slot, ok := c.slots[id]
		if !ok {
			return ErrSlotNotFound
		}
		if slot.IsBooked {
			return domain.NewSlotConflictError(id)
		}
	}

	booked := make([]string, 0, len(slotIDs))
	for _, id := range slotIDs {
		if c.slots[id].IsBooked {
			continue
		}
		c.slots[id].IsBooked = true
		booked = append(booked, id)
	}

	if j, ok := journalFrom(ctx); ok {
		j.add(func() { c.release(booked) })
	}
	return nil
}

// release снимает бронь, поставленную этой же транзакцией
func (c *Catalog) release(slotIDs []string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, id := range slotIDs {
		if slot, ok := c.slots[id]; ok {
			slot.IsBooked = false
		}
	}
}

// CreateBatch добавляет слоты, пропуская уже существующие (по ID или по площадке+дате+времени).
// Возвращает реально добавленные слоты.
func (c *Catalog) CreateBatch(ctx context.Context, slots []*domain.TimeSlot) ([]*domain.TimeSlot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := make(map[string]struct{}, len(c.slots))
	for _, slot := range c.slots {
		existing[naturalKey(slot)] = struct{}{}
	}

	created := make([]*domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		if _, ok := c.slots[slot.ID]; ok {
			continue
		}
		key := naturalKey(slot)
		if _, ok := existing[key]; ok {
			continue
		}
		copied := *slot
		copied.Date = domain.DateOnly(slot.Date)
		c.slots[copied.ID] = &copied
		existing[key] = struct{}{}
		created = append(created, slot)
	}

	return created, nil
}

// naturalKey уникальный ключ (resource, date, start, end)
func naturalKey(slot *domain.TimeSlot) string {
	return slot.ResourceID + "|" + slot.Date.Format(domain.DateFormat) + "|" +
		slot.StartTime.String() + "|" + slot.EndTime.String()
}

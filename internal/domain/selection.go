package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// SlotSelection текущий (незафиксированный) выбор слотов пользователя.
// Инварианты: нет повторяющихся ID, все слоты одной площадки и даты, ни один не был занят при выборе.
type SlotSelection struct {
	ResourceID string      `json:"resourceId,omitempty"`
	Date       time.Time   `json:"date,omitempty"`
	Slots      []*TimeSlot `json:"slots"`
}

// NewSlotSelection создает пустой выбор
func NewSlotSelection() *SlotSelection {
	return &SlotSelection{Slots: make([]*TimeSlot, 0)}
}

// Toggle убирает слот, если он уже выбран, иначе добавляет.
// Добавление слота другой площадки/даты возвращает ErrHeterogeneousSelection,
// занятого слота - SlotConflictError.
func (s *SlotSelection) Toggle(slot *TimeSlot) error {
	if slot == nil || slot.ID == "" {
		return fmt.Errorf("%w: slot is required", ErrInvalidInput)
	}

	if s.Remove(slot.ID) {
		return nil
	}

	if slot.IsBooked {
		return NewSlotConflictError(slot.ID)
	}

	if len(s.Slots) > 0 && !slot.BelongsTo(s.ResourceID, s.Date) {
		return fmt.Errorf("%w: slot %s is for %s on %s, selection is for %s on %s",
			ErrHeterogeneousSelection,
			slot.ID, slot.ResourceID, slot.Date.Format(DateFormat),
			s.ResourceID, s.Date.Format(DateFormat))
	}

	if len(s.Slots) >= MaxSlotsPerReservation {
		return fmt.Errorf("%w: at most %d slots per reservation", ErrInvalidInput, MaxSlotsPerReservation)
	}

	if len(s.Slots) == 0 {
		s.ResourceID = slot.ResourceID
		s.Date = DateOnly(slot.Date)
	}
	s.Slots = append(s.Slots, slot)
	return nil
}

// Remove убирает слот из выбора; false, если слот не был выбран
func (s *SlotSelection) Remove(slotID string) bool {
	idx := s.indexOf(slotID)
	if idx < 0 {
		return false
	}

	s.Slots = append(s.Slots[:idx], s.Slots[idx+1:]...)
	if len(s.Slots) == 0 {
		s.ResourceID = ""
		s.Date = time.Time{}
	}
	return true
}

// Clear очищает выбор (при смене даты)
func (s *SlotSelection) Clear() {
	s.Slots = make([]*TimeSlot, 0)
	s.ResourceID = ""
	s.Date = time.Time{}
}

// Total сумма цен выбранных слотов, 0 для пустого выбора
func (s *SlotSelection) Total() int64 {
	var total int64
	for _, slot := range s.Slots {
		total += slot.Price
	}
	return total
}

// Len количество выбранных слотов
func (s *SlotSelection) Len() int {
	return len(s.Slots)
}

// IsEmpty возвращает true, если ничего не выбрано
func (s *SlotSelection) IsEmpty() bool {
	return len(s.Slots) == 0
}

// Contains проверяет, выбран ли слот
func (s *SlotSelection) Contains(slotID string) bool {
	return s.indexOf(slotID) >= 0
}

// SlotIDs ID слотов в порядке выбора
func (s *SlotSelection) SlotIDs() []string {
	ids := make([]string, len(s.Slots))
	for i, slot := range s.Slots {
		ids[i] = slot.ID
	}
	return ids
}

// ToReservationRequest фиксирует снимок выбора для workflow.
// Слоты в запросе упорядочены по времени начала.
func (s *SlotSelection) ToReservationRequest(userID string) (*ReservationRequest, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}
	if s.IsEmpty() {
		return nil, ErrEmptySelection
	}

	slots := make([]TimeSlot, len(s.Slots))
	for i, slot := range s.Slots {
		slots[i] = *slot
	}
	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].StartTime.IsBefore(slots[j].StartTime)
	})

	ids := make([]string, len(slots))
	for i, slot := range slots {
		ids[i] = slot.ID
	}

	return &ReservationRequest{
		UserID:     userID,
		ResourceID: s.ResourceID,
		Date:       s.Date,
		SlotIDs:    ids,
		Slots:      slots,
		Total:      s.Total(),
	}, nil
}

func (s *SlotSelection) indexOf(slotID string) int {
	for i, slot := range s.Slots {
		if slot.ID == slotID {
			return i
		}
	}
	return -1
}

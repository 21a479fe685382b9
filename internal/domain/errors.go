package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSlotConflict слот уже забронирован
	ErrSlotConflict = errors.New("slot is already booked")

	// ErrSlotNotFound слот не найден в каталоге
	ErrSlotNotFound = errors.New("slot not found")

	// ErrHeterogeneousSelection слот относится к другой площадке или дате, чем уже выбранные
	ErrHeterogeneousSelection = errors.New("selection must contain slots of a single resource and date")

	// ErrEmptySelection не выбрано ни одного слота
	ErrEmptySelection = errors.New("no slots selected")

	// ErrReservationNotFound бронь не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidInput некорректные входные данные
	ErrInvalidInput = errors.New("invalid input data")
)

// SlotConflictError называет конкретный занятый слот; errors.Is(err, ErrSlotConflict) == true
type SlotConflictError struct {
	SlotID string
}

func (e *SlotConflictError) Error() string {
	if e.SlotID == "" {
		return ErrSlotConflict.Error()
	}
	return fmt.Sprintf("%s: %s", ErrSlotConflict.Error(), e.SlotID)
}

func (e *SlotConflictError) Is(target error) bool {
	return target == ErrSlotConflict
}

// NewSlotConflictError создает ошибку конфликта для слота
func NewSlotConflictError(slotID string) error {
	return &SlotConflictError{SlotID: slotID}
}

package inmemory

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = fmt.Errorf("inmemory: %w", domain.ErrSlotNotFound)

	// ErrReservationNotFound возвращается, когда бронь не найдена
	ErrReservationNotFound = fmt.Errorf("inmemory: %w", domain.ErrReservationNotFound)

	// ErrDuplicateReservation возвращается при повторном сохранении брони с тем же ID
	ErrDuplicateReservation = errors.New("inmemory: reservation already exists")
)

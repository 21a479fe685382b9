package get_reservation

import (
	"context"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/reservations/models"
)

type ReservationService interface {
	GetReservation(ctx context.Context, id, userID string) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/reservations/models"
)

// Service сервис истории броней
type Service struct {
	repo         ReservationRepository
	logger       Logger
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса броней
func NewService(repo ReservationRepository, logger Logger, timeProvider TimeProvider) *Service {
	return &Service{
		repo:         repo,
		logger:       logger,
		timeProvider: timeProvider,
	}
}

// GetUserReservations возвращает брони пользователя.
// upcoming - подтвержденные на сегодня и позже, past - прошедшие подтвержденные и отмененные.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest) (*models.ReservationListResponse, error) {
	if strings.TrimSpace(req.UserID) == "" {
		return nil, fmt.Errorf("%w: userID is required", ErrInvalidInput)
	}

	s.logger.Info("GetUserReservations: fetching reservations for user=%s, filter=%q", req.UserID, req.Filter)

	var statuses []domain.ReservationStatus
	if req.Filter == models.FilterUpcoming {
		statuses = []domain.ReservationStatus{domain.ReservationConfirmed}
	}

	reservations, err := s.repo.GetByUserID(ctx, req.UserID, statuses)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%s: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	filtered := make([]*domain.Reservation, 0, len(reservations))
	for _, r := range reservations {
		switch req.Filter {
		case models.FilterUpcoming:
			if !r.IsUpcoming(now) {
				continue
			}
		case models.FilterPast:
			if !r.IsPast(now) {
				continue
			}
		}
		filtered = append(filtered, r)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%s", len(filtered), req.UserID)
	return models.FromDomainReservationList(filtered), nil
}

// GetReservation возвращает бронь владельца
func (s *Service) GetReservation(ctx context.Context, id, userID string) (*models.ReservationResponse, error) {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: reservationID and userID are required", ErrInvalidInput)
	}

	reservation, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrReservationNotFound) {
			s.logger.Warn("GetReservation: reservation=%s not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetReservation: repository error for reservation=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetReservation - repository error: %v", ErrInternal, err)
	}

	// Пользователь видит только свои брони
	if reservation.UserID != userID {
		s.logger.Warn("GetReservation: access denied for user=%s to reservation=%s", userID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainReservation(reservation)
	return &resp, nil
}

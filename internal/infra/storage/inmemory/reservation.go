package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

// ReservationRepository хранилище броней в памяти
type ReservationRepository struct {
	mu           sync.RWMutex
	reservations map[string]*domain.Reservation
	now          func() time.Time
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		reservations: make(map[string]*domain.Reservation),
		now:          time.Now,
	}
}

// Create сохраняет бронь, проставляя CreatedAt/UpdatedAt
func (r *ReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.reservations[reservation.ID]; ok {
		return nil, ErrDuplicateReservation
	}

	now := r.now()
	stored := cloneReservation(reservation)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.reservations[stored.ID] = stored

	if j, ok := journalFrom(ctx); ok {
		j.add(func() { r.remove(stored.ID) })
	}

	return cloneReservation(stored), nil
}

// GetByID получает бронь по ID
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	reservation, ok := r.reservations[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	return cloneReservation(reservation), nil
}

func (r *ReservationRepository) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reservations, id)
}

// GetByUserID брони пользователя, сначала самые поздние; statuses пустой - все статусы
func (r *ReservationRepository) GetByUserID(ctx context.Context, userID string, statuses []domain.ReservationStatus) ([]*domain.Reservation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Reservation, 0)
	for _, reservation := range r.reservations {
		if reservation.UserID != userID || !hasStatus(statuses, reservation.Status) {
			continue
		}
		result = append(result, cloneReservation(reservation))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Date.Equal(result[j].Date) {
			return result[i].Date.After(result[j].Date)
		}
		return result[i].StartTime.IsAfter(result[j].StartTime)
	})

	return result, nil
}

func hasStatus(statuses []domain.ReservationStatus, status domain.ReservationStatus) bool {
	if len(statuses) == 0 {
		return true
	}
	for _, s := range statuses {
		if s == status {
			return true
		}
	}
	return false
}

func cloneReservation(src *domain.Reservation) *domain.Reservation {
	copied := *src
	copied.SlotIDs = append([]string(nil), src.SlotIDs...)
	if src.PaymentRef != nil {
		ref := *src.PaymentRef
		copied.PaymentRef = &ref
	}
	return &copied
}

package inmemory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

func TestTxManager_RollbackReleasesBookedSlots(t *testing.T) {
	catalog := seededCatalog(t, 4)
	repo := NewReservationRepository()
	tx := NewTxManager()
	ctx := context.Background()
	boom := errors.New("boom")

	err := tx.DoSerializable(ctx, func(txCtx context.Context) error {
		require.NoError(t, catalog.MarkBooked(txCtx, []string{"S1", "S2"}))
		_, err := repo.Create(txCtx, &domain.Reservation{ID: "r1", UserID: "u1", SlotIDs: []string{"S1", "S2"}})
		require.NoError(t, err)
		return boom
	})

	assert.ErrorIs(t, err, boom)
	available, _ := catalog.ListAvailable(ctx, "pg1", testDate)
	assert.Len(t, available, 4)
	_, err = repo.GetByID(ctx, "r1")
	assert.ErrorIs(t, err, ErrReservationNotFound)

	// после отката те же слоты снова можно забронировать
	require.NoError(t, catalog.MarkBooked(ctx, []string{"S1", "S2"}))
}

func TestTxManager_RollbackKeepsOtherBookings(t *testing.T) {
	catalog := seededCatalog(t, 4)
	tx := NewTxManager()
	ctx := context.Background()
	require.NoError(t, catalog.MarkBooked(ctx, []string{"S3"}))

	_ = tx.DoSerializable(ctx, func(txCtx context.Context) error {
		require.NoError(t, catalog.MarkBooked(txCtx, []string{"S1"}))
		return catalog.MarkBooked(txCtx, []string{"S3"})
	})

	slots, err := catalog.GetByIDs(ctx, []string{"S1", "S3"})
	require.NoError(t, err)
	assert.False(t, slots[0].IsBooked)
	assert.True(t, slots[1].IsBooked)
}

func TestTxManager_CommitAndNested(t *testing.T) {
	catalog := seededCatalog(t, 2)
	tx := NewTxManager()
	ctx := context.Background()

	err := tx.Do(ctx, func(txCtx context.Context) error {
		return tx.DoSerializable(txCtx, func(inner context.Context) error {
			return catalog.MarkBooked(inner, []string{"S1"})
		})
	})

	require.NoError(t, err)
	available, _ := catalog.ListAvailable(ctx, "pg1", testDate)
	assert.Len(t, available, 1)
}

func TestTxManager_CancelledContext(t *testing.T) {
	catalog := seededCatalog(t, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTxManager().DoSerializable(ctx, func(txCtx context.Context) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	available, _ := catalog.ListAvailable(context.Background(), "pg1", testDate)
	assert.Len(t, available, 2)
}

func TestCatalog_MarkBookedDuplicateIDs(t *testing.T) {
	catalog := seededCatalog(t, 2)
	ctx := context.Background()

	require.NoError(t, catalog.MarkBooked(ctx, []string{"S1", "S1"}))

	slots, _ := catalog.GetByIDs(ctx, []string{"S1"})
	assert.True(t, slots[0].IsBooked)
}

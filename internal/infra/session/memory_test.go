package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
)

func TestMemoryStore_SaveGetIsolated(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	sess := domain.NewBookingSession("s1", "u1", time.Now().UTC())
	sess.CustomerName = "Asha"
	require.NoError(t, store.Save(ctx, sess))

	sess.CustomerName = "changed after save"

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Asha", got.CustomerName)
	assert.Equal(t, domain.StateIdle, got.State)
	assert.True(t, got.Selection.IsEmpty())
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	current := time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewBookingSession("s1", "u1", current)))

	current = current.Add(30 * time.Second)
	_, err := store.Get(ctx, "s1")
	require.NoError(t, err)

	current = current.Add(2 * time.Minute)
	_, err = store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_Delete(t *testing.T) {
	store := NewMemoryStore(0)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, domain.NewBookingSession("s1", "u1", time.Now())))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

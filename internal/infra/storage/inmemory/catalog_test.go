package inmemory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newSlot(id string, hour int) *domain.TimeSlot {
	start, _ := types.NewTimeStringFromMinutes(hour * 60)
	end, _ := types.NewTimeStringFromMinutes((hour + 1) * 60)
	return &domain.TimeSlot{
		ID:         id,
		ResourceID: "pg1",
		Date:       testDate,
		StartTime:  start,
		EndTime:    end,
		Price:      domain.DefaultSlotPrice,
	}
}

func seededCatalog(t *testing.T, n int) *Catalog {
	t.Helper()
	c := NewCatalog()
	slots := make([]*domain.TimeSlot, 0, n)
	for i := n - 1; i >= 0; i-- {
		slots = append(slots, newSlot(fmt.Sprintf("S%d", i+1), 10+i))
	}
	created, err := c.CreateBatch(context.Background(), slots)
	require.NoError(t, err)
	require.Len(t, created, n)
	return c
}

func TestCatalog_ListAvailableSortedAndFiltered(t *testing.T) {
	c := seededCatalog(t, 8)
	ctx := context.Background()

	require.NoError(t, c.MarkBooked(ctx, []string{"S3"}))

	slots, err := c.ListAvailable(ctx, "pg1", testDate)
	require.NoError(t, err)
	require.Len(t, slots, 7)
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].StartTime.IsBefore(slots[i].StartTime))
	}
	for _, slot := range slots {
		assert.NotEqual(t, "S3", slot.ID)
		assert.False(t, slot.IsBooked)
	}

	other, err := c.ListAvailable(ctx, "pg2", testDate)
	require.NoError(t, err)
	assert.Empty(t, other)

	nextDay, err := c.ListAvailable(ctx, "pg1", testDate.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, nextDay)
}

func TestCatalog_ListAvailableReturnsCopies(t *testing.T) {
	c := seededCatalog(t, 1)
	ctx := context.Background()

	slots, err := c.ListAvailable(ctx, "pg1", testDate)
	require.NoError(t, err)
	slots[0].IsBooked = true

	again, err := c.ListAvailable(ctx, "pg1", testDate)
	require.NoError(t, err)
	assert.Len(t, again, 1)
}

func TestCatalog_MarkBooked(t *testing.T) {
	ctx := context.Background()

	t.Run("empty set is a no-op", func(t *testing.T) {
		c := seededCatalog(t, 2)
		require.NoError(t, c.MarkBooked(ctx, nil))
		slots, _ := c.ListAvailable(ctx, "pg1", testDate)
		assert.Len(t, slots, 2)
	})

	t.Run("unknown slot", func(t *testing.T) {
		c := seededCatalog(t, 2)
		err := c.MarkBooked(ctx, []string{"S1", "missing"})
		assert.ErrorIs(t, err, domain.ErrSlotNotFound)
		slots, _ := c.ListAvailable(ctx, "pg1", testDate)
		assert.Len(t, slots, 2)
	})

	t.Run("conflict leaves everything untouched", func(t *testing.T) {
		c := seededCatalog(t, 3)
		require.NoError(t, c.MarkBooked(ctx, []string{"S2"}))

		err := c.MarkBooked(ctx, []string{"S1", "S2", "S3"})

		var conflict *domain.SlotConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "S2", conflict.SlotID)

		slots, _ := c.ListAvailable(ctx, "pg1", testDate)
		assert.Len(t, slots, 2)
	})
}

func TestCatalog_ConcurrentMarkBookedExactlyOneWins(t *testing.T) {
	for round := 0; round < 20; round++ {
		c := seededCatalog(t, 4)
		ctx := context.Background()

		sets := [][]string{{"S1", "S2"}, {"S2", "S3"}}
		errs := make([]error, len(sets))

		var wg sync.WaitGroup
		start := make(chan struct{})
		for i, set := range sets {
			wg.Add(1)
			go func(i int, set []string) {
				defer wg.Done()
				<-start
				errs[i] = c.MarkBooked(ctx, set)
			}(i, set)
		}
		close(start)
		wg.Wait()

		var wins, conflicts int
		for _, err := range errs {
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, domain.ErrSlotConflict):
				conflicts++
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, 1, conflicts)

		booked, err := c.GetByIDs(ctx, []string{"S1", "S2", "S3"})
		require.NoError(t, err)
		if errs[0] == nil {
			assert.True(t, booked[0].IsBooked)
			assert.False(t, booked[2].IsBooked)
		} else {
			assert.False(t, booked[0].IsBooked)
			assert.True(t, booked[2].IsBooked)
		}
		assert.True(t, booked[1].IsBooked)
	}
}

func TestCatalog_CreateBatchSkipsDuplicates(t *testing.T) {
	c := seededCatalog(t, 2)

	dupID := newSlot("S1", 15)
	dupKey := newSlot("X1", 10)
	fresh := newSlot("S9", 17)

	created, err := c.CreateBatch(context.Background(), []*domain.TimeSlot{dupID, dupKey, fresh})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "S9", created[0].ID)
}

func TestCatalog_GetByIDs(t *testing.T) {
	c := seededCatalog(t, 3)

	slots, err := c.GetByIDs(context.Background(), []string{"S3", "S1"})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "S3", slots[0].ID)
	assert.Equal(t, "S1", slots[1].ID)

	_, err = c.GetByIDs(context.Background(), []string{"nope"})
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestCatalog_CancelledContext(t *testing.T) {
	c := seededCatalog(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.MarkBooked(ctx, []string{"S1"})
	assert.ErrorIs(t, err, context.Canceled)

	slots, _ := c.GetByIDs(context.Background(), []string{"S1"})
	assert.False(t, slots[0].IsBooked)
}

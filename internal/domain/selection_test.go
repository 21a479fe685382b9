package domain

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newSlot(id string, hour int, price int64) *TimeSlot {
	start, _ := types.NewTimeStringFromMinutes(hour * 60)
	end, _ := types.NewTimeStringFromMinutes((hour + 1) * 60)
	return &TimeSlot{
		ID:         id,
		ResourceID: "pg1",
		Date:       testDate,
		StartTime:  start,
		EndTime:    end,
		Price:      price,
	}
}

func TestSlotSelection_ToggleAddsAndRemoves(t *testing.T) {
	sel := NewSlotSelection()
	s1 := newSlot("S1", 10, 1500)
	s2 := newSlot("S2", 11, 1500)

	require.NoError(t, sel.Toggle(s1))
	require.NoError(t, sel.Toggle(s2))
	assert.Equal(t, int64(3000), sel.Total())
	assert.Equal(t, []string{"S1", "S2"}, sel.SlotIDs())
	assert.Equal(t, "pg1", sel.ResourceID)

	require.NoError(t, sel.Toggle(s1))
	assert.Equal(t, []string{"S2"}, sel.SlotIDs())
	assert.Equal(t, int64(1500), sel.Total())

	require.NoError(t, sel.Toggle(s2))
	assert.True(t, sel.IsEmpty())
	assert.Equal(t, int64(0), sel.Total())
	assert.Empty(t, sel.ResourceID)
}

func TestSlotSelection_ToggleParity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for round := 0; round < 50; round++ {
		slots := make([]*TimeSlot, 8)
		for i := range slots {
			slots[i] = newSlot(fmt.Sprintf("S%d", i), 10+i, int64(100*(i+1)))
		}

		sel := NewSlotSelection()
		counts := make(map[string]int)
		for step := 0; step < 40; step++ {
			slot := slots[rng.Intn(len(slots))]
			require.NoError(t, sel.Toggle(slot))
			counts[slot.ID]++
		}

		var wantTotal int64
		wantIDs := make(map[string]bool)
		for _, slot := range slots {
			if counts[slot.ID]%2 == 1 {
				wantIDs[slot.ID] = true
				wantTotal += slot.Price
			}
		}

		assert.Equal(t, len(wantIDs), sel.Len())
		for id := range wantIDs {
			assert.True(t, sel.Contains(id), "slot %s toggled an odd number of times", id)
		}
		assert.Equal(t, wantTotal, sel.Total())
	}
}

func TestSlotSelection_Heterogeneous(t *testing.T) {
	sel := NewSlotSelection()
	require.NoError(t, sel.Toggle(newSlot("S1", 10, 1500)))

	otherResource := newSlot("X1", 11, 900)
	otherResource.ResourceID = "pg2"
	err := sel.Toggle(otherResource)
	assert.ErrorIs(t, err, ErrHeterogeneousSelection)

	otherDate := newSlot("X2", 11, 1500)
	otherDate.Date = testDate.AddDate(0, 0, 1)
	err = sel.Toggle(otherDate)
	assert.ErrorIs(t, err, ErrHeterogeneousSelection)

	assert.Equal(t, []string{"S1"}, sel.SlotIDs())
}

func TestSlotSelection_BookedSlotRejected(t *testing.T) {
	sel := NewSlotSelection()
	booked := newSlot("S1", 10, 1500)
	booked.IsBooked = true

	err := sel.Toggle(booked)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "S1", conflict.SlotID)
	assert.True(t, sel.IsEmpty())
}

func TestSlotSelection_ClearAllowsNewDate(t *testing.T) {
	sel := NewSlotSelection()
	require.NoError(t, sel.Toggle(newSlot("S1", 10, 1500)))

	sel.Clear()
	assert.True(t, sel.IsEmpty())

	nextDay := newSlot("T1", 10, 1500)
	nextDay.Date = testDate.AddDate(0, 0, 1)
	require.NoError(t, sel.Toggle(nextDay))
	assert.True(t, SameDate(nextDay.Date, sel.Date))
}

func TestSlotSelection_ToReservationRequest(t *testing.T) {
	sel := NewSlotSelection()

	_, err := sel.ToReservationRequest("u1")
	assert.ErrorIs(t, err, ErrEmptySelection)

	require.NoError(t, sel.Toggle(newSlot("S2", 11, 1500)))
	require.NoError(t, sel.Toggle(newSlot("S1", 10, 1500)))

	_, err = sel.ToReservationRequest("  ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	req, err := sel.ToReservationRequest("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", req.UserID)
	assert.Equal(t, "pg1", req.ResourceID)
	assert.Equal(t, []string{"S1", "S2"}, req.SlotIDs)
	assert.Equal(t, int64(3000), req.Total)
	assert.Equal(t, req.Total, TotalOf(req.Slots))
}

func TestSlotSelection_Remove(t *testing.T) {
	sel := NewSlotSelection()
	require.NoError(t, sel.Toggle(newSlot("S1", 10, 1500)))
	require.NoError(t, sel.Toggle(newSlot("S2", 11, 1500)))

	assert.True(t, sel.Remove("S2"))
	assert.False(t, sel.Remove("S2"))
	assert.Equal(t, []string{"S1"}, sel.SlotIDs())

	assert.True(t, sel.Remove("S1"))
	assert.True(t, sel.IsEmpty())
	assert.Empty(t, sel.ResourceID)
	assert.True(t, sel.Date.IsZero())
}

func TestBookingSession_NeedsReselection(t *testing.T) {
	sess := NewBookingSession("s1", "u1", testDate)
	assert.False(t, sess.NeedsReselection())
	assert.True(t, sess.SelectionEditable())

	sess.State = StateAwaitingConfirmation
	sess.Request = &ReservationRequest{UserID: "u1"}
	assert.False(t, sess.NeedsReselection())
	assert.False(t, sess.SelectionEditable())

	sess.Request = nil
	assert.True(t, sess.NeedsReselection())
	assert.True(t, sess.SelectionEditable())

	sess.State = StateAwaitingPayment
	assert.False(t, sess.SelectionEditable())
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotConflictError(t *testing.T) {
	err := NewSlotConflictError("S1")

	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Contains(t, err.Error(), "S1")

	var conflict *SlotConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "S1", conflict.SlotID)
}

func TestReservation_UpcomingAndPast(t *testing.T) {
	now := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)

	today := &Reservation{Status: ReservationConfirmed, Date: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}
	yesterday := &Reservation{Status: ReservationConfirmed, Date: time.Date(2024, 6, 9, 0, 0, 0, 0, time.UTC)}
	cancelled := &Reservation{Status: ReservationCancelled, Date: time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC)}

	assert.True(t, today.IsUpcoming(now))
	assert.False(t, today.IsPast(now))
	assert.True(t, yesterday.IsPast(now))
	assert.False(t, yesterday.IsUpcoming(now))
	assert.True(t, cancelled.IsPast(now))
	assert.False(t, cancelled.IsUpcoming(now))
}

func TestTimeRangeOf(t *testing.T) {
	slots := []TimeSlot{
		{StartTime: "11:00", EndTime: "12:00"},
		{StartTime: "10:00", EndTime: "11:00"},
		{StartTime: "14:00", EndTime: "15:00"},
	}

	start, end := TimeRangeOf(slots)
	assert.Equal(t, "10:00", start.String())
	assert.Equal(t, "15:00", end.String())
	assert.Equal(t, int64(0), TotalOf(nil))
}

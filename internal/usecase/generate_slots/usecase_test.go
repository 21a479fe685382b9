package generate_slots

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/inmemory"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

var today = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(catalog SlotCatalog) *UseCase {
	uc := NewUseCase(catalog, nopLogger{})
	uc.timeProvider = fixedTime{now: today.Add(8 * time.Hour)}
	n := 0
	uc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return uc
}

func TestUseCase_DefaultsMatchPlaygroundDay(t *testing.T) {
	catalog := inmemory.NewCatalog()
	uc := newUseCase(catalog)

	resp, err := uc.Execute(context.Background(), &Request{ResourceID: "pg1", Date: today})

	require.NoError(t, err)
	require.Len(t, resp.Created, 8)
	assert.Equal(t, 0, resp.Skipped)
	assert.Equal(t, types.TimeString("10:00"), resp.Created[0].StartTime)
	assert.Equal(t, types.TimeString("18:00"), resp.Created[7].EndTime)
	for _, slot := range resp.Created {
		assert.Equal(t, int64(domain.DefaultSlotPrice), slot.Price)
		assert.False(t, slot.IsBooked)
	}

	available, err := catalog.ListAvailable(context.Background(), "pg1", today)
	require.NoError(t, err)
	assert.Len(t, available, 8)
}

func TestUseCase_Idempotent(t *testing.T) {
	catalog := inmemory.NewCatalog()
	uc := newUseCase(catalog)
	ctx := context.Background()

	_, err := uc.Execute(ctx, &Request{ResourceID: "pg1", Date: today})
	require.NoError(t, err)

	resp, err := uc.Execute(ctx, &Request{ResourceID: "pg1", Date: today})
	require.NoError(t, err)
	assert.Empty(t, resp.Created)
	assert.Equal(t, 8, resp.Skipped)
}

func TestUseCase_CustomRangeDropsShortTail(t *testing.T) {
	uc := newUseCase(inmemory.NewCatalog())
	price := int64(0)

	resp, err := uc.Execute(context.Background(), &Request{
		ResourceID:      "pg2",
		Date:            today.AddDate(0, 0, 1),
		OpenTime:        "09:00",
		CloseTime:       "11:10",
		DurationMinutes: 30,
		Price:           &price,
	})

	require.NoError(t, err)
	require.Len(t, resp.Created, 4)
	assert.Equal(t, types.TimeString("10:30"), resp.Created[3].StartTime)
	assert.Equal(t, int64(0), resp.Created[0].Price)
}

func TestUseCase_Validation(t *testing.T) {
	uc := newUseCase(inmemory.NewCatalog())
	ctx := context.Background()
	negative := int64(-1)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"missing resource", Request{Date: today}, ErrInvalidInput},
		{"missing date", Request{ResourceID: "pg1"}, ErrInvalidInput},
		{"past date", Request{ResourceID: "pg1", Date: today.AddDate(0, 0, -1)}, ErrInvalidDate},
		{"inverted range", Request{ResourceID: "pg1", Date: today, OpenTime: "18:00", CloseTime: "10:00"}, ErrInvalidTimeRange},
		{"bad time", Request{ResourceID: "pg1", Date: today, OpenTime: "25:00"}, ErrInvalidInput},
		{"short duration", Request{ResourceID: "pg1", Date: today, DurationMinutes: 5}, ErrInvalidInput},
		{"negative price", Request{ResourceID: "pg1", Date: today, Price: &negative}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			_, err := uc.Execute(ctx, &req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

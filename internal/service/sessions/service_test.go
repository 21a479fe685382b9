package sessions

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/session"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/inmemory"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/notifier"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/integrations/paymentgateway"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/workflow"
	"github.com/m04kA/SMC-PlaygroundBooking/pkg/types"
)

var testDate = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopMetrics struct{}

func (nopMetrics) ObserveReservation(outcome string) {}
func (nopMetrics) ObserveSlotsBooked(count int)      {}

func newService(t *testing.T) (*Service, *inmemory.Catalog) {
	t.Helper()

	catalog := inmemory.NewCatalog()
	slots := []*domain.TimeSlot{}
	for i := 0; i < 8; i++ {
		start, _ := types.NewTimeStringFromMinutes((10 + i) * 60)
		end, _ := types.NewTimeStringFromMinutes((11 + i) * 60)
		slots = append(slots, &domain.TimeSlot{
			ID: fmt.Sprintf("S%d", i+1), ResourceID: "pg1", Date: testDate,
			StartTime: start, EndTime: end, Price: domain.DefaultSlotPrice,
		})
	}
	other := &domain.TimeSlot{
		ID: "T1", ResourceID: "pg1", Date: testDate.AddDate(0, 0, 1),
		StartTime: "10:00", EndTime: "11:00", Price: domain.DefaultSlotPrice,
	}
	_, err := catalog.CreateBatch(context.Background(), append(slots, other))
	require.NoError(t, err)

	clock := fixedTime{now: testDate.Add(8 * time.Hour)}
	wf := workflow.NewService(
		catalog,
		inmemory.NewReservationRepository(),
		paymentgateway.NewSimulator(0, nopLogger{}),
		notifier.Noop{},
		inmemory.NewTxManager(),
		nopMetrics{},
		nopLogger{},
		clock,
	)

	return NewService(session.NewMemoryStore(time.Hour), catalog, wf, nopLogger{}, clock), catalog
}

func TestService_FullFlow(t *testing.T) {
	svc, catalog := newService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.ToggleSlot(ctx, sess.ID, "u1", "S1")
	require.NoError(t, err)
	sess, err = svc.ToggleSlot(ctx, sess.ID, "u1", "S2")
	require.NoError(t, err)
	assert.Equal(t, int64(3000), sess.Selection.Total())

	sess, err = svc.Open(ctx, sess.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingConfirmation, sess.State)

	_, err = svc.ToggleSlot(ctx, sess.ID, "u1", "S3")
	assert.ErrorIs(t, err, ErrSelectionLocked)

	_, err = svc.Confirm(ctx, sess.ID, "u1", "Asha")
	require.NoError(t, err)

	sess, err = svc.Pay(ctx, sess.ID, "u1", domain.Payment{Method: domain.PaymentUPI, TransferID: "asha@upi"})
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, sess.State)

	stored, err := svc.Get(ctx, sess.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, stored.State)
	assert.Equal(t, domain.ReservationConfirmed, stored.Reservation.Status)

	available, _ := catalog.ListAvailable(ctx, "pg1", testDate)
	assert.Len(t, available, 6)

	sess, err = svc.Reset(ctx, sess.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateIdle, sess.State)
}

func TestService_InvalidPaymentPersistsLastError(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sess, _ := svc.Create(ctx, "u1")
	_, err := svc.ToggleSlot(ctx, sess.ID, "u1", "S1")
	require.NoError(t, err)
	_, err = svc.Open(ctx, sess.ID, "u1")
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, sess.ID, "u1", "Asha")
	require.NoError(t, err)

	_, err = svc.Pay(ctx, sess.ID, "u1", domain.Payment{Method: domain.PaymentUPI, TransferID: "no-at"})
	assert.ErrorIs(t, err, workflow.ErrInvalidTransferID)

	stored, err := svc.Get(ctx, sess.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.StateAwaitingPayment, stored.State)
	assert.NotEmpty(t, stored.LastError)
}

func TestService_Ownership(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sess, err := svc.Create(ctx, "u1")
	require.NoError(t, err)

	_, err = svc.Get(ctx, sess.ID, "intruder")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.ToggleSlot(ctx, sess.ID, "intruder", "S1")
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(ctx, "missing", "u1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_ToggleErrors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	sess, _ := svc.Create(ctx, "u1")

	_, err := svc.ToggleSlot(ctx, sess.ID, "u1", "nope")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)

	_, err = svc.ToggleSlot(ctx, sess.ID, "u1", "")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.ToggleSlot(ctx, sess.ID, "u1", "S1")
	require.NoError(t, err)

	_, err = svc.ToggleSlot(ctx, sess.ID, "u1", "T1")
	assert.ErrorIs(t, err, domain.ErrHeterogeneousSelection)

	sess, err = svc.ClearSelection(ctx, sess.ID, "u1")
	require.NoError(t, err)
	assert.True(t, sess.Selection.IsEmpty())

	sess, err = svc.ToggleSlot(ctx, sess.ID, "u1", "T1")
	require.NoError(t, err)
	assert.Equal(t, []string{"T1"}, sess.Selection.SlotIDs())
}

func TestService_OpenEmptySelection(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	sess, _ := svc.Create(ctx, "u1")

	_, err := svc.Open(ctx, sess.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	_, err = svc.Create(ctx, " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ConflictBetweenSessions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	card := domain.Payment{Method: domain.PaymentCard, Card: &domain.CardDetails{
		Number: "4111111111111111", HolderName: "A", Expiry: "01/30", CVV: "999",
	}}

	ids := make([]string, 2)
	for i, user := range []string{"u1", "u2"} {
		sess, err := svc.Create(ctx, user)
		require.NoError(t, err)
		_, err = svc.ToggleSlot(ctx, sess.ID, user, "S5")
		require.NoError(t, err)
		_, err = svc.Open(ctx, sess.ID, user)
		require.NoError(t, err)
		_, err = svc.Confirm(ctx, sess.ID, user, "Name")
		require.NoError(t, err)
		ids[i] = sess.ID
	}

	_, err := svc.Pay(ctx, ids[0], "u1", card)
	require.NoError(t, err)

	sess, err := svc.Pay(ctx, ids[1], "u2", card)
	assert.ErrorIs(t, err, domain.ErrSlotConflict)
	require.NotNil(t, sess)
	assert.Equal(t, domain.StateAwaitingConfirmation, sess.State)
	assert.True(t, sess.NeedsReselection())
	assert.True(t, sess.Selection.IsEmpty())

	// тот же запрос повторно не оплатить
	_, err = svc.Confirm(ctx, ids[1], "u2", "Name")
	assert.ErrorIs(t, err, workflow.ErrReselectionRequired)
	_, err = svc.Pay(ctx, ids[1], "u2", card)
	assert.ErrorIs(t, err, workflow.ErrInvalidTransition)

	_, err = svc.ToggleSlot(ctx, ids[1], "u2", "S6")
	require.NoError(t, err)
	_, err = svc.Open(ctx, ids[1], "u2")
	require.NoError(t, err)
	_, err = svc.ToggleSlot(ctx, ids[1], "u2", "S7")
	assert.ErrorIs(t, err, ErrSelectionLocked)
	_, err = svc.Confirm(ctx, ids[1], "u2", "Name")
	require.NoError(t, err)
	sess, err = svc.Pay(ctx, ids[1], "u2", card)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, sess.State)
	assert.Equal(t, []string{"S6"}, sess.Reservation.SlotIDs)
}

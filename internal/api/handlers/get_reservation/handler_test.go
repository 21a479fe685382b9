package get_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-PlaygroundBooking/internal/api/middleware"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/domain"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/infra/storage/inmemory"
	"github.com/m04kA/SMC-PlaygroundBooking/internal/service/reservations"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

func newHandler(t *testing.T) *Handler {
	t.Helper()
	repo := inmemory.NewReservationRepository()
	_, err := repo.Create(context.Background(), &domain.Reservation{
		ID: "r1", UserID: "u1", ResourceID: "pg1", Date: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00", EndTime: "11:00", SlotIDs: []string{"S1"}, Total: 1500,
		Status: domain.ReservationConfirmed,
	})
	require.NoError(t, err)
	svc := reservations.NewService(repo, nopLogger{}, &reservations.RealTimeProvider{})
	return NewHandler(svc, nopLogger{})
}

func serve(h *Handler, caller, reservationID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/"+reservationID, nil)
	req = mux.SetURLVars(req, map[string]string{"reservationId": reservationID})
	if caller != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), caller))
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_GetReservation(t *testing.T) {
	h := newHandler(t)

	rec := serve(h, "u1", "r1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":"r1"`)
	assert.Contains(t, rec.Body.String(), `"status":"confirmed"`)

	assert.Equal(t, http.StatusForbidden, serve(h, "u2", "r1").Code)
	assert.Equal(t, http.StatusNotFound, serve(h, "u1", "missing").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(h, "", "r1").Code)
}

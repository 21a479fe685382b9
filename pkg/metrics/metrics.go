package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы workflow бронирования
const (
	OutcomeCompleted     = "completed"
	OutcomeSlotConflict  = "slot_conflict"
	OutcomePaymentFailed = "payment_failed"
	OutcomeInvalidInput  = "invalid_payment_details"
	OutcomeCancelled     = "cancelled"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec
	DBConnections   *prometheus.GaugeVec

	ReservationsTotal *prometheus.CounterVec
	SlotsBookedTotal  prometheus.Counter
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном registry (в тестах - prometheus.NewRegistry())
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections",
			Help:        "Database connection pool state",
			ConstLabels: constLabels,
		}, []string{"state"}),

		ReservationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "reservations_total",
			Help:        "Reservation workflow outcomes",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SlotsBookedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name:        "slots_booked_total",
			Help:        "Total number of slots marked as booked",
			ConstLabels: constLabels,
		}),
	}
}

// ObserveReservation фиксирует исход шага оплаты/отмены; на nil метриках ничего не делает
func (m *Metrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}
	m.ReservationsTotal.WithLabelValues(outcome).Inc()
}

// ObserveSlotsBooked увеличивает счетчик забронированных слотов
func (m *Metrics) ObserveSlotsBooked(count int) {
	if m == nil {
		return
	}
	m.SlotsBookedTotal.Add(float64(count))
}

package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса.
// Все методы безопасны для nil-получателя, поэтому компоненты можно
// создавать без метрик (metrics.enabled = false).
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge

	BookingsCreated   prometheus.Counter
	BookingDecisions  *prometheus.CounterVec
	SlotsResolved     prometheus.Histogram
	CalendarFallbacks *prometheus.CounterVec
	PaymentIntents    *prometheus.CounterVec
}

// New создает метрики и регистрирует их в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в указанном реестре (отдельный реестр нужен в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	ns := sanitize(serviceName)

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "db_query_errors_total",
			Help:      "Database query errors",
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool",
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use",
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_idle_connections",
			Help:      "Idle connections in the pool",
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: ns,
			Name:      "db_wait_count",
			Help:      "Total number of connections waited for",
		}),

		BookingsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "bookings_created_total",
			Help:      "Booking requests submitted for owner approval",
		}),
		BookingDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "booking_decisions_total",
			Help:      "Owner decisions on booking requests",
		}, []string{"status"}),
		SlotsResolved: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "slots_resolved",
			Help:      "Number of bookable slots returned per request",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13},
		}),
		CalendarFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "calendar_fallbacks_total",
			Help:      "Calendar lookups answered from a fallback",
		}, []string{"source"}),
		PaymentIntents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "payment_intents_total",
			Help:      "Deposit payment intents by result",
		}, []string{"result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.BookingDecisions,
		m.SlotsResolved,
		m.CalendarFallbacks,
		m.PaymentIntents,
	)

	return m
}

func sanitize(name string) string {
	return strings.NewReplacer("-", "_", ".", "_", " ", "_").Replace(strings.ToLower(name))
}

// IncBookingsCreated увеличивает счётчик созданных бронирований
func (m *Metrics) IncBookingsCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

// IncBookingDecision учитывает решение владельца (confirmed / rejected)
func (m *Metrics) IncBookingDecision(status string) {
	if m == nil {
		return
	}
	m.BookingDecisions.WithLabelValues(status).Inc()
}

// ObserveSlotsResolved учитывает количество свободных слотов в ответе
func (m *Metrics) ObserveSlotsResolved(n int) {
	if m == nil {
		return
	}
	m.SlotsResolved.Observe(float64(n))
}

// IncCalendarFallback учитывает ответ календаря из резервного источника (cache / empty)
func (m *Metrics) IncCalendarFallback(source string) {
	if m == nil {
		return
	}
	m.CalendarFallbacks.WithLabelValues(source).Inc()
}

// IncPaymentIntent учитывает результат создания платежа (created / failed)
func (m *Metrics) IncPaymentIntent(result string) {
	if m == nil {
		return
	}
	m.PaymentIntents.WithLabelValues(result).Inc()
}

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_BusinessCounters(t *testing.T) {
	m := NewWithRegistry("charter-booking", prometheus.NewRegistry())

	m.IncBookingsCreated()
	m.IncBookingsCreated()
	m.IncBookingDecision("confirmed")
	m.IncCalendarFallback("cache")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingDecisions.WithLabelValues("confirmed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.BookingDecisions.WithLabelValues("rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CalendarFallbacks.WithLabelValues("cache")))
}

func TestMetrics_NilReceiverIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.IncBookingsCreated()
		m.IncBookingDecision("rejected")
		m.ObserveSlotsResolved(3)
		m.IncCalendarFallback("empty")
		m.IncPaymentIntent("failed")
	})
}

package metrics

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestMetrics() *Metrics {
	return NewWithRegistry("test", prometheus.NewRegistry())
}

func TestObserveDBQuery_CountsErrors(t *testing.T) {
	m := newTestMetrics()

	m.ObserveDBQuery("test", "insert", time.Millisecond, nil)
	m.ObserveDBQuery("test", "insert", time.Millisecond, errors.New("unique violation"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.dbQueryErrors.WithLabelValues("test", "insert")))
}

func TestSetDBPoolStats(t *testing.T) {
	m := newTestMetrics()

	m.SetDBPoolStats("test", sql.DBStats{OpenConnections: 5, InUse: 2, Idle: 3})

	assert.Equal(t, float64(5), testutil.ToFloat64(m.dbOpenConns.WithLabelValues("test")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.dbInUseConns.WithLabelValues("test")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.dbIdleConns.WithLabelValues("test")))
}

func TestDomainCounters(t *testing.T) {
	m := newTestMetrics()

	m.BookingCreated("pix")
	m.BookingCreated("pix")
	m.PaymentReconciled("booking", "paid")
	m.RecordsExpired("booking", 3)
	m.RecordsExpired("booking", 0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.bookingsCreated.WithLabelValues("pix")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.paymentsReconciled.WithLabelValues("booking", "paid")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.recordsExpired.WithLabelValues("booking")))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.ObserveHTTPRequest("GET", "/api/health", "200", 10*time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("GET", "/api/health", "200")))
}

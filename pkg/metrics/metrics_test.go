package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordHTTPRequest(http.MethodGet, "/slots", 200, time.Millisecond)
		m.RecordDBOperation("query", time.Millisecond, errors.New("boom"))
		m.AddSlotsCreated(2)
		m.IncSlotTransition("book")
		m.IncConflict("overlap")
		m.IncProvisioningFailure()
		m.IncNotification("log", "ok")
	})
	assert.Nil(t, m.Registry())
}

func TestCounters(t *testing.T) {
	m := New("interviews")

	m.AddSlotsCreated(3)
	m.IncSlotTransition("book")
	m.IncSlotTransition("book")
	m.IncConflict("already_booked")

	assert.Equal(t, 3.0, testutil.ToFloat64(m.slotsCreated.WithLabelValues("interviews")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.slotTransitions.WithLabelValues("interviews", "book")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts.WithLabelValues("interviews", "already_booked")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New("interviews")
	m.RecordHTTPRequest(http.MethodPost, "/api/v1/applications", 201, 10*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

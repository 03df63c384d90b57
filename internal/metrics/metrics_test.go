package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveFallback(t *testing.T) {
	m := New("xcorte")

	m.ObserveFallback("create", "no_session")
	m.ObserveFallback("create", "no_session")
	m.ObserveFallback("list", "primary_error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.fallback.WithLabelValues("create", "no_session")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fallback.WithLabelValues("list", "primary_error")))
}

func TestHandlerExposesGauges(t *testing.T) {
	m := New("xcorte")
	m.RegisterPending("xcorte", func() map[string]int {
		return map[string]int{"a@shop.com": 2, "b@shop.com": 1}
	})
	m.RegisterPrimaryUp("xcorte", func() bool { return false })
	m.ObserveFallback("create", "no_session")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "xcorte_booking_fallback_pending 3"), body)
	assert.True(t, strings.Contains(body, "xcorte_booking_primary_up 0"), body)
	assert.True(t, strings.Contains(body, `xcorte_booking_store_fallback_total{operation="create",reason="no_session"} 1`), body)
}

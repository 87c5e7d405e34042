// Public domain.

package metrics_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/natal/chart"
	"github.com/soniakeys/natal/houses"
	"github.com/soniakeys/natal/internal/metrics"
)

func TestObserveChart(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector(reg)
	require.NoError(t, err)

	c.ObserveChart(houses.Koch, 3*time.Millisecond, nil)
	c.ObserveChart(houses.Koch, time.Millisecond, nil)
	c.ObserveChart(houses.Equal, time.Millisecond, nil)
	c.ObserveChart(houses.Placidus, time.Millisecond,
		fmt.Errorf("%w: Date is required", chart.ErrInvalidBirthData))

	assert.Equal(t, 2., testutil.ToFloat64(c.ChartsTotal.WithLabelValues("koch")))
	assert.Equal(t, 1., testutil.ToFloat64(c.ChartsTotal.WithLabelValues("equal")))
	assert.Equal(t, 0., testutil.ToFloat64(c.ChartsTotal.WithLabelValues("placidus")))
	assert.Equal(t, 1., testutil.ToFloat64(c.FailuresTotal.WithLabelValues(metrics.ReasonInvalid)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.FailuresTotal))
}

func TestReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("x: %w", chart.ErrInvalidBirthData), metrics.ReasonInvalid},
		{fmt.Errorf("x: %w", chart.ErrComputationFailed), metrics.ReasonFailed},
		{fmt.Errorf("%w: %v", chart.ErrTimeout, context.DeadlineExceeded), metrics.ReasonTimeout},
		{context.Canceled, metrics.ReasonCancel},
		{errors.New("boom"), metrics.ReasonOther},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, metrics.Reason(tc.err), tc.err.Error())
	}
}

func TestRegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := metrics.NewCollector(reg)
	require.NoError(t, err)
	b, err := metrics.NewCollector(reg)
	require.NoError(t, err)
	a.ObserveChart(houses.WholeSign, time.Millisecond, nil)
	assert.Equal(t, 1., testutil.ToFloat64(b.ChartsTotal.WithLabelValues("whole-sign")))
}

func TestHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := metrics.NewCollector(reg)
	require.NoError(t, err)
	c.ObserveChart(houses.Placidus, time.Millisecond, nil)

	rr := httptest.NewRecorder()
	c.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `natal_charts_total{system="placidus"} 1`)
	assert.Contains(t, body, "natal_chart_duration_seconds_count 1")
}

func TestNilCollector(t *testing.T) {
	var c *metrics.Collector
	assert.NotPanics(t, func() { c.ObserveChart(houses.Placidus, time.Second, nil) })
	assert.Nil(t, c.Gatherer())
}

// Public domain.

// Package metrics exposes Prometheus metrics for chart computations.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/soniakeys/natal/chart"
	"github.com/soniakeys/natal/houses"
)

// Failure reasons.
const (
	ReasonInvalid = "invalid_birth_data"
	ReasonFailed  = "computation_failed"
	ReasonTimeout = "timeout"
	ReasonCancel  = "canceled"
	ReasonOther   = "other"
)

// Collector holds the chart metrics.  It implements chart.Recorder.
type Collector struct {
	gatherer prometheus.Gatherer

	ChartsTotal   *prometheus.CounterVec
	FailuresTotal *prometheus.CounterVec
	Duration      prometheus.Histogram
}

// NewCollector registers chart metrics against reg, or the default
// registerer when reg is nil.  Registering twice against the same registry
// shares the existing collectors.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	charts, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "natal_charts_total",
		Help: "Charts computed successfully, by house system.",
	}, []string{"system"}), "natal_charts_total")
	if err != nil {
		return nil, err
	}
	failures, err := registerCounterVec(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "natal_chart_failures_total",
		Help: "Chart computations that returned an error, by reason.",
	}, []string{"reason"}), "natal_chart_failures_total")
	if err != nil {
		return nil, err
	}
	duration, err := registerHistogram(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "natal_chart_duration_seconds",
		Help:    "Duration of chart computations.",
		Buckets: []float64{.0001, .00025, .0005, .001, .0025, .005, .01, .025, .05, .1, .5, 1, 2},
	}), "natal_chart_duration_seconds")
	if err != nil {
		return nil, err
	}
	return &Collector{
		gatherer:      gatherer,
		ChartsTotal:   charts,
		FailuresTotal: failures,
		Duration:      duration,
	}, nil
}

// Gatherer returns the gatherer associated with the collector.
func (c *Collector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler serves the gathered metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.Gatherer(), promhttp.HandlerOpts{})
}

// ObserveChart records one computation outcome.
func (c *Collector) ObserveChart(s houses.System, elapsed time.Duration, err error) {
	if c == nil {
		return
	}
	c.Duration.Observe(elapsed.Seconds())
	if err != nil {
		c.FailuresTotal.WithLabelValues(Reason(err)).Inc()
		return
	}
	c.ChartsTotal.WithLabelValues(s.String()).Inc()
}

// Reason classifies a computation error.
func Reason(err error) string {
	switch {
	case errors.Is(err, chart.ErrInvalidBirthData):
		return ReasonInvalid
	case errors.Is(err, chart.ErrComputationFailed):
		return ReasonFailed
	case errors.Is(err, chart.ErrTimeout):
		return ReasonTimeout
	case errors.Is(err, context.Canceled):
		return ReasonCancel
	}
	return ReasonOther
}

func registerHistogram(reg prometheus.Registerer, hist prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(hist); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return hist, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

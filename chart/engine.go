// Public domain.

package chart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/soniakeys/natal/aspect"
	"github.com/soniakeys/natal/houses"
)

// DefaultTimeout bounds a computation when no timeout is configured.
const DefaultTimeout = 2 * time.Second

// Recorder receives the outcome of every Engine computation.
type Recorder interface {
	ObserveChart(system houses.System, elapsed time.Duration, err error)
}

// Engine computes charts with fixed settings.  It is safe for concurrent
// use.
type Engine struct {
	system  houses.System
	aspects aspect.Options
	timeout time.Duration
	log     zerolog.Logger
	rec     Recorder
	now     func() time.Time
	build   func(BirthData, houses.System, aspect.Options, time.Time) (*NatalChart, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithHouseSystem sets the default house system.
func WithHouseSystem(s houses.System) Option { return func(e *Engine) { e.system = s } }

// WithMinorAspects includes the minor aspects.
func WithMinorAspects(on bool) Option { return func(e *Engine) { e.aspects.Minor = on } }

// WithTimeout bounds each computation.  Zero or negative selects
// DefaultTimeout.
func WithTimeout(d time.Duration) Option { return func(e *Engine) { e.timeout = d } }

// WithLogger sets the logger.  The default discards.
func WithLogger(l zerolog.Logger) Option { return func(e *Engine) { e.log = l } }

// WithRecorder sets a recorder for computation outcomes.
func WithRecorder(r Recorder) Option { return func(e *Engine) { e.rec = r } }

// WithClock sets the source of computation timestamps.
func WithClock(now func() time.Time) Option { return func(e *Engine) { e.now = now } }

// New returns an Engine.  Defaults are Placidus houses, major aspects only
// and DefaultTimeout.
func New(opts ...Option) *Engine {
	e := &Engine{
		system: houses.Placidus,
		log:    zerolog.Nop(),
		now:    time.Now,
		build:  Build,
	}
	for _, o := range opts {
		o(e)
	}
	if e.timeout <= 0 {
		e.timeout = DefaultTimeout
	}
	return e
}

// System returns the default house system.
func (e *Engine) System() houses.System { return e.system }

// Compute computes the chart for b with the default house system.
func (e *Engine) Compute(ctx context.Context, b BirthData) (*NatalChart, error) {
	return e.ComputeSystem(ctx, b, e.system)
}

type result struct {
	c   *NatalChart
	err error
}

// ComputeSystem computes the chart for b with house system s.
//
// Errors wrap ErrInvalidBirthData, ErrComputationFailed or ErrTimeout, or
// are the context error if ctx is canceled.
func (e *Engine) ComputeSystem(ctx context.Context, b BirthData, s houses.System) (*NatalChart, error) {
	start := time.Now()
	c, err := e.compute(ctx, b, s)
	elapsed := time.Since(start)
	if e.rec != nil {
		e.rec.ObserveChart(s, elapsed, err)
	}
	if err != nil {
		ev := e.log.Warn()
		if errors.Is(err, ErrInvalidBirthData) {
			ev = e.log.Debug()
		}
		ev.Err(err).Str("name", b.Name).Stringer("system", s).Dur("elapsed", elapsed).
			Msg("chart rejected")
		return nil, err
	}
	e.log.Debug().Str("name", b.Name).Stringer("system", s).
		Float64("jd", c.JulianDay).Int("aspects", len(c.Aspects)).
		Dur("elapsed", elapsed).Msg("chart computed")
	return c, nil
}

func (e *Engine) compute(ctx context.Context, b BirthData, s houses.System) (*NatalChart, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	if err := ctx.Err(); err != nil {
		return nil, contextError(err)
	}
	computedAt := e.now().UTC()
	done := make(chan result, 1)
	go func() {
		c, err := e.build(b, s, e.aspects, computedAt)
		done <- result{c, err}
	}()
	select {
	case r := <-done:
		return r.c, r.err
	case <-ctx.Done():
		return nil, contextError(ctx.Err())
	}
}

func contextError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

// Public domain.

// Package chart assembles natal charts from birth data.
//
// Build is the pure pipeline: birth data to UTC instant to Julian Day, then
// house cusps, body positions with house assignment, the Ascendant and
// Midheaven as pseudo-bodies, and aspects over the full set.  Engine wraps
// Build with defaults, a computation timeout, logging and metrics.
package chart

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/natal/aspect"
	"github.com/soniakeys/natal/astro"
	"github.com/soniakeys/natal/ephem"
	"github.com/soniakeys/natal/houses"
	"github.com/soniakeys/natal/zodiac"
)

var (
	// ErrInvalidBirthData wraps every birth data validation failure.
	ErrInvalidBirthData = errors.New("invalid birth data")
	// ErrComputationFailed reports a chart with non-finite values.
	ErrComputationFailed = errors.New("computation failed")
	// ErrTimeout reports a computation exceeding its deadline.
	ErrTimeout = errors.New("computation timed out")
)

// NatalChart is a computed chart.  It is a value; recomputing with other
// settings produces a new chart.
type NatalChart struct {
	Birth        BirthData         `json:"birth"`
	Instant      time.Time         `json:"instant"`
	JulianDay    float64           `json:"julian_day"`
	System       houses.System     `json:"house_system"`
	Positions    []zodiac.Position `json:"positions"`
	Cusps        [12]houses.Cusp   `json:"cusps"`
	Aspects      []aspect.Aspect   `json:"aspects"`
	Approximated bool              `json:"approximated,omitempty"` // Koch fell back to trisection
	ComputedAt   time.Time         `json:"computed_at"`
}

// Build computes the chart for b.  The result depends only on the
// arguments; computedAt is recorded as the computation timestamp.
func Build(b BirthData, s houses.System, o aspect.Options, computedAt time.Time) (*NatalChart, error) {
	instant, err := b.Instant()
	if err != nil {
		return nil, err
	}
	jd := astro.JulianDay(instant)
	h, err := houses.Compute(jd, b.Location.Latitude, b.Location.Longitude, s)
	if err != nil {
		return nil, err
	}
	cusps := h.Longitudes()
	ps := ephem.AllPositions(jd, cusps)
	ps = append(ps,
		zodiac.NewPosition(zodiac.Ascendant, h.Ascendant, 0, 0).InHouse(cusps),
		zodiac.NewPosition(zodiac.Midheaven, h.Midheaven, 0, 0).InHouse(cusps))

	c := &NatalChart{
		Birth:        b.clone(),
		Instant:      instant,
		JulianDay:    jd,
		System:       s,
		Positions:    ps,
		Cusps:        h.Cusps,
		Aspects:      aspect.Find(ps, o),
		Approximated: h.Approximated,
		ComputedAt:   computedAt,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (b BirthData) clone() BirthData {
	if b.Location != nil {
		l := *b.Location
		b.Location = &l
	}
	if b.UTCOffset != nil {
		o := *b.UTCOffset
		b.UTCOffset = &o
	}
	return b
}

// Validate reports ErrComputationFailed if any number in c is not finite.
func (c *NatalChart) Validate() error {
	bad := func(what string, v float64) error {
		return fmt.Errorf("%w: %s is %v", ErrComputationFailed, what, v)
	}
	if !finite(c.JulianDay) {
		return bad("julian day", c.JulianDay)
	}
	for _, p := range c.Positions {
		for _, v := range []float64{p.Longitude, p.Latitude, p.Speed, p.SignDegree} {
			if !finite(v) {
				return bad(p.Body.String(), v)
			}
		}
		if p.House == 0 {
			return fmt.Errorf("%w: %s in no house", ErrComputationFailed, p.Body)
		}
	}
	for _, cu := range c.Cusps {
		if !finite(cu.Longitude) {
			return bad(fmt.Sprintf("cusp %d", cu.House), cu.Longitude)
		}
	}
	for _, a := range c.Aspects {
		if !finite(a.Orb) || !finite(a.MaxOrb) {
			return bad(a.A.String()+"-"+a.B.String()+" orb", a.Orb)
		}
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Position returns the position of body b.
func (c *NatalChart) Position(b zodiac.Body) (zodiac.Position, bool) {
	for _, p := range c.Positions {
		if p.Body == b {
			return p, true
		}
	}
	return zodiac.Position{}, false
}

// AspectsOf returns the aspects involving body b.
func (c *NatalChart) AspectsOf(b zodiac.Body) []aspect.Aspect {
	return aspect.FilterByBody(c.Aspects, b)
}

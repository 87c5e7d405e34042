// Public domain.

package ephem_test

import (
	"math"
	"testing"
	"time"

	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/natal/astro"
	"github.com/soniakeys/natal/ephem"
	"github.com/soniakeys/natal/zodiac"
)

func angDiff(a, b float64) float64 {
	d := math.Abs(astro.Normalize(a - b))
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestSun(t *testing.T) {
	// Meeus, example 25.a, 1992 October 13.0: true longitude 199°.90988
	lon, lat, speed := ephem.Sun(astro.JulianCentury(2448908.5))
	assert.Less(t, angDiff(199.90988, lon), .02)
	assert.InDelta(t, 0, lat, .01)
	assert.InDelta(t, .9856, speed, 1e-4)
}

func TestGeocentricVenus(t *testing.T) {
	// Meeus, example 33.a, 1992 December 20.0: λ 313°.08102, β -2°.08474
	lon, lat, speed := ephem.Geocentric(zodiac.Venus, astro.JulianCentury(2448976.5))
	assert.Less(t, angDiff(313.08102, lon), .05)
	assert.InDelta(t, -2.08474, lat, .05)
	assert.Greater(t, speed, 0.)
}

func TestHeliocentric(t *testing.T) {
	for _, b := range ephem.Planets {
		lon, lat, r := ephem.Heliocentric(b, 0)
		assert.GreaterOrEqual(t, lon, 0., b.String())
		assert.Less(t, lon, 360., b.String())
		assert.Less(t, math.Abs(lat), 18., b.String())
		assert.Greater(t, r, .3, b.String())
	}
	_, _, r := ephem.Heliocentric(zodiac.Jupiter, 0)
	assert.InDelta(t, 5.2, r, .3)

	lon, _, _ := ephem.Heliocentric(zodiac.Moon, 0)
	assert.True(t, math.IsNaN(lon))
	lon, _, _ = ephem.Geocentric(zodiac.Ascendant, 0)
	assert.True(t, math.IsNaN(lon))
}

func TestMoon(t *testing.T) {
	// Meeus, example 47.a, 1992 April 12.0: λ 133°.162655, β -3°.229126
	lon, lat, speed := ephem.Moon(astro.JulianCentury(2448724.5))
	assert.Less(t, angDiff(133.162655, lon), .25)
	assert.InDelta(t, -3.229126, lat, .1)
	assert.InDelta(t, 13.176, speed, .001)
}

// The short series stays within a degree of the full lunar theory.
func TestMoonAgainstFullTheory(t *testing.T) {
	rnd := xrand.New(xrand.NewSource(13))
	for i := 0; i < 200; i++ {
		jd := 2415020 + rnd.Float64()*73000
		lon, lat, _ := ephem.Moon(astro.JulianCentury(jd))
		fLon, fLat, _ := moonposition.Position(jd)
		require.Less(t, angDiff(fLon.Deg(), lon), 1., "jd %f", jd)
		require.InDelta(t, fLat.Deg(), lat, .3, "jd %f", jd)
	}
}

func TestNodes(t *testing.T) {
	// Meeus, example 22.a, 1987 April 10: Ω = 11°.2531
	north, south, speed := ephem.Nodes(astro.JulianCentury(2446895.5))
	assert.InDelta(t, 11.2531, north, 1e-4)
	assert.InDelta(t, 191.2531, south, 1e-4)
	assert.InDelta(t, -.05295, speed, 1e-5)

	rnd := xrand.New(xrand.NewSource(17))
	for i := 0; i < 500; i++ {
		T := rnd.Float64()*20 - 10
		north, south, _ := ephem.Nodes(T)
		require.InDelta(t, 180, astro.Normalize(south-north), 1e-9)
	}
}

func TestRetrograde(t *testing.T) {
	tests := []struct {
		body  zodiac.Body
		date  time.Time
		retro bool
	}{
		{zodiac.Mercury, time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), true},
		{zodiac.Venus, time.Date(2023, 8, 13, 0, 0, 0, 0, time.UTC), true},
		{zodiac.Mars, time.Date(2020, 10, 13, 0, 0, 0, 0, time.UTC), true},
		{zodiac.Mars, time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC), false},
		{zodiac.Jupiter, time.Date(2023, 11, 3, 0, 0, 0, 0, time.UTC), true},
		{zodiac.Saturn, time.Date(2023, 8, 27, 0, 0, 0, 0, time.UTC), true},
	}
	for _, tc := range tests {
		t.Run(tc.body.String(), func(t *testing.T) {
			_, _, speed := ephem.Geocentric(tc.body, astro.JulianCentury(astro.JulianDay(tc.date)))
			assert.Equal(t, tc.retro, speed < 0, "speed %g", speed)
		})
	}
}

func TestAllPositions(t *testing.T) {
	jd := astro.JulianDay(time.Date(1990, 6, 15, 12, 30, 0, 0, time.UTC))
	cusps := []float64{200, 230, 260, 290, 320, 350, 20, 50, 80, 110, 140, 170}
	ps := ephem.AllPositions(jd, cusps)
	require.Len(t, ps, 12)
	for i, p := range ps {
		assert.Equal(t, zodiac.Bodies[i], p.Body)
		assert.GreaterOrEqual(t, p.Longitude, 0.)
		assert.Less(t, p.Longitude, 360.)
		assert.LessOrEqual(t, math.Abs(p.Latitude), 90.)
		assert.Equal(t, p.Speed < 0, p.Retrograde)
		assert.Equal(t, zodiac.HouseOf(p.Longitude, cusps), p.House)
		assert.NotZero(t, p.House)
	}
	// Sun in Gemini in mid June
	assert.Equal(t, zodiac.Gemini, ps[0].Sign)
	assert.InDelta(t, 180, astro.Normalize(ps[11].Longitude-ps[10].Longitude), 1e-9)
	assert.True(t, ps[10].Retrograde)

	none := ephem.AllPositions(jd, nil)
	for _, p := range none {
		assert.Zero(t, p.House)
	}
}

func TestAllPositionsNormalized(t *testing.T) {
	rnd := xrand.New(xrand.NewSource(19))
	for i := 0; i < 200; i++ {
		jd := 2378497 + rnd.Float64()*146000 // 1800 to 2200
		for _, p := range ephem.AllPositions(jd, nil) {
			require.GreaterOrEqual(t, p.Longitude, 0., "%v jd %f", p.Body, jd)
			require.Less(t, p.Longitude, 360., "%v jd %f", p.Body, jd)
			require.LessOrEqual(t, math.Abs(p.Latitude), 90.)
			require.Equal(t, p.Speed < 0, p.Retrograde)
		}
	}
}

func TestNaNPropagates(t *testing.T) {
	ps := ephem.AllPositions(math.NaN(), nil)
	for _, p := range ps {
		assert.True(t, math.IsNaN(p.Longitude), p.Body.String())
	}
}

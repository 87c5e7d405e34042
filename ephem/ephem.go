// Public domain.

// Package ephem computes geocentric ecliptic positions of the Sun, Moon,
// planets and lunar nodes.
//
// Planets use mean Keplerian elements with linear rates, no perturbations,
// no light time and no nutation.  Longitudes are referred to the mean
// equinox of date.  The Moon uses a short trigonometric
// series.  Accuracy is a small fraction of a degree over the modern era,
// adequate for chart work but not for observation.
//
// Time arguments named T are Julian centuries from J2000.0, as returned
// by astro.JulianCentury.  Non-finite input propagates to NaN output.
package ephem

import (
	"math"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/unit"

	"github.com/soniakeys/natal/astro"
	"github.com/soniakeys/natal/zodiac"
)

const (
	// decimal places (radians) for the Kepler equation iteration
	keplerPlaces = 8

	// step for finite difference speeds, days
	speedStep = 1. / 24

	// mean daily motions, degrees per day
	meanSolarRate = 0.98564736
	meanLunarRate = 13.176396
)

// Heliocentric returns heliocentric ecliptic longitude and latitude in
// degrees, and distance in au, for a planet with Keplerian elements.
//
// Bodies without elements (Sun, Moon, nodes, angles) return NaN.
func Heliocentric(b zodiac.Body, T float64) (lon, lat, r float64) {
	el, ok := planets[b]
	if !ok {
		return math.NaN(), math.NaN(), math.NaN()
	}
	c := heliocentric(el, T)
	lon, lat = lonLat(&c)
	return astro.Normalize(lon + precession(T)), lat, math.Sqrt(c.Square())
}

// Geocentric returns geocentric ecliptic longitude and latitude in degrees,
// and speed in longitude in degrees per day, for a planet with Keplerian
// elements.  Speed is negative when the planet is retrograde.
//
// Bodies without elements return NaN.
func Geocentric(b zodiac.Body, T float64) (lon, lat, speed float64) {
	el, ok := planets[b]
	if !ok {
		return math.NaN(), math.NaN(), math.NaN()
	}
	lon, lat = geocentric(el, T)
	lon2, _ := geocentric(el, T+speedStep/base.JulianCentury)
	return lon, lat, wrap180(lon2-lon) / speedStep
}

// Sun returns the geocentric longitude and latitude of the Sun, and the
// mean solar rate as its speed.
func Sun(T float64) (lon, lat, speed float64) {
	c := heliocentric(&earth, T)
	l, b := lonLat(&c)
	return astro.Normalize(l + 180 + precession(T)), -b, meanSolarRate
}

// Moon returns the geocentric longitude and latitude of the Moon from the
// leading terms of the lunar theory, and the mean lunar rate as its speed.
func Moon(T float64) (lon, lat, speed float64) {
	L := base.Horner(T, 218.3164477, 481267.88123421, -.0015786)
	D := deg(base.Horner(T, 297.8501921, 445267.1114034, -.0018819))
	M := deg(base.Horner(T, 357.5291092, 35999.0502909, -.0001536))
	Mp := deg(base.Horner(T, 134.9633964, 477198.8675055, .0087414))
	F := deg(base.Horner(T, 93.2720950, 483202.0175233, -.0036539))

	lon = L +
		6.288774*math.Sin(Mp) +
		1.274027*math.Sin(2*D-Mp) +
		.658314*math.Sin(2*D) +
		.213618*math.Sin(2*Mp) -
		.185116*math.Sin(M) -
		.114332*math.Sin(2*F)
	lat = 5.128122*math.Sin(F) +
		.280602*math.Sin(Mp+F) +
		.277693*math.Sin(Mp-F) +
		.173237*math.Sin(2*D-F) +
		.055413*math.Sin(2*D-Mp+F) +
		.046271*math.Sin(2*D-Mp-F)
	return astro.Normalize(lon), lat, meanLunarRate
}

// Nodes returns longitudes of the mean ascending and descending lunar
// nodes, and their common speed.  The descending node is exactly
// opposite the ascending node.
func Nodes(T float64) (north, south, speed float64) {
	north = moonposition.Node(base.J2000 + T*base.JulianCentury).Deg()
	north = astro.Normalize(north)
	south = astro.Normalize(north + 180)
	// derivative of the node polynomial, per day
	speed = base.Horner(T, -1934.1362891, 2*.0020754, 3./467441, -4./60616000) /
		base.JulianCentury
	return
}

// AllPositions computes Sun, Moon, the eight planets and both lunar nodes
// for Julian Day jd, in chart order.
//
// When cusps holds twelve house cusp longitudes each position is assigned
// the house containing it.  Otherwise House is left zero.
func AllPositions(jd float64, cusps []float64) []zodiac.Position {
	T := astro.JulianCentury(jd)
	ps := make([]zodiac.Position, 0, 12)

	lon, lat, speed := Sun(T)
	ps = append(ps, zodiac.NewPosition(zodiac.Sun, lon, lat, speed))
	lon, lat, speed = Moon(T)
	ps = append(ps, zodiac.NewPosition(zodiac.Moon, lon, lat, speed))
	for _, b := range Planets {
		lon, lat, speed = Geocentric(b, T)
		ps = append(ps, zodiac.NewPosition(b, lon, lat, speed))
	}
	north, south, speed := Nodes(T)
	ps = append(ps,
		zodiac.NewPosition(zodiac.NorthNode, north, 0, speed),
		zodiac.NewPosition(zodiac.SouthNode, south, 0, speed))

	if len(cusps) == 12 {
		for i := range ps {
			ps[i] = ps[i].InHouse(cusps)
		}
	}
	return ps
}

// heliocentric computes the heliocentric ecliptic rectangular position of
// an orbit at time T.
func heliocentric(el0 *Elements, T float64) (c coord.Cart) {
	el := el0.at(T)
	M := unit.AngleFromDeg(el.L - el.Peri).Mod1()
	E := eccentricAnomaly(el.E, M)
	nu := kepler.True(E, el.E)
	r := kepler.Radius(E, el.E, el.A)

	// argument of latitude: true anomaly plus argument of perihelion
	su, cu := math.Sincos(nu.Rad() + deg(el.Peri-el.Node))
	sn, cn := math.Sincos(deg(el.Node))
	si, ci := math.Sincos(deg(el.I))
	c.X = r * (cn*cu - sn*su*ci)
	c.Y = r * (sn*cu + cn*su*ci)
	c.Z = r * su * si
	return
}

// eccentricAnomaly solves Kepler's equation E = M + e sin E.
//
// Successive substitution stops when the change is below keplerPlaces
// decimal places.  If that fails within its iteration limit, binary search
// gives the answer in a fixed number of steps.
func eccentricAnomaly(e float64, M unit.Angle) unit.Angle {
	if math.IsNaN(e) || math.IsNaN(M.Rad()) {
		return unit.Angle(math.NaN())
	}
	E, err := kepler.Kepler1(e, M, keplerPlaces)
	if err != nil {
		return kepler.Kepler3(e, M)
	}
	return E
}

func geocentric(el *Elements, T float64) (lon, lat float64) {
	p := heliocentric(el, T)
	e := heliocentric(&earth, T)
	var g coord.Cart
	g.Sub(&p, &e)
	lon, lat = lonLat(&g)
	return astro.Normalize(lon + precession(T)), lat
}

// precession returns general precession in longitude from J2000 to T,
// in degrees.  The element table is referred to the J2000 equinox.
func precession(T float64) float64 {
	return base.Horner(T, 0, 5029.0966, 1.11113, -.000006) / 3600
}

// lonLat converts rectangular ecliptic coordinates to longitude and
// latitude in degrees.
func lonLat(c *coord.Cart) (lon, lat float64) {
	lon = astro.Normalize(math.Atan2(c.Y, c.X) * 180 / math.Pi)
	lat = math.Atan2(c.Z, math.Hypot(c.X, c.Y)) * 180 / math.Pi
	return
}

func deg(d float64) float64 { return d * math.Pi / 180 }

// wrap180 reduces an angle difference to [-180, 180).
func wrap180(d float64) float64 { return astro.Normalize(d+180) - 180 }

// Public domain.

// Package houses divides the ecliptic into the twelve houses of a chart.
//
// All systems place cusp 1 on the Ascendant side and keep cusps 1/7, 2/8,
// 3/9, 4/10, 5/11 and 6/12 exactly opposite.  Placidus is approximated by
// trisecting the quadrants between the angles.  Koch is computed from the
// diurnal semi-arc of the Midheaven degree, except inside the polar
// circles where that degree may never rise; there it falls back to the
// trisection and reports the fallback in Houses.Approximated.
//
// At polar latitudes the rising ecliptic degree can lie west of the
// meridian.  The Ascendant is then taken as its opposite point so that the
// Midheaven always leads the Ascendant by less than 180°.
package houses

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/natal/astro"
	"github.com/soniakeys/natal/zodiac"
)

// System selects a house division scheme.
type System int

const (
	Placidus System = iota
	Koch
	Equal
	WholeSign
)

// Systems lists all supported systems.
var Systems = []System{Placidus, Koch, Equal, WholeSign}

var systemNames = [...]string{"placidus", "koch", "equal", "whole-sign"}

func (s System) String() string {
	if s < 0 || int(s) >= len(systemNames) {
		return fmt.Sprintf("System(%d)", int(s))
	}
	return systemNames[s]
}

// ParseSystem parses a house system name.  The empty string selects
// Placidus.
func ParseSystem(s string) (System, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	k = strings.NewReplacer("_", "", "-", "", " ", "").Replace(k)
	switch k {
	case "", "placidus":
		return Placidus, nil
	case "koch":
		return Koch, nil
	case "equal":
		return Equal, nil
	case "wholesign", "whole":
		return WholeSign, nil
	}
	return 0, fmt.Errorf("unknown house system %q", s)
}

func (s System) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *System) UnmarshalText(t []byte) (err error) {
	*s, err = ParseSystem(string(t))
	return
}

// Cusp is the starting longitude of one house.
type Cusp struct {
	House      int         `json:"house"`
	Longitude  float64     `json:"longitude"`
	Sign       zodiac.Sign `json:"sign"`
	SignDegree float64     `json:"sign_degree"`
}

func newCusp(house int, lon float64) Cusp {
	c := Cusp{House: house, Longitude: astro.Normalize(lon)}
	c.Sign, c.SignDegree = zodiac.SignOf(c.Longitude)
	return c
}

// Houses is the result of a house computation.
type Houses struct {
	System       System   `json:"system"`
	Ascendant    float64  `json:"ascendant"`
	Midheaven    float64  `json:"midheaven"`
	Cusps        [12]Cusp `json:"cusps"`
	Approximated bool     `json:"approximated,omitempty"`
}

// Longitudes returns the twelve cusp longitudes in house order.
func (h *Houses) Longitudes() []float64 {
	l := make([]float64, 12)
	for i, c := range h.Cusps {
		l[i] = c.Longitude
	}
	return l
}

// Ascendant returns the ecliptic longitude rising on the eastern horizon
// at geographic latitude lat and east longitude lon, in degrees.
func Ascendant(jd, lat, lon float64) float64 {
	asc, _ := angles(astro.LocalSiderealTime(jd, lon), astro.Obliquity(jd), lat)
	return asc
}

// Midheaven returns the ecliptic longitude culminating on the meridian of
// east longitude lon, in degrees.
func Midheaven(jd, lon float64) float64 {
	return midheaven(astro.LocalSiderealTime(jd, lon), astro.Obliquity(jd))
}

// Compute returns the house cusps for Julian Day jd at geographic latitude
// lat and east longitude lon.
func Compute(jd, lat, lon float64, s System) (Houses, error) {
	ramc := astro.LocalSiderealTime(jd, lon)
	eps := astro.Obliquity(jd)
	asc, mc := angles(ramc, eps, lat)
	h := Houses{System: s, Ascendant: asc, Midheaven: mc}
	switch s {
	case Equal:
		h.Cusps = uniform(asc)
	case WholeSign:
		h.Cusps = uniform(math.Floor(asc/30) * 30)
	case Placidus:
		h.Cusps = quadrants(asc, mc, trisect(asc, mc))
	case Koch:
		q, ok := koch(ramc, eps, lat, asc, mc)
		if !ok {
			q = trisect(asc, mc)
			h.Approximated = true
		}
		h.Cusps = quadrants(asc, mc, q)
	default:
		return Houses{}, fmt.Errorf("unknown house system %d", int(s))
	}
	return h, nil
}

// angles returns the Ascendant and Midheaven for sidereal time ramc.
func angles(ramc, eps, lat float64) (asc, mc float64) {
	asc = ascendant(ramc, eps, lat)
	mc = midheaven(ramc, eps)
	if astro.Normalize(asc-mc) > 180 {
		asc = astro.Normalize(asc + 180)
	}
	return
}

func ascendant(ramc, eps, lat float64) float64 {
	sr, cr := math.Sincos(rad(ramc))
	se, ce := math.Sincos(rad(eps))
	return astro.Normalize(deg(math.Atan2(cr, -(sr*ce + math.Tan(rad(lat))*se))))
}

func midheaven(ramc, eps float64) float64 {
	sr, cr := math.Sincos(rad(ramc))
	return astro.Normalize(deg(math.Atan2(sr, cr*math.Cos(rad(eps)))))
}

// uniform returns cusps at 30° steps from c1.
func uniform(c1 float64) (cs [12]Cusp) {
	for i := range cs {
		cs[i] = newCusp(i+1, c1+float64(i)*30)
	}
	return
}

// intermediate cusps 11, 12, 2 and 3
type quad struct{ c11, c12, c2, c3 float64 }

// quadrants assembles twelve cusps from the angles and the intermediate
// cusps of the eastern quadrants.  The western cusps are their opposites.
func quadrants(asc, mc float64, q quad) (cs [12]Cusp) {
	lons := [12]float64{
		asc, q.c2, q.c3, mc + 180,
		q.c11 + 180, q.c12 + 180, asc + 180, q.c2 + 180,
		q.c3 + 180, mc, q.c11, q.c12,
	}
	for i, l := range lons {
		cs[i] = newCusp(i+1, l)
	}
	return
}

// trisect divides the MC-ASC and ASC-IC arcs into equal thirds.
func trisect(asc, mc float64) quad {
	upper := astro.Normalize(asc - mc)
	lower := astro.Normalize(mc + 180 - asc)
	return quad{
		c11: mc + upper/3,
		c12: mc + upper*2/3,
		c2:  asc + lower/3,
		c3:  asc + lower*2/3,
	}
}

// koch places the intermediate cusps at the ascendants of the instants
// dividing the Midheaven degree's diurnal semi-arc into thirds.
//
// ok is false when the Midheaven degree is circumpolar or never rises, or
// when the resulting cusps leave their quadrants.
func koch(ramc, eps, lat, asc, mc float64) (q quad, ok bool) {
	dec := math.Asin(math.Sin(rad(mc)) * math.Sin(rad(eps)))
	x := math.Tan(dec) * math.Tan(rad(lat))
	if !(math.Abs(x) <= 1) {
		return
	}
	// ascensional difference; the semi-arc is 90° + ad
	step := (90 + deg(math.Asin(x))) / 3
	q = quad{
		c11: ascendant(ramc-2*step, eps, lat),
		c12: ascendant(ramc-step, eps, lat),
		c2:  ascendant(ramc+step, eps, lat),
		c3:  ascendant(ramc+2*step, eps, lat),
	}
	return q, within(mc, q.c11, q.c12, asc) && within(asc, q.c2, q.c3, mc+180)
}

// within reports whether a and b follow from and precede to, in that order,
// going forward around the circle.
func within(from, a, b, to float64) bool {
	oa := astro.Normalize(a - from)
	ob := astro.Normalize(b - from)
	return 0 < oa && oa < ob && ob < astro.Normalize(to-from)
}

func rad(d float64) float64 { return d * math.Pi / 180 }
func deg(r float64) float64 { return r * 180 / math.Pi }

// Public domain.

// Package zodiac defines the bodies, signs and positions shared by the
// chart packages.
package zodiac

import (
	"fmt"
	"math"
	"strings"

	"github.com/soniakeys/natal/astro"
	sexa "github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"
)

// Body is a point placed in a chart.  Ascendant and Midheaven are
// angles of the house frame, not solar system bodies.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	NorthNode
	SouthNode
	Ascendant
	Midheaven
)

// Bodies lists all bodies in chart order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn,
	Uranus, Neptune, Pluto, NorthNode, SouthNode, Ascendant, Midheaven}

var bodyNames = [...]string{"Sun", "Moon", "Mercury", "Venus", "Mars",
	"Jupiter", "Saturn", "Uranus", "Neptune", "Pluto", "North Node",
	"South Node", "Ascendant", "Midheaven"}

var bodyAbbr = [...]string{"Sun", "Moo", "Mer", "Ven", "Mar", "Jup", "Sat",
	"Ura", "Nep", "Plu", "NNo", "SNo", "Asc", "MC"}

func (b Body) String() string {
	if b < 0 || int(b) >= len(bodyNames) {
		return fmt.Sprintf("Body(%d)", int(b))
	}
	return bodyNames[b]
}

// Abbr returns a short fixed width name for tabular output.
func (b Body) Abbr() string {
	if b < 0 || int(b) >= len(bodyAbbr) {
		return "???"
	}
	return bodyAbbr[b]
}

// IsAngle reports whether b is one of the house frame angles.
func (b Body) IsAngle() bool { return b == Ascendant || b == Midheaven }

// IsLuminary reports whether b is the Sun or the Moon.
func (b Body) IsLuminary() bool { return b == Sun || b == Moon }

// IsNode reports whether b is a lunar node.
func (b Body) IsNode() bool { return b == NorthNode || b == SouthNode }

// ParseBody accepts a body name, case and space insensitive.
func ParseBody(s string) (Body, error) {
	k := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	for i, n := range bodyNames {
		if k == strings.ToLower(strings.ReplaceAll(n, " ", "")) {
			return Body(i), nil
		}
	}
	return 0, fmt.Errorf("unknown body %q", s)
}

func (b Body) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *Body) UnmarshalText(t []byte) (err error) {
	*b, err = ParseBody(string(t))
	return
}

// Sign is a 30 degree division of the ecliptic, starting from the
// vernal equinox.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{"Aries", "Taurus", "Gemini", "Cancer", "Leo",
	"Virgo", "Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius",
	"Pisces"}

func (s Sign) String() string {
	if s < 0 || int(s) >= len(signNames) {
		return fmt.Sprintf("Sign(%d)", int(s))
	}
	return signNames[s]
}

// Abbr returns the three letter abbreviation.
func (s Sign) Abbr() string { return s.String()[:3] }

// ParseSign accepts a sign name or its abbreviation, case insensitive.
func ParseSign(s string) (Sign, error) {
	k := strings.ToLower(strings.TrimSpace(s))
	for i, n := range signNames {
		if n = strings.ToLower(n); k == n || k == n[:3] {
			return Sign(i), nil
		}
	}
	return 0, fmt.Errorf("unknown sign %q", s)
}

func (s Sign) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Sign) UnmarshalText(t []byte) (err error) {
	*s, err = ParseSign(string(t))
	return
}

// Element of the sign.  Signs cycle fire, earth, air, water.
func (s Sign) Element() Element { return Element(s % 4) }

// Modality of the sign.  Signs cycle cardinal, fixed, mutable.
func (s Sign) Modality() Modality { return Modality(s % 3) }

// Element is one of the four classical elements.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// Elements lists the elements in order.
var Elements = []Element{Fire, Earth, Air, Water}

func (e Element) String() string {
	switch e {
	case Fire:
		return "Fire"
	case Earth:
		return "Earth"
	case Air:
		return "Air"
	case Water:
		return "Water"
	}
	return fmt.Sprintf("Element(%d)", int(e))
}

func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Modality is one of the three sign qualities.
type Modality int

const (
	Cardinal Modality = iota
	Fixed
	Mutable
)

// Modalities lists the modalities in order.
var Modalities = []Modality{Cardinal, Fixed, Mutable}

func (m Modality) String() string {
	switch m {
	case Cardinal:
		return "Cardinal"
	case Fixed:
		return "Fixed"
	case Mutable:
		return "Mutable"
	}
	return fmt.Sprintf("Modality(%d)", int(m))
}

func (m Modality) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// SignOf splits an ecliptic longitude into sign and degree within sign.
//
// The longitude is normalized first.  A NaN longitude gives Aries and NaN.
func SignOf(lon float64) (Sign, float64) {
	n := astro.Normalize(lon)
	if math.IsNaN(n) {
		return Aries, n
	}
	s := int(n / 30)
	if s > 11 {
		s = 11
	}
	return Sign(s), n - float64(s)*30
}

// HouseOf returns the house, 1 through 12, containing longitude lon.
//
// Cusps are walked in house order; each house spans from its cusp forward
// to the next cusp, wrapping through 0°.  Zero is returned if no house
// contains lon, which only happens for non-finite input.
func HouseOf(lon float64, cusps []float64) int {
	n := len(cusps)
	for i, c := range cusps {
		span := astro.Normalize(cusps[(i+1)%n] - c)
		if astro.Normalize(lon-c) < span {
			return i + 1
		}
	}
	return 0
}

// FormatDegree formats an angle in degrees as degrees, minutes and seconds.
func FormatDegree(deg float64) string {
	return fmt.Sprintf("%.0d", sexa.FmtAngle(unit.AngleFromDeg(deg)))
}

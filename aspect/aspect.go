// Public domain.

// Package aspect finds the angular relationships between chart bodies.
//
// Each aspect type has an exact angle and a base orb.  The orb allowed for
// a pair of bodies is the base orb scaled by the mean of the two bodies'
// orb modifiers.  Types are tried in a fixed priority order and the first
// match is recorded; the orbs of the supported types never overlap so the
// first match is also the tightest.
package aspect

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/soniakeys/natal/astro"
	"github.com/soniakeys/natal/zodiac"
)

// Type is a kind of aspect.
type Type int

// Types in priority order.  The first five are the major aspects.
const (
	Conjunction Type = iota
	Opposition
	Trine
	Square
	Sextile
	Quincunx
	Sesquiquadrate
	SemiSquare
	SemiSextile
	Quintile
)

type typeDef struct {
	name   string
	angle  float64
	orb    float64
	weight float64
	nature Nature
}

var defs = [...]typeDef{
	Conjunction:    {"Conjunction", 0, 8, 10, Neutral},
	Opposition:     {"Opposition", 180, 8, 8, Challenging},
	Trine:          {"Trine", 120, 8, 6, Harmonious},
	Square:         {"Square", 90, 7, 8, Challenging},
	Sextile:        {"Sextile", 60, 6, 6, Harmonious},
	Quincunx:       {"Quincunx", 150, 3, 3, Neutral},
	Sesquiquadrate: {"Sesquiquadrate", 135, 2, 3, Challenging},
	SemiSquare:     {"Semi-square", 45, 2, 3, Challenging},
	SemiSextile:    {"Semi-sextile", 30, 2, 3, Neutral},
	Quintile:       {"Quintile", 72, 2, 3, Harmonious},
}

// Major and Minor list the types of each set in priority order.
var (
	Major = []Type{Conjunction, Opposition, Trine, Square, Sextile}
	Minor = []Type{Quincunx, Sesquiquadrate, SemiSquare, SemiSextile, Quintile}
)

func (t Type) valid() bool { return t >= 0 && int(t) < len(defs) }

func (t Type) String() string {
	if !t.valid() {
		return fmt.Sprintf("Type(%d)", int(t))
	}
	return defs[t].name
}

// Angle returns the exact angle of the aspect in degrees.
func (t Type) Angle() float64 { return defs[t].angle }

// Orb returns the base orb in degrees, before body modifiers.
func (t Type) Orb() float64 { return defs[t].orb }

// Weight is the score of an exact aspect of type t.
func (t Type) Weight() float64 { return defs[t].weight }

// Nature returns the traditional character of the aspect.
func (t Type) Nature() Nature { return defs[t].nature }

// IsMajor reports whether t belongs to the major set.
func (t Type) IsMajor() bool { return t >= Conjunction && t <= Sextile }

// ParseType accepts a type name, case, space and hyphen insensitive.
func ParseType(s string) (Type, error) {
	k := typeKey(s)
	for i := range defs {
		if k == typeKey(defs[i].name) {
			return Type(i), nil
		}
	}
	return 0, fmt.Errorf("unknown aspect type %q", s)
}

func typeKey(s string) string {
	return strings.NewReplacer("-", "", " ", "", "_", "").Replace(strings.ToLower(s))
}

func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Type) UnmarshalText(b []byte) (err error) {
	*t, err = ParseType(string(b))
	return
}

// Nature categorizes aspects as harmonious, challenging or neutral.
type Nature int

const (
	Neutral Nature = iota
	Harmonious
	Challenging
)

func (n Nature) String() string {
	switch n {
	case Neutral:
		return "neutral"
	case Harmonious:
		return "harmonious"
	case Challenging:
		return "challenging"
	}
	return fmt.Sprintf("Nature(%d)", int(n))
}

func (n Nature) MarshalText() ([]byte, error) { return []byte(n.String()), nil }

// OrbModifier scales the orbs of aspects involving b.  Luminaries get the
// widest orbs, outer planets and the nodes the narrowest.
func OrbModifier(b zodiac.Body) float64 {
	switch b {
	case zodiac.Sun, zodiac.Moon:
		return 1.2
	case zodiac.Jupiter, zodiac.Saturn:
		return .9
	case zodiac.Uranus, zodiac.Neptune, zodiac.Pluto,
		zodiac.NorthNode, zodiac.SouthNode:
		return .8
	}
	return 1
}

// MaxOrb returns the orb allowed for an aspect of type t between a and b.
func MaxOrb(t Type, a, b zodiac.Body) float64 {
	return t.Orb() * (OrbModifier(a) + OrbModifier(b)) / 2
}

// AngleBetween returns the shortest separation of two longitudes, in
// degrees [0, 180].
func AngleBetween(lon1, lon2 float64) float64 {
	d := astro.Normalize(lon2 - lon1)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Aspect is one angular relationship between two bodies.
type Aspect struct {
	A          zodiac.Body `json:"a"`
	B          zodiac.Body `json:"b"`
	Type       Type        `json:"type"`
	Separation float64     `json:"separation"` // degrees [0, 180]
	Orb        float64     `json:"orb"`        // |Separation - exact angle|
	MaxOrb     float64     `json:"max_orb"`
	Applying   bool        `json:"applying"`
}

// Involves reports whether b is either body of the aspect.
func (a Aspect) Involves(b zodiac.Body) bool { return a.A == b || a.B == b }

// Score rewards tight orbs linearly, scaled by the type weight.
func (a Aspect) Score() float64 {
	if a.MaxOrb <= 0 {
		return 0
	}
	return (1 - a.Orb/a.MaxOrb) * a.Type.Weight()
}

func (a Aspect) String() string {
	s := "separating"
	if a.Applying {
		s = "applying"
	}
	return fmt.Sprintf("%s %s %s orb %.2f° %s", a.A, a.Type, a.B, a.Orb, s)
}

// Options select the aspect types searched.
type Options struct {
	Minor bool // include the minor aspects
}

// Types returns the types searched, in priority order.
func (o Options) Types() []Type {
	if !o.Minor {
		return Major
	}
	return append(append([]Type{}, Major...), Minor...)
}

// Find returns the aspects among positions, at most one per pair.
//
// Pairs are visited in input order.  The North Node to South Node pair is
// skipped since the nodes are always opposite.
func Find(positions []zodiac.Position, o Options) []Aspect {
	types := o.Types()
	var as []Aspect
	for i, p := range positions {
		for _, q := range positions[i+1:] {
			if p.Body.IsNode() && q.Body.IsNode() {
				continue
			}
			if a, ok := match(p, q, types); ok {
				as = append(as, a)
			}
		}
	}
	return as
}

// Between returns the aspect between p and q, if any.
func Between(p, q zodiac.Position, o Options) (Aspect, bool) {
	return match(p, q, o.Types())
}

func match(p, q zodiac.Position, types []Type) (Aspect, bool) {
	sep := AngleBetween(p.Longitude, q.Longitude)
	for _, t := range types {
		orb := math.Abs(sep - t.Angle())
		limit := MaxOrb(t, p.Body, q.Body)
		if orb <= limit {
			return Aspect{
				A:          p.Body,
				B:          q.Body,
				Type:       t,
				Separation: sep,
				Orb:        orb,
				MaxOrb:     limit,
				Applying:   applying(p, q, t.Angle(), orb),
			}, true
		}
	}
	return Aspect{}, false
}

// applying advances both bodies one day at their current speeds and
// reports whether the separation moves toward the exact angle.
func applying(p, q zodiac.Position, exact, orb float64) bool {
	next := AngleBetween(p.Longitude+p.Speed, q.Longitude+q.Speed)
	return math.Abs(next-exact) < orb
}

// FilterByType returns the aspects of type t.
func FilterByType(as []Aspect, t Type) []Aspect {
	var r []Aspect
	for _, a := range as {
		if a.Type == t {
			r = append(r, a)
		}
	}
	return r
}

// FilterByBody returns the aspects involving b.
func FilterByBody(as []Aspect, b zodiac.Body) []Aspect {
	var r []Aspect
	for _, a := range as {
		if a.Involves(b) {
			r = append(r, a)
		}
	}
	return r
}

// FilterByNature returns the aspects of nature n.
func FilterByNature(as []Aspect, n Nature) []Aspect {
	var r []Aspect
	for _, a := range as {
		if a.Type.Nature() == n {
			r = append(r, a)
		}
	}
	return r
}

// TotalScore sums the scores of as.
func TotalScore(as []Aspect) float64 {
	s := make([]float64, len(as))
	for i, a := range as {
		s[i] = a.Score()
	}
	return floats.Sum(s)
}

// Balance returns the summed scores of harmonious and challenging aspects.
func Balance(as []Aspect) (harmonious, challenging float64) {
	return TotalScore(FilterByNature(as, Harmonious)),
		TotalScore(FilterByNature(as, Challenging))
}

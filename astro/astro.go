// Public domain.

// Package astro, time scales and Earth orientation needed for chart work.
//
// All functions are closed form.  Angles are returned in degrees.
package astro

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/unit"
)

const secPerDay = 86400

// j2000 is the instant of Julian Day 2451545.0.
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// JulianDay converts an instant to a Julian Day number.
//
// The instant is taken in UTC and interpreted in the proleptic Gregorian
// calendar, the same calendar time.Time uses.
func JulianDay(t time.Time) float64 {
	u := t.UTC()
	y, m, d := u.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	frac := float64(u.Sub(midnight)) / float64(24*time.Hour)
	return julian.CalendarGregorianToJD(y, int(m), float64(d)+frac)
}

// Calendar, the inverse of JulianDay.  The result is in UTC, rounded
// to the millisecond.
func Calendar(jd float64) time.Time {
	dj := jd - base.J2000
	days := math.Floor(dj)
	ms := math.Round((dj - days) * secPerDay * 1e3)
	return j2000.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}

// JulianCentury returns centuries since J2000.0.
func JulianCentury(jd float64) float64 {
	return base.J2000Century(jd)
}

// GreenwichSiderealTime returns mean sidereal time at Greenwich, in degrees.
func GreenwichSiderealTime(jd float64) float64 {
	// 86400 seconds of time = 360 degrees
	return Normalize(sidereal.Mean(jd).Sec() / 240)
}

// LocalSiderealTime, Greenwich sidereal time plus east longitude.
func LocalSiderealTime(jd, longitude float64) float64 {
	return Normalize(GreenwichSiderealTime(jd) + longitude)
}

// Obliquity returns the mean obliquity of the ecliptic, in degrees.
func Obliquity(jd float64) float64 {
	return nutation.MeanObliquity(jd).Deg()
}

// Normalize reduces an angle in degrees to the range [0, 360).
//
// NaN and infinities come back as NaN.
func Normalize(deg float64) float64 {
	n := unit.PMod(deg, 360)
	if n == 360 {
		// PMod can round up for tiny negative inputs
		return 0
	}
	return n
}

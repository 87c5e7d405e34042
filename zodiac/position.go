// Public domain.

package zodiac

import (
	"fmt"

	"github.com/soniakeys/natal/astro"
)

// Position is the place of one body at one instant.
type Position struct {
	Body       Body    `json:"body"`
	Longitude  float64 `json:"longitude"`  // ecliptic, degrees [0, 360)
	Latitude   float64 `json:"latitude"`   // ecliptic, degrees
	Speed      float64 `json:"speed"`      // degrees per day, negative when retrograde
	Retrograde bool    `json:"retrograde"` // Speed < 0
	Sign       Sign    `json:"sign"`
	SignDegree float64 `json:"sign_degree"` // [0, 30)
	House      int     `json:"house,omitempty"`
}

// NewPosition normalizes the longitude and derives the sign and
// retrograde fields.  House is left unassigned.
func NewPosition(b Body, lon, lat, speed float64) Position {
	p := Position{
		Body:       b,
		Longitude:  astro.Normalize(lon),
		Latitude:   lat,
		Speed:      speed,
		Retrograde: speed < 0,
	}
	p.Sign, p.SignDegree = SignOf(p.Longitude)
	return p
}

// InHouse returns a copy of p with House assigned from the cusp longitudes.
func (p Position) InHouse(cusps []float64) Position {
	p.House = HouseOf(p.Longitude, cusps)
	return p
}

func (p Position) String() string {
	r := ""
	if p.Retrograde {
		r = " R"
	}
	return fmt.Sprintf("%s %s %s%s", p.Body, FormatDegree(p.SignDegree), p.Sign.Abbr(), r)
}

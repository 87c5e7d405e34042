// Public domain.

package zodiac_test

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soniakeys/natal/zodiac"
)

func ExampleSignOf() {
	s, d := zodiac.SignOf(84.5)
	fmt.Println(s, d)
	s, d = zodiac.SignOf(-15)
	fmt.Println(s, d)
	// Output:
	// Gemini 24.5
	// Pisces 15
}

func TestSignOf(t *testing.T) {
	for i := 0; i < 12; i++ {
		s, d := zodiac.SignOf(float64(i)*30 + 10)
		assert.Equal(t, zodiac.Sign(i), s)
		assert.InDelta(t, 10, d, 1e-9)
	}
	s, d := zodiac.SignOf(360)
	assert.Equal(t, zodiac.Aries, s)
	assert.Equal(t, 0., d)

	s, d = zodiac.SignOf(math.NaN())
	assert.Equal(t, zodiac.Aries, s)
	assert.True(t, math.IsNaN(d))
}

func TestElementsAndModalities(t *testing.T) {
	assert.Equal(t, zodiac.Fire, zodiac.Aries.Element())
	assert.Equal(t, zodiac.Earth, zodiac.Taurus.Element())
	assert.Equal(t, zodiac.Air, zodiac.Gemini.Element())
	assert.Equal(t, zodiac.Water, zodiac.Pisces.Element())
	assert.Equal(t, zodiac.Fire, zodiac.Sagittarius.Element())

	assert.Equal(t, zodiac.Cardinal, zodiac.Capricorn.Modality())
	assert.Equal(t, zodiac.Fixed, zodiac.Scorpio.Modality())
	assert.Equal(t, zodiac.Mutable, zodiac.Pisces.Modality())
	assert.Equal(t, zodiac.Cardinal, zodiac.Libra.Modality())
}

func TestHouseOf(t *testing.T) {
	// cusps straddling 0°
	cusps := []float64{350, 20, 50, 80, 110, 140, 170, 200, 230, 260, 290, 320}
	tests := []struct {
		lon   float64
		house int
	}{
		{350, 1},
		{355, 1},
		{5, 1},
		{19.999, 1},
		{20, 2},
		{100, 4},
		{319, 11},
		{320, 12},
		{349.9, 12},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.house, zodiac.HouseOf(tc.lon, cusps), "lon %g", tc.lon)
	}
	assert.Equal(t, 0, zodiac.HouseOf(math.NaN(), cusps))

	// unequal houses
	cusps = []float64{100, 125, 155, 190, 225, 255, 280, 305, 335, 10, 45, 75}
	assert.Equal(t, 9, zodiac.HouseOf(0, cusps))
	assert.Equal(t, 10, zodiac.HouseOf(10, cusps))
	assert.Equal(t, 12, zodiac.HouseOf(99, cusps))
}

func TestNewPosition(t *testing.T) {
	p := zodiac.NewPosition(zodiac.Mars, -5, 1.2, -0.3)
	assert.InDelta(t, 355, p.Longitude, 1e-9)
	assert.Equal(t, zodiac.Pisces, p.Sign)
	assert.InDelta(t, 25, p.SignDegree, 1e-9)
	assert.True(t, p.Retrograde)
	assert.Equal(t, 0, p.House)

	p = zodiac.NewPosition(zodiac.Sun, 84.5, 0, .98)
	assert.False(t, p.Retrograde)
	assert.Contains(t, p.String(), "Sun")
	assert.Contains(t, p.String(), "Gem")

	h := p.InHouse([]float64{0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330})
	assert.Equal(t, 3, h.House)
	assert.Equal(t, 0, p.House, "InHouse must not modify the receiver")
}

func TestParseBody(t *testing.T) {
	for _, b := range zodiac.Bodies {
		got, err := zodiac.ParseBody(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}
	b, err := zodiac.ParseBody("northnode")
	require.NoError(t, err)
	assert.Equal(t, zodiac.NorthNode, b)

	_, err = zodiac.ParseBody("Vulcan")
	assert.Error(t, err)
}

func TestPositionJSON(t *testing.T) {
	p := zodiac.NewPosition(zodiac.NorthNode, 200, 0, -.05)
	buf, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(buf), `"body":"North Node"`)
	assert.Contains(t, string(buf), `"sign":"Libra"`)

	var back struct {
		Body zodiac.Body `json:"body"`
	}
	require.NoError(t, json.Unmarshal(buf, &back))
	assert.Equal(t, zodiac.NorthNode, back.Body)
}

func TestParseSign(t *testing.T) {
	for s := zodiac.Aries; s <= zodiac.Pisces; s++ {
		got, err := zodiac.ParseSign(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
		got, err = zodiac.ParseSign(s.Abbr())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	s, err := zodiac.ParseSign(" capricorn")
	require.NoError(t, err)
	assert.Equal(t, zodiac.Capricorn, s)

	_, err = zodiac.ParseSign("Ophiuchus")
	assert.Error(t, err)
}

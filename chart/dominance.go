// Public domain.

package chart

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/soniakeys/natal/aspect"
	"github.com/soniakeys/natal/zodiac"
)

// Weight is the emphasis a body contributes to dominance totals.
func Weight(b zodiac.Body) float64 {
	switch b {
	case zodiac.Sun, zodiac.Moon, zodiac.Ascendant, zodiac.Midheaven:
		return 3
	case zodiac.Mercury, zodiac.Venus, zodiac.Mars:
		return 2
	case zodiac.Jupiter, zodiac.Saturn:
		return 1.5
	case zodiac.NorthNode, zodiac.SouthNode:
		return .5
	}
	return 1
}

// Activity scores one body by its aspects.
type Activity struct {
	Body    zodiac.Body `json:"body"`
	Aspects int         `json:"aspects"`
	Score   float64     `json:"score"` // Aspects times Weight(Body)
}

// Dominance summarizes the emphasis of a chart.
type Dominance struct {
	Elements   map[zodiac.Element]float64  `json:"elements"`
	Modalities map[zodiac.Modality]float64 `json:"modalities"`
	Element    zodiac.Element              `json:"dominant_element"`
	Modality   zodiac.Modality             `json:"dominant_modality"`
	Activity   []Activity                  `json:"activity"` // highest score first
}

// Share returns the fraction of the element total held by e.
func (d *Dominance) Share(e zodiac.Element) float64 {
	t := make([]float64, 0, len(d.Elements))
	for _, v := range d.Elements {
		t = append(t, v)
	}
	sum := floats.Sum(t)
	if sum == 0 {
		return 0
	}
	return d.Elements[e] / sum
}

// ComputeDominance accumulates body weights by the element and modality of
// each position's sign, and ranks bodies by weighted aspect count.
func ComputeDominance(ps []zodiac.Position, as []aspect.Aspect) Dominance {
	el := make([]float64, len(zodiac.Elements))
	mo := make([]float64, len(zodiac.Modalities))
	for _, p := range ps {
		w := Weight(p.Body)
		el[p.Sign.Element()] += w
		mo[p.Sign.Modality()] += w
	}
	d := Dominance{
		Elements:   make(map[zodiac.Element]float64, len(el)),
		Modalities: make(map[zodiac.Modality]float64, len(mo)),
		Element:    zodiac.Elements[floats.MaxIdx(el)],
		Modality:   zodiac.Modalities[floats.MaxIdx(mo)],
	}
	for i, e := range zodiac.Elements {
		d.Elements[e] = el[i]
	}
	for i, m := range zodiac.Modalities {
		d.Modalities[m] = mo[i]
	}

	d.Activity = make([]Activity, len(ps))
	for i, p := range ps {
		n := len(aspect.FilterByBody(as, p.Body))
		d.Activity[i] = Activity{Body: p.Body, Aspects: n, Score: float64(n) * Weight(p.Body)}
	}
	sort.SliceStable(d.Activity, func(i, j int) bool {
		return d.Activity[i].Score > d.Activity[j].Score
	})
	return d
}

// Dominance returns the dominance summary of c.
func (c *NatalChart) Dominance() Dominance {
	return ComputeDominance(c.Positions, c.Aspects)
}

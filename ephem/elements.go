// Public domain.

package ephem

import "github.com/soniakeys/natal/zodiac"

// Elements are mean Keplerian elements at J2000.0 with linear rates.
//
// Angles are degrees, A is au.  Rates are per Julian century.
type Elements struct {
	A, E, I, L, Peri, Node       float64
	DA, DE, DI, DL, DPeri, DNode float64
}

// at propagates the elements to T centuries from J2000.
func (el *Elements) at(T float64) Elements {
	return Elements{
		A:    el.A + el.DA*T,
		E:    el.E + el.DE*T,
		I:    el.I + el.DI*T,
		L:    el.L + el.DL*T,
		Peri: el.Peri + el.DPeri*T,
		Node: el.Node + el.DNode*T,
	}
}

// Approximate elements for the major planets, 1800 AD - 2050 AD.
// Standish, E.M., "Keplerian Elements for Approximate Positions of the
// Major Planets," JPL Solar System Dynamics, table 1.
//
// Earth is the Earth-Moon barycenter.  Pluto's elements are a plain
// two-body orbit with no perturbations.
var earth = Elements{
	A: 1.00000261, E: 0.01671123, I: -0.00001531,
	L: 100.46457166, Peri: 102.93768193, Node: 0,
	DA: 0.00000562, DE: -0.00004392, DI: -0.01294668,
	DL: 35999.37244981, DPeri: 0.32327364, DNode: 0,
}

var planets = map[zodiac.Body]*Elements{
	zodiac.Mercury: {
		A: 0.38709927, E: 0.20563593, I: 7.00497902,
		L: 252.25032350, Peri: 77.45779628, Node: 48.33076593,
		DA: 0.00000037, DE: 0.00001906, DI: -0.00594749,
		DL: 149472.67411175, DPeri: 0.16047689, DNode: -0.12534081,
	},
	zodiac.Venus: {
		A: 0.72333566, E: 0.00677672, I: 3.39467605,
		L: 181.97909950, Peri: 131.60246718, Node: 76.67984255,
		DA: 0.00000390, DE: -0.00004107, DI: -0.00078890,
		DL: 58517.81538729, DPeri: 0.00268329, DNode: -0.27769418,
	},
	zodiac.Mars: {
		A: 1.52371034, E: 0.09339410, I: 1.84969142,
		L: -4.55343205, Peri: -23.94362959, Node: 49.55953891,
		DA: 0.00001847, DE: 0.00007882, DI: -0.00813131,
		DL: 19140.30268499, DPeri: 0.44441088, DNode: -0.29257343,
	},
	zodiac.Jupiter: {
		A: 5.20288700, E: 0.04838624, I: 1.30439695,
		L: 34.39644051, Peri: 14.72847983, Node: 100.47390909,
		DA: -0.00011607, DE: -0.00013253, DI: -0.00183714,
		DL: 3034.74612775, DPeri: 0.21252668, DNode: 0.20469106,
	},
	zodiac.Saturn: {
		A: 9.53667594, E: 0.05386179, I: 2.48599187,
		L: 49.95424423, Peri: 92.59887831, Node: 113.66242448,
		DA: -0.00125060, DE: -0.00050991, DI: 0.00193609,
		DL: 1222.49362201, DPeri: -0.41897216, DNode: -0.28867794,
	},
	zodiac.Uranus: {
		A: 19.18916464, E: 0.04725744, I: 0.77263783,
		L: 313.23810451, Peri: 170.95427630, Node: 74.01692503,
		DA: -0.00196176, DE: -0.00004397, DI: -0.00242939,
		DL: 428.48202785, DPeri: 0.40805281, DNode: 0.04240589,
	},
	zodiac.Neptune: {
		A: 30.06992276, E: 0.00859048, I: 1.77004347,
		L: -55.12002969, Peri: 44.96476227, Node: 131.78422574,
		DA: 0.00026291, DE: 0.00005105, DI: 0.00035372,
		DL: 218.45945325, DPeri: -0.32241464, DNode: -0.00508664,
	},
	zodiac.Pluto: {
		A: 39.48211675, E: 0.24882730, I: 17.14001206,
		L: 238.92903833, Peri: 224.06891629, Node: 110.30393684,
		DL: 145.20780515,
	},
}

// Planets lists the bodies with Keplerian elements, in chart order.
var Planets = []zodiac.Body{zodiac.Mercury, zodiac.Venus, zodiac.Mars,
	zodiac.Jupiter, zodiac.Saturn, zodiac.Uranus, zodiac.Neptune, zodiac.Pluto}

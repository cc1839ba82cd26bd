/*
Package units implements the unit algebra for CSS numeric values.

Every unit belongs to exactly one category (length, angle, time, frequency,
resolution or plain number). Units of the same category convert into each
other by fixed ratios, with the exception of font- and viewport-relative
lengths, which need Metrics to be resolved.

During multiplication and division, quantities are tracked as a Dimension,
i.e. a category raised to an integer exponent. Frequencies are reciprocal
times, so a Dimension never carries category Frequency with an exponent
other than the one reported to clients.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package units

import (
	"math"
	"strings"

	"github.com/npillmayer/cssval/css/csserr"
)

// Unit is a CSS unit kind.
type Unit uint8

// Units known to the value model. None is the unit of a plain number.
const (
	None Unit = iota
	PX
	PT
	PC
	IN
	CM
	MM
	Q
	EM
	REM
	EX
	CH
	VW
	VH
	VMIN
	VMAX
	Percent
	DEG
	GRAD
	RAD
	TURN
	S
	MS
	HZ
	KHZ
	DPI
	DPCM
	DPPX
	unitCount
)

// Category is a physical category of units.
type Category uint8

// Unit categories.
const (
	Number Category = iota
	Length
	Angle
	Time
	Frequency
	Resolution
)

func (c Category) String() string {
	switch c {
	case Number:
		return "number"
	case Length:
		return "length"
	case Angle:
		return "angle"
	case Time:
		return "time"
	case Frequency:
		return "frequency"
	case Resolution:
		return "resolution"
	}
	return "?"
}

type unitInfo struct {
	suffix   string
	category Category
	factor   float64 // ratio to the canonical unit of the category; 0 for relative units
}

var unitTable = [unitCount]unitInfo{
	None:    {"", Number, 1},
	PX:      {"px", Length, 1},
	PT:      {"pt", Length, 96.0 / 72.0},
	PC:      {"pc", Length, 16},
	IN:      {"in", Length, 96},
	CM:      {"cm", Length, 96 / 2.54},
	MM:      {"mm", Length, 96 / 25.4},
	Q:       {"Q", Length, 96 / 101.6},
	EM:      {"em", Length, 0},
	REM:     {"rem", Length, 0},
	EX:      {"ex", Length, 0},
	CH:      {"ch", Length, 0},
	VW:      {"vw", Length, 0},
	VH:      {"vh", Length, 0},
	VMIN:    {"vmin", Length, 0},
	VMAX:    {"vmax", Length, 0},
	Percent: {"%", Length, 0},
	DEG:     {"deg", Angle, 1},
	GRAD:    {"grad", Angle, 0.9},
	RAD:     {"rad", Angle, 180 / math.Pi},
	TURN:    {"turn", Angle, 360},
	S:       {"s", Time, 1},
	MS:      {"ms", Time, 0.001},
	HZ:      {"Hz", Frequency, 1},
	KHZ:     {"kHz", Frequency, 1000},
	DPI:     {"dpi", Resolution, 1.0 / 96.0},
	DPCM:    {"dpcm", Resolution, 2.54 / 96.0},
	DPPX:    {"dppx", Resolution, 1},
}

var canonical = map[Category]Unit{
	Number:     None,
	Length:     PX,
	Angle:      DEG,
	Time:       S,
	Frequency:  HZ,
	Resolution: DPPX,
}

// Canonical returns the unit all other units of category c are measured against.
func Canonical(c Category) Unit {
	return canonical[c]
}

func (u Unit) String() string {
	if u >= unitCount {
		return "?"
	}
	return unitTable[u].suffix
}

// Category returns the category of unit u.
func (u Unit) Category() Category {
	if u >= unitCount {
		return Number
	}
	return unitTable[u].category
}

// IsRelative is true for units which need Metrics to convert to absolute units.
func (u Unit) IsRelative() bool {
	return u < unitCount && unitTable[u].category == Length && unitTable[u].factor == 0
}

// IsDimensioned is true for every unit other than None.
func (u Unit) IsDimensioned() bool {
	return u != None
}

// Parse finds the unit for a unit suffix. Suffixes are case-insensitive.
func Parse(suffix string) (Unit, bool) {
	if suffix == "" {
		return None, true
	}
	if strings.EqualFold(suffix, "x") {
		return DPPX, true
	}
	for u := PX; u < unitCount; u++ {
		if strings.EqualFold(unitTable[u].suffix, suffix) {
			return u, true
		}
	}
	return None, false
}

// Convert converts magnitude x from unit `from` to unit `to`.
// Units of different categories and relative units other than identity
// conversions raise a TYPE_MISMATCH_ERR. Use Metrics.Convert for relative units.
func Convert(x float64, from, to Unit) (float64, error) {
	if from == to {
		return x, nil
	}
	if from.Category() != to.Category() {
		return 0, csserr.TypeMismatch("cannot convert %s to %s", from.Category(), to.Category())
	}
	f, t := unitTable[from].factor, unitTable[to].factor
	if f == 0 || t == 0 {
		return 0, csserr.TypeMismatch("cannot convert %q to %q without metrics", from, to)
	}
	return x * f / t, nil
}

// --- Metrics ---------------------------------------------------------------

// Metrics holds the values needed to resolve relative lengths, all in px.
// A zero field means "unknown"; units depending on it cannot be resolved.
type Metrics struct {
	FontSize       float64 // 1em
	RootFontSize   float64 // 1rem
	ExHeight       float64 // 1ex; defaults to FontSize/2
	ChWidth        float64 // 1ch; defaults to FontSize/2
	ViewportWidth  float64
	ViewportHeight float64
	PercentBase    float64 // what 100% refers to
}

// Px returns the size of one relative unit u in px.
func (m *Metrics) Px(u Unit) (float64, bool) {
	if m == nil {
		return 0, false
	}
	var px float64
	switch u {
	case EM:
		px = m.FontSize
	case REM:
		px = m.RootFontSize
	case EX:
		px = m.ExHeight
		if px == 0 {
			px = m.FontSize / 2
		}
	case CH:
		px = m.ChWidth
		if px == 0 {
			px = m.FontSize / 2
		}
	case VW:
		px = m.ViewportWidth / 100
	case VH:
		px = m.ViewportHeight / 100
	case VMIN:
		px = math.Min(m.ViewportWidth, m.ViewportHeight) / 100
	case VMAX:
		px = math.Max(m.ViewportWidth, m.ViewportHeight) / 100
	case Percent:
		px = m.PercentBase / 100
	default:
		if u.Category() == Length {
			return unitTable[u].factor, true
		}
		return 0, false
	}
	return px, px != 0
}

// Convert converts x between units, resolving relative lengths with m.
func (m *Metrics) Convert(x float64, from, to Unit) (float64, error) {
	if from == to || (!from.IsRelative() && !to.IsRelative()) {
		return Convert(x, from, to)
	}
	if from.Category() != Length || to.Category() != Length {
		return 0, csserr.TypeMismatch("cannot convert %s to %s", from.Category(), to.Category())
	}
	f, ok1 := m.Px(from)
	t, ok2 := m.Px(to)
	if !ok1 || !ok2 {
		return 0, csserr.TypeMismatch("cannot convert %q to %q without metrics", from, to)
	}
	return x * f / t, nil
}

// --- Dimensions ------------------------------------------------------------

// Dimension is a category raised to an exponent. Exponent 0 means
// dimensionless. Frequencies are represented as Time^-1.
type Dimension struct {
	Category Category
	Exp      int
}

// Dimensionless is the dimension of plain numbers.
var Dimensionless = Dimension{Category: Number}

// DimensionOf returns the dimension of a single quantity of unit u.
func DimensionOf(u Unit) Dimension {
	switch c := u.Category(); c {
	case Number:
		return Dimensionless
	case Frequency:
		return Dimension{Category: Time, Exp: -1}
	default:
		return Dimension{Category: c, Exp: 1}
	}
}

// IsNumber is true for dimensionless quantities.
func (d Dimension) IsNumber() bool {
	return d.Exp == 0
}

// Inverse returns d^-1.
func (d Dimension) Inverse() Dimension {
	if d.Exp == 0 {
		return Dimensionless
	}
	return Dimension{Category: d.Category, Exp: -d.Exp}
}

// Mul composes two dimensions. Different categories may not be multiplied,
// as CSS has no composite units.
func (d Dimension) Mul(o Dimension) (Dimension, error) {
	switch {
	case o.Exp == 0:
		return d, nil
	case d.Exp == 0:
		return o, nil
	case d.Category != o.Category:
		return d, csserr.TypeMismatch("cannot combine %s with %s", d.Category, o.Category)
	}
	exp := d.Exp + o.Exp
	if exp == 0 {
		return Dimensionless, nil
	}
	return Dimension{Category: d.Category, Exp: exp}, nil
}

// Sqrt halves the exponent of d. Odd exponents raise TYPE_MISMATCH_ERR.
func (d Dimension) Sqrt() (Dimension, error) {
	if d.Exp%2 != 0 {
		return d, csserr.TypeMismatch("square root of %s^%d", d.Category, d.Exp)
	}
	if d.Exp == 0 {
		return Dimensionless, nil
	}
	return Dimension{Category: d.Category, Exp: d.Exp / 2}, nil
}

// Reported returns the category a result of dimension d is reported in,
// if it may be reported at all. Time^-1 is reported as a frequency.
func (d Dimension) Reported() (Category, bool) {
	switch {
	case d.Exp == 0:
		return Number, true
	case d.Exp == 1:
		return d.Category, true
	case d.Exp == -1 && d.Category == Time:
		return Frequency, true
	}
	return d.Category, false
}

package value

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
)

// Number is a numeric value: a magnitude tagged with a unit.
//
// Magnitudes are float64 and keep the sign of zero. Two numbers are equal if
// their units are equal and their magnitudes are identical at float32
// precision, which is the precision numbers are serialized with.
type Number struct {
	x          float64
	unit       units.Unit
	calculated bool
}

// NewNumber creates a numeric value. NaN is not a valid magnitude and
// results in an INVALID_ACCESS_ERR.
func NewNumber(x float64, unit units.Unit) (*Number, error) {
	if math.IsNaN(x) {
		return nil, csserr.InvalidAccess("NaN is not a valid magnitude")
	}
	return &Number{x: x, unit: unit}, nil
}

// NewCalculated creates a numeric value flagged as the result of a calculation.
func NewCalculated(x float64, unit units.Unit) (*Number, error) {
	n, err := NewNumber(x, unit)
	if err != nil {
		return nil, err
	}
	n.calculated = true
	return n, nil
}

// Float returns the magnitude of n in its own unit.
func (n *Number) Float() float64 {
	return n.x
}

// UnitType returns the unit of n.
func (n *Number) UnitType() units.Unit {
	return n.unit
}

// FloatValue returns the magnitude of n converted to unit u.
func (n *Number) FloatValue(u units.Unit) (float64, error) {
	return units.Convert(n.x, n.unit, u)
}

// IsCalculatedNumber is true for numbers produced by evaluation or conversion.
func (n *Number) IsCalculatedNumber() bool {
	return n.calculated
}

// IsNumberZero is true for a zero magnitude, regardless of its sign.
func (n *Number) IsNumberZero() bool {
	return n.x == 0
}

// IsNegativeNumber is true if the sign bit of the magnitude is set.
// This includes negative zero.
func (n *Number) IsNegativeNumber() bool {
	return math.Signbit(n.x)
}

// IsInfinite is true for ±Infinity.
func (n *Number) IsInfinite() bool {
	return math.IsInf(n.x, 0)
}

func (n *Number) CSSType() CSSType     { return Typed }
func (n *Number) Primitive() Primitive { return Numeric }

// CSSText returns the number with its unit suffix. Infinite magnitudes
// have no literal and serialize as calc(1/0) or calc(-1/0).
func (n *Number) CSSText() string {
	if n.IsInfinite() {
		return n.infinityText()
	}
	return formatFloat(n.x) + n.unit.String()
}

// MinifiedCSSText additionally strips redundant leading zeros. Zero lengths
// lose their unit. Calculated magnitudes are rounded to 4 decimals.
func (n *Number) MinifiedCSSText(string) string {
	return n.minified(true)
}

func (n *Number) minified(dropZeroUnit bool) string {
	if n.IsInfinite() {
		return n.infinityText()
	}
	if n.x == 0 && dropZeroUnit && n.unit.Category() == units.Length && n.unit != units.Percent {
		return formatMinified(n.x)
	}
	x := n.x
	if n.calculated {
		if r := math.Round(x*1e4) / 1e4; r != 0 || x == 0 {
			x = r
		}
	}
	return formatMinified(x) + n.unit.String()
}

func (n *Number) infinityText() string {
	one := "1" + n.unit.String()
	if n.x < 0 {
		one = "-" + one
	}
	return "calc(" + one + "/0)"
}

func (n *Number) Clone() Value {
	c := *n
	return &c
}

func (n *Number) Equals(other Value) bool {
	o, ok := other.(*Number)
	if !ok || o.unit != n.unit {
		return false
	}
	return math.Float32bits(float32(o.x)) == math.Float32bits(float32(n.x))
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(float64(float32(x)), 'f', -1, 32)
}

func formatMinified(x float64) string {
	s := formatFloat(x)
	if strings.HasPrefix(s, "0.") {
		return s[1:]
	} else if strings.HasPrefix(s, "-0.") {
		return "-" + s[2:]
	}
	return s
}

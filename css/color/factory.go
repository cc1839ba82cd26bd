package color

import (
	"strings"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/lexical"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
	"golang.org/x/image/colornames"
)

var functionModels = map[string]Model{
	"rgb":   RGBModel,
	"rgba":  RGBModel,
	"hsl":   HSLModel,
	"hsla":  HSLModel,
	"hwb":   HWBModel,
	"lab":   LabModel,
	"lch":   LChModel,
	"oklab": OKLabModel,
	"oklch": OKLChModel,
}

// Percentages of a and b, and of chroma, refer to these values.
const (
	labABRange     = 125
	lchChromaRange = 150
	okRange        = 0.4
)

// FromLexical is a value.ColorFactory. It creates colors from hex colors,
// color keywords and color functions, and returns false for anything else.
func FromLexical(f *value.Factory, u *lexical.Unit) (value.Value, bool, error) {
	switch u.Kind {
	case lexical.Ident:
		if c, ok := Named(u.Name); ok {
			return c, true, nil
		}
	case lexical.Hash:
		c, err := Hex(u.Name)
		if err != nil {
			return nil, true, err
		}
		return c, true, nil
	case lexical.Function:
		m, ok := functionModels[u.Name]
		if !ok {
			return nil, false, nil
		}
		c, err := fromFunction(f, m, u)
		if err != nil {
			tracer().Debugf("%s: %v", u.Name, err)
			return nil, true, err
		}
		return c, true, nil
	}
	return nil, false, nil
}

// Parse creates a color from CSS text.
func Parse(text string) (Color, error) {
	v, err := value.NewFactory(FromLexical).Parse(text)
	if err != nil {
		return nil, err
	}
	c, ok := v.(Color)
	if !ok {
		return nil, csserr.TypeMismatch("not a color: %q", text)
	}
	return c, nil
}

// SetCSSText replaces the color by the color denoted by text, which has to
// be of the same model.
func (r *record) SetCSSText(text string) error {
	v, err := value.NewFactory(FromLexical).Parse(text)
	if err != nil {
		return err
	}
	c, ok := v.(Color)
	if !ok {
		return csserr.InvalidModification("%q is not a %s color", text, r.model)
	}
	if c.Model() != r.model {
		return csserr.InvalidModification("cannot change %s color to %s", r.model, c.Model())
	}
	*r = *c.rec()
	return nil
}

// --- Keywords and hex colors -----------------------------------------------

// Named returns the color for a color keyword.
func Named(name string) (*RGB, bool) {
	name = strings.ToLower(name)
	var r, g, b, a uint8 = 0, 0, 0, 255
	switch name {
	case "transparent":
		a = 0
	case "rebeccapurple":
		r, g, b = 0x66, 0x33, 0x99
	default:
		c, ok := colornames.Map[name]
		if !ok {
			return nil, false
		}
		r, g, b = c.R, c.G, c.B
	}
	c := rgb8(r, g, b, a)
	c.name = name
	return c, true
}

// Hex returns the color for the digits of a hex color: 3, 4, 6 or 8 hex
// digits, without the leading '#'.
func Hex(digits string) (*RGB, error) {
	digits = strings.ToLower(digits)
	var nibbles []uint8
	for i := 0; i < len(digits); i++ {
		n := strings.IndexByte(hexDigits, digits[i])
		if n < 0 {
			return nil, csserr.Syntax("invalid hex color #%s", digits)
		}
		nibbles = append(nibbles, uint8(n))
	}
	var rgba [4]uint8
	switch len(nibbles) {
	case 3, 4:
		for i, n := range nibbles {
			rgba[i] = n<<4 | n
		}
	case 6, 8:
		for i := 0; i < len(nibbles); i += 2 {
			rgba[i/2] = nibbles[i]<<4 | nibbles[i+1]
		}
	default:
		return nil, csserr.Syntax("invalid hex color #%s", digits)
	}
	if len(nibbles) == 3 || len(nibbles) == 6 {
		rgba[3] = 255
	}
	c := rgb8(rgba[0], rgba[1], rgba[2], rgba[3])
	c.hex = digits
	c.alpha = len(nibbles) == 4 || len(nibbles) == 8
	return c, nil
}

func rgb8(r, g, b, a uint8) *RGB {
	c := &RGB{record{model: RGBModel, fn: "rgb"}}
	for i, x := range []uint8{r, g, b} {
		c.slots[i+1], _ = value.NewNumber(float64(x), units.None)
	}
	if a == 255 {
		c.slots[0] = one()
	} else {
		c.slots[0], _ = value.NewNumber(float64(a)/255, units.None)
	}
	return c
}

// --- Color functions -------------------------------------------------------

// fromFunction creates a color from one of the color functions. Channels
// are separated by whitespace, with an optional alpha after a slash. rgb()
// and hsl() also accept the comma separated legacy syntax.
func fromFunction(f *value.Factory, m Model, u *lexical.Unit) (Color, error) {
	r := record{model: m, fn: u.Name}
	var comps []*lexical.Unit
	var alpha *lexical.Unit
	for _, p := range u.Params {
		if p.Kind == lexical.Comma {
			r.legacy = true
			break
		}
	}
	if r.legacy {
		if m != RGBModel && m != HSLModel {
			return nil, csserr.Syntax("%s() does not take commas", u.Name)
		}
		for i, p := range u.Params {
			if (i%2 == 1) != (p.Kind == lexical.Comma) {
				return nil, csserr.Syntax("malformed %s()", u.Name)
			}
			if i%2 == 0 {
				comps = append(comps, p)
			}
		}
		if len(u.Params)%2 == 0 {
			return nil, csserr.Syntax("%s(): trailing comma", u.Name)
		}
		if len(comps) == 4 {
			comps, alpha = comps[:3], comps[3]
		}
	} else {
		for i, p := range u.Params {
			if p.IsOperator('/') {
				if i != len(u.Params)-2 {
					return nil, csserr.Syntax("%s(): malformed alpha", u.Name)
				}
				alpha = u.Params[i+1]
				break
			}
			comps = append(comps, p)
		}
	}
	if len(comps) != 3 {
		return nil, csserr.Syntax("%s() needs 3 channels, has %d", u.Name, len(comps))
	}
	if alpha == nil {
		r.slots[0] = one()
	} else {
		r.alpha = true
		v, err := component(f, m, 0, alpha)
		if err != nil {
			return nil, err
		}
		if err = validate(kindAlpha, "alpha", v); err != nil {
			return nil, err
		}
		r.slots[0] = v
	}
	for i, p := range comps {
		v, err := component(f, m, i+1, p)
		if err != nil {
			return nil, err
		}
		if err = validate(channelKinds[m][i+1], channelNames[m][i+1], v); err != nil {
			return nil, err
		}
		r.slots[i+1] = v
	}
	return wrap(r), nil
}

// component creates the value of slot i from a lexical unit. Lightness
// given as a number and percentages of a, b and chroma are converted to the
// stored form. none is stored as zero.
func component(f *value.Factory, m Model, i int, u *lexical.Unit) (value.Value, error) {
	k := channelKinds[m][i]
	if u.Kind == lexical.Ident && u.Name == "none" {
		if k == kindPercent {
			return value.NewNumber(0, units.Percent)
		}
		return value.NewNumber(0, units.None)
	}
	v, err := f.CreateUnit(u)
	if err != nil {
		return nil, err
	}
	n, ok := v.(*value.Number)
	if !ok || m < LabModel || i == 0 {
		return v, nil
	}
	x, unit := n.Float(), n.UnitType()
	ok = m == OKLabModel || m == OKLChModel
	switch {
	case i == 1 && unit == units.None:
		if ok {
			x *= 100
		}
		return value.NewNumber(x, units.Percent)
	case i > 1 && k != kindHue && unit == units.Percent:
		scale := float64(labABRange)
		switch {
		case ok:
			scale = okRange
		case k == kindChroma:
			scale = lchChromaRange
		}
		return value.NewNumber(x*scale/100, units.None)
	}
	return v, nil
}

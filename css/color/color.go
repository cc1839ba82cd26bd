package color

import (
	"math"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
)

// Model is a color model.
type Model uint8

// Color models.
const (
	RGBModel Model = iota
	HSLModel
	HWBModel
	LabModel
	LChModel
	OKLabModel
	OKLChModel
)

var modelNames = [...]string{"rgb", "hsl", "hwb", "lab", "lch", "oklab", "oklch"}

var colorSpaces = [...]string{"srgb", "srgb", "srgb", "lab", "lch", "oklab", "oklch"}

// String returns the name of the color function of m.
func (m Model) String() string {
	if int(m) < len(modelNames) {
		return modelNames[m]
	}
	return "?"
}

// GamutMode selects how out-of-gamut channels are treated when converting
// to an sRGB based model.
type GamutMode uint8

const (
	// Clamped clamps every channel into range.
	Clamped GamutMode = iota
	// Strict rejects out-of-gamut colors with INVALID_ACCESS_ERR.
	Strict
)

func (g GamutMode) String() string {
	if g == Strict {
		return "strict"
	}
	return "clamp"
}

// Color is implemented by the seven color types.
type Color interface {
	value.Value
	Model() Model
	ColorSpace() string
	Item(i int) value.Value
	SetComponent(i int, v value.Value) error
	IsPending() bool
	IsConcrete() bool
	SetCSSText(text string) error
	ToRGB(GamutMode) (*RGB, error)
	ToHSL(GamutMode) (*HSL, error)
	ToHWB(GamutMode) (*HWB, error)
	ToLab() (*Lab, error)
	ToLCh() (*LCh, error)
	ToOKLab() (*OKLab, error)
	ToOKLCh() (*OKLCh, error)
	DeltaE2000(other Color) (float64, error)
	HexString() (string, error)
	rec() *record
}

// --- Channel kinds ---------------------------------------------------------

type kind uint8

const (
	kindAlpha   kind = iota // <number> 0…1 | <percentage>
	kindRGB                 // <number> 0…255 | <percentage>
	kindHue                 // <number> | <angle>, not normalized
	kindPercent             // <percentage> 0…100
	kindNumber              // <number>, unbounded
	kindChroma              // <number> ≥ 0
)

var channelKinds = [...][4]kind{
	RGBModel:   {kindAlpha, kindRGB, kindRGB, kindRGB},
	HSLModel:   {kindAlpha, kindHue, kindPercent, kindPercent},
	HWBModel:   {kindAlpha, kindHue, kindPercent, kindPercent},
	LabModel:   {kindAlpha, kindPercent, kindNumber, kindNumber},
	LChModel:   {kindAlpha, kindPercent, kindChroma, kindHue},
	OKLabModel: {kindAlpha, kindPercent, kindNumber, kindNumber},
	OKLChModel: {kindAlpha, kindPercent, kindChroma, kindHue},
}

var channelNames = [...][4]string{
	RGBModel:   {"alpha", "red", "green", "blue"},
	HSLModel:   {"alpha", "hue", "saturation", "lightness"},
	HWBModel:   {"alpha", "hue", "whiteness", "blackness"},
	LabModel:   {"alpha", "lightness", "a", "b"},
	LChModel:   {"alpha", "lightness", "chroma", "hue"},
	OKLabModel: {"alpha", "lightness", "a", "b"},
	OKLChModel: {"alpha", "lightness", "chroma", "hue"},
}

// deferred is true for values which need evaluation or substitution
// before they are concrete.
func deferred(v value.Value) bool {
	if value.IsPending(v) {
		return true
	}
	switch v.(type) {
	case *value.ExpressionValue, *value.FunctionValue:
		return true
	}
	return false
}

func inRange(x, lo, hi float64) bool {
	return x >= lo && x <= hi
}

// validate checks v against the contract of a channel. Values of the wrong
// kind are a TYPE_MISMATCH_ERR, numbers out of range an INVALID_ACCESS_ERR.
func validate(k kind, name string, v value.Value) error {
	if v == nil {
		return csserr.TypeMismatch("missing %s", name)
	}
	if deferred(v) {
		return nil
	}
	n, ok := v.(*value.Number)
	if !ok {
		return csserr.TypeMismatch("%s cannot be %s", name, v.CSSText())
	}
	x, u := n.Float(), n.UnitType()
	if math.IsInf(x, 0) {
		return csserr.InvalidAccess("%s cannot be infinite", name)
	}
	ok = true
	switch k {
	case kindAlpha, kindRGB:
		hi := 1.0
		if k == kindRGB {
			hi = 255
		}
		switch u {
		case units.None:
			ok = inRange(x, 0, hi)
		case units.Percent:
			ok = inRange(x, 0, 100)
		default:
			return csserr.TypeMismatch("%s cannot be %s", name, n.CSSText())
		}
	case kindHue:
		if u != units.None && u.Category() != units.Angle {
			return csserr.TypeMismatch("%s cannot be %s", name, n.CSSText())
		}
	case kindPercent:
		if u != units.Percent {
			return csserr.TypeMismatch("%s must be a percentage, is %s", name, n.CSSText())
		}
		ok = inRange(x, 0, 100)
	case kindNumber, kindChroma:
		if u != units.None {
			return csserr.TypeMismatch("%s must be a number, is %s", name, n.CSSText())
		}
		ok = k == kindNumber || x >= 0
	}
	if !ok {
		return csserr.InvalidAccess("%s out of range: %s", name, n.CSSText())
	}
	return nil
}

// --- Color records ---------------------------------------------------------

// record holds the four component slots common to all color types.
type record struct {
	model  Model
	slots  [4]value.Value // alpha, c1, c2, c3
	fn     string         // function name as written, e.g. "rgba"
	legacy bool           // comma separated syntax
	alpha  bool           // alpha given explicitly
	hex    string         // hex digits as written
	name   string         // color keyword as written
}

func (r *record) rec() *record {
	return r
}

func (r *record) Model() Model       { return r.model }
func (r *record) ColorSpace() string { return colorSpaces[r.model] }

func (r *record) CSSType() value.CSSType     { return value.Typed }
func (r *record) Primitive() value.Primitive { return value.Color }

// Item returns component i: 0 is alpha, 1 to 3 are the channels in the
// order of the color function. It returns nil for other indices.
func (r *record) Item(i int) value.Value {
	if i < 0 || i > 3 {
		return nil
	}
	return r.slots[i]
}

// SetComponent sets component i, with the same semantics as the named setters.
func (r *record) SetComponent(i int, v value.Value) error {
	if i < 0 || i > 3 {
		return csserr.InvalidAccess("no color component %d", i)
	}
	return r.set(i, v)
}

// Alpha returns the alpha component.
func (r *record) Alpha() value.Value {
	return r.slots[0]
}

// SetAlpha sets the alpha component, a number in [0,1] or a percentage.
func (r *record) SetAlpha(v value.Value) error {
	if err := r.set(0, v); err != nil {
		return err
	}
	r.alpha = true
	return nil
}

func (r *record) set(i int, v value.Value) error {
	if err := validate(channelKinds[r.model][i], channelNames[r.model][i], v); err != nil {
		return err
	}
	r.slots[i] = v
	r.hex, r.name = "", ""
	return nil
}

// IsPending is true if a component depends on an unresolved var() or attr().
func (r *record) IsPending() bool {
	for _, s := range r.slots {
		if value.IsPending(s) {
			return true
		}
	}
	return false
}

// IsConcrete is true if every component is a number.
func (r *record) IsConcrete() bool {
	for _, s := range r.slots {
		if _, ok := s.(*value.Number); !ok {
			return false
		}
	}
	return true
}

func (r *record) clone() record {
	c := *r
	for i, s := range r.slots {
		if s != nil {
			c.slots[i] = s.Clone()
		}
	}
	return c
}

// equals compares models and components. The syntax a color was written in
// does not take part.
func (r *record) equals(o *record) bool {
	if r.model != o.model {
		return false
	}
	for i := range r.slots {
		if !value.Equal(r.slots[i], o.slots[i]) {
			return false
		}
	}
	return true
}

// New creates a color of model m from its channels and alpha, validating
// each of them. alpha may be nil for opaque colors.
func New(m Model, c1, c2, c3, alpha value.Value) (Color, error) {
	r := record{model: m, fn: m.String()}
	if alpha == nil {
		alpha = one()
	} else {
		r.alpha = true
	}
	for i, v := range []value.Value{alpha, c1, c2, c3} {
		if err := validate(channelKinds[m][i], channelNames[m][i], v); err != nil {
			return nil, err
		}
		r.slots[i] = v
	}
	return wrap(r), nil
}

func one() value.Value {
	n, _ := value.NewNumber(1, units.None)
	return n
}

// wrap puts a record into the color type of its model.
func wrap(r record) Color {
	switch r.model {
	case RGBModel:
		return &RGB{r}
	case HSLModel:
		return &HSL{r}
	case HWBModel:
		return &HWB{r}
	case LabModel:
		return &Lab{r}
	case LChModel:
		return &LCh{r}
	case OKLabModel:
		return &OKLab{r}
	}
	return &OKLCh{r}
}

// --- Color types -----------------------------------------------------------

// RGB is an sRGB color given by red, green and blue.
type RGB struct{ record }

// HSL is an sRGB color given by hue, saturation and lightness.
type HSL struct{ record }

// HWB is an sRGB color given by hue, whiteness and blackness.
type HWB struct{ record }

// Lab is a CIE Lab color.
type Lab struct{ record }

// LCh is a CIE LCh color, the polar form of Lab.
type LCh struct{ record }

// OKLab is an Oklab color.
type OKLab struct{ record }

// OKLCh is an Oklch color, the polar form of OKLab.
type OKLCh struct{ record }

func (c *RGB) Clone() value.Value   { return &RGB{c.clone()} }
func (c *HSL) Clone() value.Value   { return &HSL{c.clone()} }
func (c *HWB) Clone() value.Value   { return &HWB{c.clone()} }
func (c *Lab) Clone() value.Value   { return &Lab{c.clone()} }
func (c *LCh) Clone() value.Value   { return &LCh{c.clone()} }
func (c *OKLab) Clone() value.Value { return &OKLab{c.clone()} }
func (c *OKLCh) Clone() value.Value { return &OKLCh{c.clone()} }

func (c *RGB) Equals(o value.Value) bool {
	x, ok := o.(*RGB)
	return ok && c.equals(&x.record)
}

func (c *HSL) Equals(o value.Value) bool {
	x, ok := o.(*HSL)
	return ok && c.equals(&x.record)
}

func (c *HWB) Equals(o value.Value) bool {
	x, ok := o.(*HWB)
	return ok && c.equals(&x.record)
}

func (c *Lab) Equals(o value.Value) bool {
	x, ok := o.(*Lab)
	return ok && c.equals(&x.record)
}

func (c *LCh) Equals(o value.Value) bool {
	x, ok := o.(*LCh)
	return ok && c.equals(&x.record)
}

func (c *OKLab) Equals(o value.Value) bool {
	x, ok := o.(*OKLab)
	return ok && c.equals(&x.record)
}

func (c *OKLCh) Equals(o value.Value) bool {
	x, ok := o.(*OKLCh)
	return ok && c.equals(&x.record)
}

// Named setters. Each validates its argument against the channel contract.

func (c *RGB) SetRed(v value.Value) error   { return c.set(1, v) }
func (c *RGB) SetGreen(v value.Value) error { return c.set(2, v) }
func (c *RGB) SetBlue(v value.Value) error  { return c.set(3, v) }

func (c *HSL) SetHue(v value.Value) error        { return c.set(1, v) }
func (c *HSL) SetSaturation(v value.Value) error { return c.set(2, v) }
func (c *HSL) SetLightness(v value.Value) error  { return c.set(3, v) }

func (c *HWB) SetHue(v value.Value) error       { return c.set(1, v) }
func (c *HWB) SetWhiteness(v value.Value) error { return c.set(2, v) }
func (c *HWB) SetBlackness(v value.Value) error { return c.set(3, v) }

func (c *Lab) SetLightness(v value.Value) error { return c.set(1, v) }
func (c *Lab) SetA(v value.Value) error         { return c.set(2, v) }
func (c *Lab) SetB(v value.Value) error         { return c.set(3, v) }

func (c *LCh) SetLightness(v value.Value) error { return c.set(1, v) }
func (c *LCh) SetChroma(v value.Value) error    { return c.set(2, v) }
func (c *LCh) SetHue(v value.Value) error       { return c.set(3, v) }

func (c *OKLab) SetLightness(v value.Value) error { return c.set(1, v) }
func (c *OKLab) SetA(v value.Value) error         { return c.set(2, v) }
func (c *OKLab) SetB(v value.Value) error         { return c.set(3, v) }

func (c *OKLCh) SetLightness(v value.Value) error { return c.set(1, v) }
func (c *OKLCh) SetChroma(v value.Value) error    { return c.set(2, v) }
func (c *OKLCh) SetHue(v value.Value) error       { return c.set(3, v) }

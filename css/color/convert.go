package color

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
)

// CIE Lab in CSS is relative to D50. go-colorful works with D65 XYZ, so
// XYZ values are chromatically adapted (Bradford) on the way in and out.
// The D50 reference white is the adapted white of go-colorful's sRGB
// matrix, which keeps sRGB white at a = b = 0. colorful.D65 is rounded and
// does not match that matrix.
var (
	d50 = [3]float64(adapt(d65ToD50, srgbWhite()))

	d65ToD50 = [3][3]float64{
		{1.0479297925449969, 0.022946870601609652, -0.05019226628920524},
		{0.02962780877005599, 0.9904344267538799, -0.017073799063418826},
		{-0.009243040646204504, 0.015055191490298152, 0.7518742814281371},
	}
	d50ToD65 = [3][3]float64{
		{0.955473421488075, -0.02309845494876471, 0.06325924320057072},
		{-0.0283697093338637, 1.0099953980813041, 0.021041441191917323},
		{0.012314014864481998, -0.020507649298898964, 1.330365926242124},
	}
)

// gamutEpsilon is the tolerance of strict gamut checks. Round trips through
// XYZ leave channels of in-gamut colors slightly off [0,1].
const gamutEpsilon = 1e-5

// Below these chroma values a hue is powerless and reported as 0.
const (
	labAchromatic   = 1e-3
	oklabAchromatic = 1e-5
)

type xyz [3]float64

func srgbWhite() xyz {
	x, y, z := colorful.LinearRgbToXyz(1, 1, 1)
	return xyz{x, y, z}
}

func adapt(m [3][3]float64, c xyz) xyz {
	var r xyz
	for i := range m {
		r[i] = m[i][0]*c[0] + m[i][1]*c[1] + m[i][2]*c[2]
	}
	return r
}

// normHue maps an angle in degrees to [0,360).
func normHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if h >= 360 {
		h = 0
	}
	return h
}

// floats returns the components of a concrete color as plain numbers:
// alpha and percentages in [0,1], RGB channels in [0,1], hues in degrees,
// everything else as given.
func (r *record) floats() ([4]float64, error) {
	var f [4]float64
	for i, s := range r.slots {
		if s == nil {
			return f, csserr.InvalidState("%s of %s color is not set",
				channelNames[r.model][i], r.model)
		}
		n, ok := s.(*value.Number)
		if !ok {
			return f, csserr.InvalidState("%s of %s color is not resolved: %s",
				channelNames[r.model][i], r.model, s.CSSText())
		}
		x, u := n.Float(), n.UnitType()
		switch k := channelKinds[r.model][i]; {
		case u == units.Percent:
			x /= 100
		case k == kindRGB:
			x /= 255
		case k == kindHue && u != units.None:
			deg, err := units.Convert(x, u, units.DEG)
			if err != nil {
				return f, err
			}
			x = deg
		}
		f[i] = x
	}
	return f, nil
}

func hwb(h, w, b float64) colorful.Color {
	if w+b >= 1 {
		g := w / (w + b)
		return colorful.Color{R: g, G: g, B: g}
	}
	return colorful.Hsv(normHue(h), 1-w/(1-b), 1-b)
}

func isSRGB(m Model) bool {
	return m == RGBModel || m == HSLModel || m == HWBModel
}

// srgb returns the sRGB color of r, not clamped.
func (r *record) srgb() (colorful.Color, error) {
	f, err := r.floats()
	if err != nil {
		return colorful.Color{}, err
	}
	switch r.model {
	case RGBModel:
		return colorful.Color{R: f[1], G: f[2], B: f[3]}, nil
	case HSLModel:
		return colorful.Hsl(normHue(f[1]), f[2], f[3]), nil
	case HWBModel:
		return hwb(f[1], f[2], f[3]), nil
	}
	c, err := r.xyz()
	if err != nil {
		return colorful.Color{}, err
	}
	return colorful.Xyz(c[0], c[1], c[2]), nil
}

// xyz returns the D65 XYZ coordinates of r.
func (r *record) xyz() (xyz, error) {
	if isSRGB(r.model) {
		c, err := r.srgb()
		if err != nil {
			return xyz{}, err
		}
		x, y, z := c.Xyz()
		return xyz{x, y, z}, nil
	}
	f, err := r.floats()
	if err != nil {
		return xyz{}, err
	}
	l, a, b := f[1], f[2], f[3]
	switch r.model {
	case LChModel, OKLChModel:
		_, a, b = colorful.OkLchToOkLab(l, a, normHue(b))
	}
	switch r.model {
	case LabModel, LChModel:
		x, y, z := colorful.LabToXyzWhiteRef(l, a/100, b/100, d50)
		return adapt(d50ToD65, xyz{x, y, z}), nil
	}
	x, y, z := colorful.OkLabToXyz(l, a, b)
	return xyz{x, y, z}, nil
}

// lab returns CIE Lab (D50) coordinates with L in [0,100].
func (r *record) lab() (l, a, b float64, err error) {
	c, err := r.xyz()
	if err != nil {
		return
	}
	c = adapt(d65ToD50, c)
	l, a, b = colorful.XyzToLabWhiteRef(c[0], c[1], c[2], d50)
	return l * 100, a * 100, b * 100, nil
}

// gamut applies the gamut mode to an unclamped sRGB color.
func gamut(c colorful.Color, mode GamutMode) (colorful.Color, error) {
	if mode == Strict {
		for _, x := range [3]float64{c.R, c.G, c.B} {
			if x < -gamutEpsilon || x > 1+gamutEpsilon || math.IsNaN(x) {
				return c, csserr.InvalidAccess("color is out of the sRGB gamut")
			}
		}
	}
	return c.Clamped(), nil
}

// --- Building results ------------------------------------------------------

var (
	pct  = units.Percent
	none = units.None
)

// result builds a converted color from calculated channels, keeping the
// alpha of r.
func (r *record) result(m Model, x [3]float64, u [3]units.Unit) (record, error) {
	res := record{model: m, fn: m.String(), alpha: r.alpha}
	res.slots[0] = r.slots[0].Clone()
	for i := range x {
		n, err := value.NewCalculated(x[i], u[i])
		if err != nil {
			return res, csserr.InvalidAccess("cannot convert %s to %s", r.model, m)
		}
		res.slots[i+1] = n
	}
	return res, nil
}

// ToRGB converts a color to RGB with percentage channels.
func (r *record) ToRGB(mode GamutMode) (*RGB, error) {
	if r.model == RGBModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &RGB{r.clone()}, nil
	}
	c, err := r.srgb()
	if err != nil {
		return nil, err
	}
	if c, err = gamut(c, mode); err != nil {
		tracer().Debugf("%s: %v", r.model, err)
		return nil, err
	}
	res, err := r.result(RGBModel, [3]float64{c.R*100, c.G*100, c.B*100}, [3]units.Unit{pct, pct, pct})
	if err != nil {
		return nil, err
	}
	return &RGB{res}, nil
}

// ToHSL converts a color to HSL.
func (r *record) ToHSL(mode GamutMode) (*HSL, error) {
	if r.model == HSLModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &HSL{r.clone()}, nil
	}
	c, err := r.srgb()
	if err != nil {
		return nil, err
	}
	if c, err = gamut(c, mode); err != nil {
		return nil, err
	}
	h, s, l := c.Hsl()
	res, err := r.result(HSLModel, [3]float64{h, s*100, l*100}, [3]units.Unit{none, pct, pct})
	if err != nil {
		return nil, err
	}
	return &HSL{res}, nil
}

// ToHWB converts a color to HWB.
func (r *record) ToHWB(mode GamutMode) (*HWB, error) {
	if r.model == HWBModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &HWB{r.clone()}, nil
	}
	c, err := r.srgb()
	if err != nil {
		return nil, err
	}
	if c, err = gamut(c, mode); err != nil {
		return nil, err
	}
	h, s, v := c.Hsv()
	res, err := r.result(HWBModel, [3]float64{h, (1-s)*v*100, (1-v)*100}, [3]units.Unit{none, pct, pct})
	if err != nil {
		return nil, err
	}
	return &HWB{res}, nil
}

// ToLab converts a color to CIE Lab.
func (r *record) ToLab() (*Lab, error) {
	if r.model == LabModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &Lab{r.clone()}, nil
	}
	l, a, b, err := r.lab()
	if err != nil {
		return nil, err
	}
	res, err := r.result(LabModel, [3]float64{l, a, b}, [3]units.Unit{pct, none, none})
	if err != nil {
		return nil, err
	}
	return &Lab{res}, nil
}

// ToLCh converts a color to CIE LCh.
func (r *record) ToLCh() (*LCh, error) {
	if r.model == LChModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &LCh{r.clone()}, nil
	}
	l, a, b, err := r.lab()
	if err != nil {
		return nil, err
	}
	_, c, h := colorful.OkLabToOkLch(l, a, b)
	if c < labAchromatic {
		h = 0
	}
	res, err := r.result(LChModel, [3]float64{l, c, h}, [3]units.Unit{pct, none, none})
	if err != nil {
		return nil, err
	}
	return &LCh{res}, nil
}

func (r *record) oklab() (l, a, b float64, err error) {
	c, err := r.xyz()
	if err != nil {
		return
	}
	l, a, b = colorful.XyzToOkLab(c[0], c[1], c[2])
	return
}

// ToOKLab converts a color to OKLab.
func (r *record) ToOKLab() (*OKLab, error) {
	if r.model == OKLabModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &OKLab{r.clone()}, nil
	}
	l, a, b, err := r.oklab()
	if err != nil {
		return nil, err
	}
	res, err := r.result(OKLabModel, [3]float64{l*100, a, b}, [3]units.Unit{pct, none, none})
	if err != nil {
		return nil, err
	}
	return &OKLab{res}, nil
}

// ToOKLCh converts a color to OKLCh.
func (r *record) ToOKLCh() (*OKLCh, error) {
	if r.model == OKLChModel {
		if _, err := r.floats(); err != nil {
			return nil, err
		}
		return &OKLCh{r.clone()}, nil
	}
	l, a, b, err := r.oklab()
	if err != nil {
		return nil, err
	}
	_, c, h := colorful.OkLabToOkLch(l, a, b)
	if c < oklabAchromatic {
		h = 0
	}
	res, err := r.result(OKLChModel, [3]float64{l*100, c, h}, [3]units.Unit{pct, none, none})
	if err != nil {
		return nil, err
	}
	return &OKLCh{res}, nil
}

// DeltaE2000 returns the CIEDE2000 color difference between two colors,
// computed on their CIE Lab coordinates. Alpha is ignored.
func (r *record) DeltaE2000(other Color) (float64, error) {
	if other == nil {
		return 0, csserr.InvalidState("no color to compare with")
	}
	l1, a1, b1, err := r.lab()
	if err != nil {
		return 0, err
	}
	l2, a2, b2, err := other.rec().lab()
	if err != nil {
		return 0, err
	}
	// colorful works on Lab scaled by 1/100
	c1 := colorful.Lab(l1/100, a1/100, b1/100)
	c2 := colorful.Lab(l2/100, a2/100, b2/100)
	return c1.DistanceCIEDE2000(c2) * 100, nil
}

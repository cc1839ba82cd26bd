package color

import (
	"math"
	"strings"

	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
)

// CSSText returns the color in the syntax it was written in: as a keyword,
// as a hex color or as a color function. Functions written with commas
// keep them.
func (r *record) CSSText() string {
	switch {
	case r.name != "":
		return r.name
	case r.hex != "":
		return "#" + r.hex
	}
	return r.text(r.fn, false, r.legacy, r.alpha)
}

// MinifiedCSSText returns the shortest of the functional form without
// redundant alpha, the hex form and the color keyword. Unresolved
// components are kept verbatim.
func (r *record) MinifiedCSSText(string) string {
	s := r.text(r.fn, true, r.legacy, false)
	if h, ok := r.exactHex(); ok && len(h) <= len(s) {
		s = h
	}
	if r.name != "" && len(r.name) < len(s) {
		s = r.name
	}
	return s
}

// CanonicalText is the modern functional form, regardless of how the color
// was written.
func (r *record) CanonicalText() string {
	return r.text(r.model.String(), false, false, false)
}

func isOpaque(v value.Value) bool {
	n, ok := v.(*value.Number)
	if !ok {
		return false
	}
	return (n.UnitType() == units.None && n.Float() == 1) ||
		(n.UnitType() == units.Percent && n.Float() == 100)
}

func (r *record) text(fn string, minify, legacy, explicitAlpha bool) string {
	var b strings.Builder
	b.WriteString(fn)
	b.WriteByte('(')
	sep := " "
	if legacy {
		sep = ", "
		if minify {
			sep = ","
		}
	}
	for i := 1; i < 4; i++ {
		if i > 1 {
			b.WriteString(sep)
		}
		b.WriteString(componentText(r.slots[i], minify))
	}
	if explicitAlpha || !isOpaque(r.slots[0]) {
		switch {
		case legacy:
			b.WriteString(sep)
		case minify:
			b.WriteByte('/')
		default:
			b.WriteString(" / ")
		}
		b.WriteString(componentText(r.slots[0], minify))
	}
	b.WriteByte(')')
	return b.String()
}

func componentText(v value.Value, minify bool) string {
	if v == nil {
		return "none"
	}
	if minify && !deferred(v) {
		return v.MinifiedCSSText("")
	}
	return v.CSSText()
}

// --- Hex colors ------------------------------------------------------------

// byteOf returns the 8-bit value of a channel in [0,1], if it has one.
// Channels at .5 round up, even if conversion left them slightly below.
func byteOf(x float64) (uint8, bool) {
	b := math.Round(x*255 + 1e-9)
	return uint8(b), math.Abs(x*255-b) < 1e-6
}

// exactHex is the hex form of an RGB color whose components are plain
// numbers with exact 8-bit values. Percentages are kept, as the hex form
// would not parse back to an equal color.
func (r *record) exactHex() (string, bool) {
	if r.model != RGBModel || !r.IsConcrete() {
		return "", false
	}
	for _, s := range r.slots {
		if s.(*value.Number).UnitType() != units.None {
			return "", false
		}
	}
	f, err := r.floats()
	if err != nil {
		return "", false
	}
	var bytes [4]uint8
	for i, x := range [4]float64{f[1], f[2], f[3], f[0]} {
		b, ok := byteOf(x)
		if !ok {
			return "", false
		}
		bytes[i] = b
	}
	return hexText(bytes), true
}

// HexString returns the color as a hex color, converted to sRGB and rounded
// to 8 bits per channel. Out-of-gamut colors are clamped. The short forms
// #rgb and #rgba are used where possible, and alpha is omitted if opaque.
func (r *record) HexString() (string, error) {
	c, err := r.srgb()
	if err != nil {
		return "", err
	}
	c, _ = gamut(c, Clamped)
	f, _ := r.floats()
	var bytes [4]uint8
	for i, x := range [4]float64{c.R, c.G, c.B, f[0]} {
		bytes[i], _ = byteOf(x)
	}
	return hexText(bytes), nil
}

const hexDigits = "0123456789abcdef"

func hexText(rgba [4]uint8) string {
	n := 4
	if rgba[3] == 255 {
		n = 3
	}
	short := true
	for _, b := range rgba[:n] {
		short = short && b>>4 == b&0xf
	}
	var s strings.Builder
	s.WriteByte('#')
	for _, b := range rgba[:n] {
		if short {
			s.WriteByte(hexDigits[b&0xf])
		} else {
			s.WriteByte(hexDigits[b>>4])
			s.WriteByte(hexDigits[b&0xf])
		}
	}
	return s.String()
}

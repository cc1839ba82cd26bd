/*
Package color implements CSS color values.

Colors are one of seven types, one per color model: RGB, HSL, HWB, Lab,
LCh, OKLab and OKLCh. Each holds four component slots [alpha, c1, c2, c3].
A slot holds either a concrete number or a value which cannot be resolved
without further context: a calc() expression, a var() or an attr(). Slots
are changed through validating setters only.

Conversion between models routes through CIE XYZ (D65); CIE Lab and LCh
use the D50 white point of CSS Color 4. Conversion to sRGB based models
either clamps out-of-gamut channels or fails, depending on the GamutMode.
Colors with unresolved components cannot be converted.

The color math is done with github.com/lucasb-eyer/go-colorful. Named
colors are taken from golang.org/x/image/colornames.

Colors plug into the value model of package value: FromLexical is a
value.ColorFactory.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package color

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.color'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.color")
}

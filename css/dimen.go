package css

import (
	"fmt"
	"math"
	"strings"

	"github.com/npillmayer/cssval/css/calc"
	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

const (
	dimenNone uint32 = 0

	dimenAbsolute uint32 = 0x0001
	dimenAuto     uint32 = 0x0002
	dimenInherit  uint32 = 0x0003
	dimenInitial  uint32 = 0x0004
	kindMask      uint32 = 0x000f

	// Flags for content dependent dimensions
	DimenContentMax uint32 = 0x0010
	DimenContentMin uint32 = 0x0020
	DimenContentFit uint32 = 0x0030
	contentMask     uint32 = 0x00f0

	dimenEM      uint32 = 0x0100
	dimenEX      uint32 = 0x0200
	dimenCH      uint32 = 0x0300
	dimenREM     uint32 = 0x0400
	dimenVW      uint32 = 0x0500
	dimenVH      uint32 = 0x0600
	dimenVMIN    uint32 = 0x0700
	dimenVMAX    uint32 = 0x0800
	dimenPercent uint32 = 0x0900
	relativeMask uint32 = 0xff00
)

var relativeFlags = map[units.Unit]uint32{
	units.EM:   dimenEM,
	units.EX:   dimenEX,
	units.CH:   dimenCH,
	units.REM:  dimenREM,
	units.VW:   dimenVW,
	units.VH:   dimenVH,
	units.VMIN: dimenVMIN,
	units.VMAX: dimenVMAX,
}

// DimenT is an option type for CSS dimensions.
type DimenT struct {
	d       dimen.DU
	percent percent.Percent
	rel     float64 // magnitude of font or viewport relative dimensions
	flags   uint32
}

/*
type DimenT
	= Auto
	| Inherit
	| Initial
	| JustDimen dimen
	| Percentage Percent
	| ViewRel unit
	| FontRel unit
	| ContentRel Min N
	| ContentRel Max N
*/

func Auto() DimenT {
	return DimenT{flags: dimenAuto}
}

func Inherit() DimenT {
	return DimenT{flags: dimenInherit}
}

func Initial() DimenT {
	return DimenT{flags: dimenInitial}
}

// JustDimen creates a CSS dimension with a fixed value of x.
func JustDimen(x dimen.DU) DimenT {
	return DimenT{d: x, flags: dimenAbsolute}
}

// Percentage creates a CSS dimension with a %-relative value.
func Percentage(n percent.Percent) DimenT {
	return DimenT{percent: n, flags: dimenPercent}
}

// Relative creates a CSS dimension of x units of a font or viewport
// relative unit. Other units yield an unset DimenT.
func Relative(x float64, u units.Unit) DimenT {
	f, ok := relativeFlags[u]
	if !ok {
		return DimenT{flags: dimenNone}
	}
	return DimenT{rel: x, flags: f}
}

// Content creates a content dependent dimension, with flag one of
// DimenContentMin, DimenContentMax or DimenContentFit.
func Content(flag uint32) DimenT {
	return DimenT{flags: flag & contentMask}
}

// IsNone is true for an unset dimension.
func (d DimenT) IsNone() bool {
	return d.flags == dimenNone
}

// IsAbsolute is true for fixed dimensions.
func (d DimenT) IsAbsolute() bool {
	return d.flags&kindMask == dimenAbsolute
}

// IsRelative is true for percentages and font or viewport relative
// dimensions.
func (d DimenT) IsRelative() bool {
	return d.flags&relativeMask > 0
}

// Unit returns the unit of a relative dimension, or units.None.
func (d DimenT) Unit() units.Unit {
	if d.flags&relativeMask == dimenPercent {
		return units.Percent
	}
	for u, f := range relativeFlags {
		if d.flags&relativeMask == f {
			return u
		}
	}
	return units.None
}

// Resolve turns font and viewport relative dimensions into fixed ones,
// using the metrics m. Percentages are left to the layout engine.
func (d DimenT) Resolve(m *units.Metrics) (DimenT, error) {
	if !d.IsRelative() || d.flags&relativeMask == dimenPercent {
		return d, nil
	}
	px, err := m.Convert(d.rel, d.Unit(), units.PX)
	if err != nil {
		return d, err
	}
	return JustDimen(du(px, units.PX)), nil
}

func (d DimenT) String() string {
	switch {
	case d.IsAbsolute():
		return fmt.Sprintf("%v", d.d)
	case d.flags&relativeMask == dimenPercent:
		return fmt.Sprintf("%v", d.percent)
	case d.IsRelative():
		if n, err := value.NewNumber(d.rel, d.Unit()); err == nil {
			return n.CSSText()
		}
	}
	switch d.flags {
	case dimenAuto:
		return "auto"
	case dimenInherit:
		return "inherit"
	case dimenInitial:
		return "initial"
	case DimenContentMin:
		return "min-content"
	case DimenContentMax:
		return "max-content"
	case DimenContentFit:
		return "fit-content"
	}
	return "none"
}

// --- Creating dimensions from values ---------------------------------------

var contentKeywords = map[string]uint32{
	"min-content": DimenContentMin,
	"max-content": DimenContentMax,
	"fit-content": DimenContentFit,
}

// DimenFromValue maps a CSS value to a dimension. Math expressions are
// evaluated with ctx first. Font and viewport relative lengths which ctx
// cannot resolve stay relative, percentages always do.
func DimenFromValue(v value.Value, ctx *calc.Context) (DimenT, error) {
	switch x := v.(type) {
	case *value.KeywordValue:
		switch x.Name {
		case "inherit":
			return Inherit(), nil
		case "initial", "unset":
			return Initial(), nil
		}
		return DimenT{}, csserr.NotSupported("keyword %s as a dimension", x.Name)
	case *value.IdentValue:
		name := strings.ToLower(x.Name)
		if name == "auto" {
			return Auto(), nil
		}
		if f, ok := contentKeywords[name]; ok {
			return Content(f), nil
		}
		return DimenT{}, csserr.TypeMismatch("%s is not a dimension", x.Name)
	case *value.Number:
		return dimenFromNumber(x, ctx)
	case *value.ExpressionValue, *value.FunctionValue, *value.AttrValue:
		n, err := calc.Evaluate(v, ctx)
		if err != nil {
			return DimenT{}, err
		}
		return dimenFromNumber(n, ctx)
	}
	if value.IsPending(v) {
		return DimenT{}, csserr.InvalidState("%s is pending", v.CSSText())
	}
	return DimenT{}, csserr.TypeMismatch("%s is not a dimension", v.CSSText())
}

func dimenFromNumber(n *value.Number, ctx *calc.Context) (DimenT, error) {
	x, u := n.Float(), n.UnitType()
	switch {
	case u == units.None:
		if x != 0 {
			return DimenT{}, csserr.TypeMismatch("number %s is not a dimension", n.CSSText())
		}
		return JustDimen(0), nil
	case u == units.Percent:
		return Percentage(percent.FromInt(int(math.Round(x)))), nil
	case u.Category() != units.Length:
		return DimenT{}, csserr.TypeMismatch("%s is not a length", n.CSSText())
	case u.IsRelative():
		if ctx != nil {
			if px, ok := ctx.Px(u); ok {
				return JustDimen(du(x*px, units.PX)), nil
			}
		}
		tracer().Debugf("%s stays relative", n.CSSText())
		return Relative(x, u), nil
	}
	return JustDimen(du(x, u)), nil
}

// du converts an absolute length to design units.
func du(x float64, u units.Unit) dimen.DU {
	pt, _ := units.Convert(x, u, units.PT)
	return dimen.DU(math.Round(pt * float64(dimen.PT)))
}

// ---------------------------------------------------------------------------

func (d DimenT) Match() *Matcher {
	return &Matcher{dimen: d}
}

type Matcher struct {
	dimen DimenT
}

func (m *Matcher) IsKind(d DimenT) *Matcher {
	switch {
	case (m.dimen.flags & kindMask) == (d.flags&kindMask) && d.flags&kindMask != 0:
		return m
	case (m.dimen.flags&relativeMask > 0) && (d.flags&relativeMask > 0):
		if (m.dimen.flags&relativeMask == dimenPercent) != (d.flags&relativeMask == dimenPercent) {
			return nil
		}
		return m
	case (m.dimen.flags&contentMask > 0) && (d.flags&contentMask > 0):
		return m
	}
	return nil
}

func (m *Matcher) Just(du *dimen.DU) *Matcher {
	if m.dimen.IsAbsolute() {
		if du != nil {
			*du = m.dimen.d
		}
		return m
	}
	return nil
}

func (m *Matcher) Percentage(p *percent.Percent) *Matcher {
	if m.dimen.flags&relativeMask == dimenPercent {
		if p != nil {
			*p = m.dimen.percent
		}
		return m
	}
	return nil
}

// Relative matches font and viewport relative dimensions.
func (m *Matcher) Relative(x *float64, u *units.Unit) *Matcher {
	if m.dimen.IsRelative() && m.dimen.flags&relativeMask != dimenPercent {
		if x != nil {
			*x = m.dimen.rel
		}
		if u != nil {
			*u = m.dimen.Unit()
		}
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

type DimenPatterns[T any] struct {
	Auto       T
	Inherit    T
	Initial    T
	Just       T
	Percentage T
	Relative   T
	Default    T
}

func DimenPattern[T any](d DimenT) *MatchExpr[T] {
	return &MatchExpr[T]{dimen: d}
}

type MatchExpr[T any] struct {
	dimen DimenT
}

func (m *MatchExpr[T]) OneOf(patterns DimenPatterns[T]) T {
	switch {
	case m.dimen.flags == dimenAuto:
		return patterns.Auto
	case m.dimen.IsAbsolute():
		return patterns.Just
	case m.dimen.flags == dimenInitial:
		return patterns.Initial
	case m.dimen.flags == dimenInherit:
		return patterns.Inherit
	case m.dimen.flags&relativeMask == dimenPercent:
		return patterns.Percentage
	case m.dimen.IsRelative():
		return patterns.Relative
	}
	return patterns.Default
}

func (m *MatchExpr[T]) With(du *dimen.DU) *MatchExpr[T] {
	*du = m.dimen.d
	return m
}

func (m *MatchExpr[T]) Const(x T) T {
	return x
}

package value_test

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func num(t *testing.T, x float64, u units.Unit) *value.Number {
	n, err := value.NewNumber(x, u)
	require.NoError(t, err)
	return n
}

func TestNumberText(t *testing.T) {
	tests := []struct {
		x        float64
		unit     units.Unit
		full     string
		minified string
	}{
		{0.225, units.None, "0.225", ".225"},
		{-0.1, units.PX, "-0.1px", "-.1px"},
		{0, units.PX, "0px", "0"},
		{0, units.Percent, "0%", "0%"},
		{0, units.DEG, "0deg", "0deg"},
		{12, units.EM, "12em", "12em"},
		{71.834, units.Percent, "71.834%", "71.834%"},
		{math.Inf(1), units.None, "calc(1/0)", "calc(1/0)"},
		{math.Inf(-1), units.None, "calc(-1/0)", "calc(-1/0)"},
	}
	for _, tt := range tests {
		n := num(t, tt.x, tt.unit)
		assert.Equal(t, tt.full, n.CSSText())
		assert.Equal(t, tt.minified, n.MinifiedCSSText(""))
	}
}

func TestNumberPredicates(t *testing.T) {
	negz := num(t, math.Copysign(0, -1), units.None)
	assert.True(t, negz.IsNumberZero())
	assert.True(t, negz.IsNegativeNumber())
	assert.False(t, negz.IsCalculatedNumber())
	posz := num(t, 0, units.None)
	assert.False(t, posz.IsNegativeNumber())
	assert.False(t, negz.Equals(posz), "signed zeros must differ")
	//
	c, err := value.NewCalculated(1.23456789, units.PX)
	require.NoError(t, err)
	assert.True(t, c.IsCalculatedNumber())
	assert.Equal(t, "1.2346px", c.MinifiedCSSText(""))
	//
	_, err = value.NewNumber(math.NaN(), units.None)
	assert.True(t, errors.Is(err, csserr.ErrInvalidAccess))
	//
	x, err := num(t, 1, units.IN).FloatValue(units.PT)
	require.NoError(t, err)
	assert.InDelta(t, 72.0, x, 1e-9)
	_, err = num(t, 1, units.IN).FloatValue(units.S)
	assert.True(t, errors.Is(err, csserr.ErrTypeMismatch))
}

func TestRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssval.value")
	defer teardown()
	//
	f := value.NewFactory(nil)
	inputs := []string{
		"12px",
		"-0",
		".5em",
		"calc(1px + 2px*3)",
		"calc((1px + 2px)*3)",
		"calc(1px - (2px + 3px))",
		"calc(100%/3 - 2*1em - 2*1px)",
		"calc(2/(3*4))",
		"calc(min(1.2 * 3, 3) * 8)",
		"calc(sqrt(1.2pt * 3.6pt * 8.1))",
		"min(1px, 2em)",
		"clamp(1px, 2vw, 3rem)",
		"attr(width px, 20em)",
		"\"a \\\"quoted\\\" string\"",
		"U+0025-00FF",
		"1px 2px, 3px",
		"a / b",
		"inherit",
		"url(\"img.png\")",
	}
	for _, in := range inputs {
		v, err := f.Parse(in)
		require.NoError(t, err, in)
		for _, text := range []string{v.CSSText(), v.MinifiedCSSText("")} {
			w, err := f.Parse(text)
			require.NoError(t, err, text)
			assert.True(t, v.Equals(w), "%q re-parsed from %q", in, text)
			assert.Equal(t, value.Hash(v), value.Hash(w), in)
		}
		m := v.MinifiedCSSText("")
		w, _ := f.Parse(m)
		assert.Equal(t, m, w.MinifiedCSSText(""), "minification of %q is not idempotent", in)
	}
}

func TestExpressionText(t *testing.T) {
	f := value.NewFactory(nil)
	tests := []struct {
		in, full, minified string
	}{
		{"calc(1px + (2px + 3px))", "calc(1px + 2px + 3px)", "calc(1px + 2px + 3px)"},
		{"calc(1px - (2px - 3px))", "calc(1px - (2px - 3px))", "calc(1px - (2px - 3px))"},
		{"calc(2 * (3 * 4))", "calc(2*3*4)", "calc(2*3*4)"},
		{"calc(2 / (3 * 4))", "calc(2/(3*4))", "calc(2/(3*4))"},
		{"calc( (0.5px + 0px) * 2 )", "calc((0.5px + 0px)*2)", "calc((.5px + 0px)*2)"},
		{"calc(calc(1px))", "calc(1px)", "calc(1px)"},
		{"max(1px,  0.5em)", "max(1px, 0.5em)", "max(1px,.5em)"},
	}
	for _, tt := range tests {
		v, err := f.Parse(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.full, v.CSSText(), tt.in)
		assert.Equal(t, tt.minified, v.MinifiedCSSText(""), tt.in)
	}
}

func TestExpressionBuiltByHand(t *testing.T) {
	two, one := num(t, 2, units.PX), num(t, 1, units.PX)
	s := value.NewExpression(&value.Sum{Terms: []value.Expr{
		&value.Operand{Value: two, Inverse: true},
		&value.Operand{Value: one},
	}})
	assert.Equal(t, "calc(-2px + 1px)", s.CSSText())
	p := value.NewExpression(&value.Product{Factors: []value.Expr{
		&value.Operand{Value: num(t, 2, units.None), Inverse: true},
		&value.Operand{Value: num(t, 3, units.PX)},
	}})
	assert.Equal(t, "calc(1/2*3px)", p.CSSText())
	single := value.NewExpression(&value.Product{Factors: []value.Expr{
		&value.Sum{Terms: []value.Expr{&value.Operand{Value: one}, &value.Operand{Value: two}}},
	}})
	assert.Equal(t, "calc(1px + 2px)", single.CSSText())
	assert.True(t, value.ValidateExpr(s.Expr))
	assert.False(t, value.ValidateExpr(&value.Sum{}))
	t.Logf("\n%s", value.DumpExpression(s.Expr))
}

func TestSyntaxErrors(t *testing.T) {
	f := value.NewFactory(nil)
	for _, in := range []string{
		"calc(1px +2px)",
		"calc(* 2)",
		"calc(1px 2px)",
		"calc(1px, 2px)",
		"calc(1px *)",
		"calc()",
		"calc(foo)",
		"1px + 2px",
		"attr()",
		"attr(\"w\" px)",
		"attr(w px em)",
		"min()",
		"atan2(1)",
		"a,,b",
	} {
		_, err := f.Parse(in)
		if !errors.Is(err, csserr.ErrSyntax) {
			t.Errorf("expected SYNTAX_ERR for %q, got %v", in, err)
		}
	}
	_, err := f.Parse("3parsecs")
	assert.True(t, errors.Is(err, csserr.ErrNotSupported))
}

func TestAttr(t *testing.T) {
	f := value.NewFactory(nil)
	v, err := f.Parse("attr(width px, 20em)")
	require.NoError(t, err)
	a, ok := v.(*value.AttrValue)
	require.True(t, ok)
	assert.Equal(t, "width", a.Name)
	assert.Equal(t, "px", a.Type)
	assert.Equal(t, "20em", a.Fallback.CSSText())
	assert.Equal(t, "attr(width px, 20em)", a.CSSText())
	assert.Equal(t, "attr(width px,20em)", a.MinifiedCSSText(""))
	assert.True(t, value.IsPending(a))
	//
	_, err = value.NewAttr("", "px", nil)
	assert.True(t, errors.Is(err, csserr.ErrSyntax))
}

func TestProxy(t *testing.T) {
	f := value.NewFactory(nil)
	v, err := f.Parse("calc(var(--gap) * 2)  1px")
	require.NoError(t, err)
	assert.Equal(t, value.Proxy, v.CSSType())
	assert.Equal(t, "calc(var(--gap) * 2) 1px", v.CSSText())
	assert.True(t, value.IsPending(v))
}

func TestCloneIndependence(t *testing.T) {
	f := value.NewFactory(nil)
	v, err := f.Parse("1px calc(2px + 3px) attr(x, 1em)")
	require.NoError(t, err)
	c := v.Clone()
	assert.True(t, v.Equals(c))
	l := c.(*value.ListValue)
	l.Items[0] = num(t, 5, units.PX)
	sum := l.Items[1].(*value.ExpressionValue).Expr.(*value.Sum)
	sum.Terms[0].(*value.Operand).Inverse = true
	assert.False(t, v.Equals(c))
	assert.Equal(t, "1px calc(2px + 3px) attr(x, 1em)", v.CSSText())
}

func TestMatch(t *testing.T) {
	f := value.NewFactory(nil)
	for _, in := range []string{"inherit", "12pt", "calc(1px)", "foo"} {
		v, err := f.Parse(in)
		require.NoError(t, err)
		var n *value.Number
		var id string
		switch m := value.Match(v); m {
		case m.Keyword("inherit"):
			t.Logf("%q is a keyword", in)
		case m.Number(&n):
			assert.Equal(t, units.PT, n.UnitType())
		case m.Expression(nil):
			assert.Equal(t, value.Expression, v.Primitive())
		case m.Ident(&id):
			assert.Equal(t, "foo", id)
		default:
			t.Errorf("%q not matched", in)
		}
	}
	v, _ := f.Parse("12pt")
	var n *value.Number
	pt := value.ValuePattern[float64](v)
	x := pt.With(&n).OneOf(value.ValuePatterns[float64]{
		Number:  1,
		Keyword: 2,
		Default: -1,
	})
	assert.Equal(t, 1.0, x)
	assert.Equal(t, 12.0, n.Float())
}

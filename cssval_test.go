package cssval_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/cssval"
	"github.com/npillmayer/cssval/css/color"
	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/lexical"
	"github.com/npillmayer/cssval/css/syntax"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssval.value")
	defer teardown()
	//
	v, err := cssval.ParseValue("hsl(0 100% 50%)")
	require.NoError(t, err)
	assert.Equal(t, value.Color, v.Primitive())
	c, ok := v.(color.Color)
	require.True(t, ok)
	assert.Equal(t, color.HSLModel, c.Model())
	//
	seq, err := lexical.Parse("1px solid red")
	require.NoError(t, err)
	v, err = cssval.CreateValue(seq)
	require.NoError(t, err)
	assert.Equal(t, value.List, v.CSSType())
	assert.Equal(t, "1px solid red", v.CSSText())
}

func TestEvaluate(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssval.calc")
	defer teardown()
	//
	n, err := cssval.Evaluate("calc(1in - 48px)", nil)
	require.NoError(t, err)
	assert.Equal(t, units.IN, n.UnitType())
	assert.InDelta(t, 0.5, n.Float(), 1e-6)
	//
	_, err = cssval.Evaluate("calc(1px + 1s)", nil)
	assert.True(t, errors.Is(err, csserr.ErrTypeMismatch))
}

func TestMinifyAndMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssval.syntax")
	defer teardown()
	//
	s, err := cssval.Minify("0px", "margin")
	require.NoError(t, err)
	assert.Equal(t, "0", s)
	s, err = cssval.Minify("0.5em", "")
	require.NoError(t, err)
	assert.Equal(t, ".5em", s)
	//
	r, err := cssval.Match("10px", "<length> | auto")
	require.NoError(t, err)
	assert.Equal(t, syntax.True, r)
	r, err = cssval.Match("var(--x)", "<length>")
	require.NoError(t, err)
	assert.Equal(t, syntax.Pending, r)
}

func TestParseColor(t *testing.T) {
	c, err := cssval.ParseColor("#ff0000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBModel, c.Model())
	_, err = cssval.ParseColor("12px")
	assert.True(t, errors.Is(err, csserr.ErrTypeMismatch))
}

package lexical_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/lexical"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalCalc(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssval.lexical")
	defer teardown()
	//
	seq, err := lexical.Parse("calc(min(1.2 * 3, 3) * 8)")
	require.NoError(t, err)
	require.Len(t, seq, 1)
	calc := seq[0]
	assert.True(t, calc.IsFunction("CALC"))
	require.Len(t, calc.Params, 3)
	min := calc.Params[0]
	assert.True(t, min.IsFunction("min"))
	assert.Len(t, min.Params, 5) // 1.2 * 3 , 3
	assert.True(t, calc.Params[1].IsOperator('*'))
	assert.True(t, calc.Params[1].SpaceBefore)
	assert.Equal(t, 8.0, calc.Params[2].Value)
}

func TestLexicalNumbers(t *testing.T) {
	seq, err := lexical.Parse("-0 .0384 71.834% 3.6pt 1E2")
	require.NoError(t, err)
	require.Len(t, seq, 5)
	assert.Equal(t, lexical.Number, seq[0].Kind)
	assert.True(t, seq[0].Value == 0)
	assert.Equal(t, 0.0384, seq[1].Value)
	assert.Equal(t, lexical.Percentage, seq[2].Kind)
	assert.Equal(t, 71.834, seq[2].Value)
	assert.Equal(t, lexical.Dimension, seq[3].Kind)
	assert.Equal(t, "pt", seq[3].Name)
	assert.Equal(t, 100.0, seq[4].Value)
}

func TestLexicalText(t *testing.T) {
	inputs := []string{
		"attr(width px, 20em)",
		"rgb(1 2 3 / .5)",
		"var(--main-color, #fff)",
		"calc((1px + 2px) * 3)",
		"\"quoted\" ident U+0025-00FF",
	}
	for _, in := range inputs {
		seq, err := lexical.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, in, lexical.Text(seq))
	}
}

func TestLexicalErrors(t *testing.T) {
	for _, in := range []string{"calc(1px", "1px)", "a;b", "{x}"} {
		_, err := lexical.Parse(in)
		if !errors.Is(err, csserr.ErrSyntax) {
			t.Errorf("expected SYNTAX_ERR for %q, got %v", in, err)
		}
	}
}

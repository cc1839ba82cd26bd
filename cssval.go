package cssval

import (
	"github.com/npillmayer/cssval/css/calc"
	"github.com/npillmayer/cssval/css/color"
	"github.com/npillmayer/cssval/css/lexical"
	"github.com/npillmayer/cssval/css/sheet"
	"github.com/npillmayer/cssval/css/syntax"
	"github.com/npillmayer/cssval/css/value"
)

// NewFactory creates a value factory which recognizes colors.
func NewFactory() *value.Factory {
	return value.NewFactory(color.FromLexical)
}

// ParseValue creates a value from the text of a property value.
func ParseValue(text string) (value.Value, error) {
	return NewFactory().Parse(text)
}

// CreateValue creates a value from a sequence of lexical units.
func CreateValue(seq []*lexical.Unit) (value.Value, error) {
	return NewFactory().CreateValue(seq)
}

// ParseColor creates a color from text, e.g. "oklch(70% 0.1 200)".
func ParseColor(text string) (color.Color, error) {
	return color.Parse(text)
}

// Evaluate parses text and evaluates it to a number. ctx may be nil.
func Evaluate(text string, ctx *calc.Context) (*value.Number, error) {
	v, err := ParseValue(text)
	if err != nil {
		return nil, err
	}
	return calc.Evaluate(v, ctx)
}

// Minify parses text and returns its minified serialization. property
// is the name of the property the value belongs to and may be empty.
func Minify(text, property string) (string, error) {
	v, err := ParseValue(text)
	if err != nil {
		return "", err
	}
	return v.MinifiedCSSText(property), nil
}

// Match parses text and matches the value against a grammar like
// "<length> | auto".
func Match(text, grammar string) (syntax.Result, error) {
	v, err := ParseValue(text)
	if err != nil {
		return syntax.False, err
	}
	return syntax.Match(v, grammar)
}

// NewLoader creates a style sheet loader recognizing colors. h may be nil.
func NewLoader(h sheet.ErrorHandler) *sheet.Loader {
	return sheet.NewLoader(NewFactory(), h)
}

package syntax

import (
	"errors"
	"math"
	"strings"

	"github.com/npillmayer/cssval/css/calc"
	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
)

// Result is the outcome of matching a value against a grammar.
type Result uint8

// Match results.
const (
	False Result = iota
	True
	Pending
)

func (r Result) String() string {
	switch r {
	case True:
		return "TRUE"
	case Pending:
		return "PENDING"
	}
	return "FALSE"
}

type termKind uint8

const (
	universal termKind = iota
	keyword
	dataType
)

type term struct {
	kind termKind
	name string
	mult byte // 0, '+' or '#'
}

// Grammar is a compiled value grammar.
type Grammar struct {
	source string
	alts   []term
}

func (g *Grammar) String() string {
	return g.source
}

var dataTypes = map[string]bool{
	"length": true, "percentage": true, "length-percentage": true,
	"number": true, "integer": true, "angle": true, "time": true,
	"frequency": true, "resolution": true, "color": true, "string": true,
	"custom-ident": true, "ident": true, "url": true,
}

// Compile parses a grammar. Malformed grammars are a SYNTAX_ERR, data types
// this package does not know are NOT_SUPPORTED_ERR.
func Compile(grammar string) (*Grammar, error) {
	g := &Grammar{source: strings.TrimSpace(grammar)}
	for _, alt := range strings.Split(g.source, "|") {
		alt = strings.TrimSpace(alt)
		if alt == "" {
			return nil, csserr.Syntax("empty alternative in grammar %q", grammar)
		}
		if alt == "*" {
			if len(strings.Split(g.source, "|")) > 1 {
				return nil, csserr.Syntax("'*' cannot be combined: %q", grammar)
			}
			g.alts = append(g.alts, term{kind: universal})
			continue
		}
		t := term{}
		if last := alt[len(alt)-1]; last == '+' || last == '#' {
			t.mult, alt = last, alt[:len(alt)-1]
		}
		switch {
		case strings.HasPrefix(alt, "<") && strings.HasSuffix(alt, ">"):
			t.kind, t.name = dataType, alt[1:len(alt)-1]
			if !dataTypes[t.name] {
				return nil, csserr.NotSupported("data type <%s>", t.name)
			}
		case isIdent(alt):
			t.kind, t.name = keyword, strings.ToLower(alt)
		default:
			return nil, csserr.Syntax("malformed grammar term %q", alt)
		}
		g.alts = append(g.alts, t)
	}
	return g, nil
}

func isIdent(s string) bool {
	for i, r := range s {
		switch {
		case r == '-' || r == '_' || r >= 0x80:
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != "" && s != "-"
}

// Match compiles grammar and matches v against it.
func Match(v value.Value, grammar string) (Result, error) {
	g, err := Compile(grammar)
	if err != nil {
		return False, err
	}
	return g.Match(v), nil
}

// Match matches v against the alternatives of g. CSS-wide keywords match
// every grammar.
func (g *Grammar) Match(v value.Value) Result {
	if v == nil {
		return False
	}
	if v.CSSType() == value.Keyword {
		return True
	}
	res := False
	for _, t := range g.alts {
		switch t.match(v) {
		case True:
			tracer().Debugf("%s matches %s", v.CSSText(), g)
			return True
		case Pending:
			res = Pending
		}
	}
	return res
}

func (t term) match(v value.Value) Result {
	if t.kind == universal {
		return True
	}
	if value.IsPending(v) && v.CSSType() != value.List {
		return Pending
	}
	if l, ok := v.(*value.ListValue); ok {
		if t.mult == 0 || (t.mult == '+') != (l.Sep == value.SpaceSeparated) ||
			(t.mult == '#') != (l.Sep == value.CommaSeparated) {
			if value.IsPending(v) {
				return Pending
			}
			return False
		}
		res := True
		for _, item := range l.Items {
			switch t.single(item) {
			case False:
				return False
			case Pending:
				res = Pending
			}
		}
		return res
	}
	return t.single(v)
}

func (t term) single(v value.Value) Result {
	if value.IsPending(v) {
		return Pending
	}
	if t.kind == keyword {
		if id, ok := v.(*value.IdentValue); ok && strings.EqualFold(id.Name, t.name) {
			return True
		}
		return False
	}
	switch t.name {
	case "color":
		if v.Primitive() == value.Color {
			return True
		}
		if id, ok := v.(*value.IdentValue); ok && strings.EqualFold(id.Name, "currentcolor") {
			return True
		}
		return False
	case "string":
		return is(v.Primitive() == value.String)
	case "url":
		return is(v.Primitive() == value.URI)
	case "ident", "custom-ident":
		id, ok := v.(*value.IdentValue)
		return is(ok && (t.name == "ident" || !reserved(id.Name)))
	}
	return numeric(t.name, v)
}

func is(b bool) Result {
	if b {
		return True
	}
	return False
}

func reserved(name string) bool {
	return strings.EqualFold(name, "default") || value.IsCSSWideKeyword(strings.ToLower(name))
}

// trial is used to find the type of math expressions. Its metrics resolve
// every relative length.
var trial = &calc.Context{Metrics: units.Metrics{
	FontSize: 16, RootFontSize: 16, ExHeight: 8, ChWidth: 8,
	ViewportWidth: 1000, ViewportHeight: 1000, PercentBase: 100,
}}

// numeric matches numbers, dimensions and math expressions against a
// numeric data type. Expressions are typed by evaluating them.
func numeric(name string, v value.Value) Result {
	var n *value.Number
	switch x := v.(type) {
	case *value.Number:
		n = x
	case *value.ExpressionValue, *value.FunctionValue:
		r, err := calc.Evaluate(v, trial)
		if errors.Is(err, csserr.ErrInvalidState) {
			return Pending
		} else if err != nil {
			return False
		}
		n = r
		if name == "length" && hasPercent(v) {
			return False
		}
	default:
		return False
	}
	u := n.UnitType()
	switch name {
	case "number":
		return is(u == units.None)
	case "integer":
		return is(u == units.None && n.Float() == math.Trunc(n.Float()))
	case "percentage":
		return is(u == units.Percent)
	case "length":
		return is(u != units.Percent && u.Category() == units.Length || isZero(n))
	case "length-percentage":
		return is(u.Category() == units.Length || isZero(n))
	case "angle":
		return is(u.Category() == units.Angle)
	case "time":
		return is(u.Category() == units.Time)
	case "frequency":
		return is(u.Category() == units.Frequency)
	case "resolution":
		return is(u.Category() == units.Resolution)
	}
	return False
}

// isZero is true for a literal unitless zero, which is a valid length.
func isZero(n *value.Number) bool {
	return n.UnitType() == units.None && n.Float() == 0 && !n.IsCalculatedNumber()
}

func hasPercent(v value.Value) bool {
	return strings.Contains(v.CSSText(), "%")
}

package value

import (
	"math"
	"strings"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/lexical"
	"github.com/npillmayer/cssval/css/units"
)

// ColorFactory creates a color value from a hash, an identifier or a color
// function. It returns false if u does not denote a color. Color factories
// use f to create channel values.
type ColorFactory func(f *Factory, u *lexical.Unit) (Value, bool, error)

// Factory creates values from lexical units.
//
// A Factory without a color factory treats color functions as plain
// functions and color names as identifiers.
type Factory struct {
	Colors ColorFactory
}

// NewFactory creates a value factory. colors may be nil.
func NewFactory(colors ColorFactory) *Factory {
	return &Factory{Colors: colors}
}

// Parse tokenizes text and creates a value from it.
func (f *Factory) Parse(text string) (Value, error) {
	seq, err := lexical.Parse(text)
	if err != nil {
		return nil, err
	}
	v, err := f.CreateValue(seq)
	if err != nil {
		tracer().Debugf("cannot create value from %q: %v", text, err)
		return nil, err
	}
	return v, nil
}

// CreateValue creates a value from a sequence of lexical units.
//
// Sequences containing var() result in a ProxyValue holding the text
// verbatim. Sequences of more than one component result in lists: commas
// separate loosest, then whitespace, then slashes.
func (f *Factory) CreateValue(seq []*lexical.Unit) (Value, error) {
	if len(seq) == 0 {
		return nil, csserr.Syntax("empty value")
	}
	if len(seq) == 1 && seq[0].Kind == lexical.Function && f.Colors != nil {
		c, ok, err := f.Colors(f, seq[0])
		if ok {
			if err == nil {
				return c, nil
			}
			if !containsVar(seq) {
				return nil, err
			}
		}
	}
	if containsVar(seq) {
		return &ProxyValue{Text: lexical.Text(seq)}, nil
	}
	if groups := splitCommas(seq); len(groups) > 1 {
		return f.createList(groups, CommaSeparated)
	}
	var items [][]*lexical.Unit
	for i := 0; i < len(seq); i++ {
		u := seq[i]
		if u.Kind == lexical.Operator {
			if u.Op != '/' || i == 0 || i == len(seq)-1 || len(items) == 0 {
				return nil, csserr.Syntax("unexpected operator %q", u.Raw)
			}
			i++
			last := len(items) - 1
			items[last] = append(items[last], u, seq[i])
			continue
		}
		items = append(items, []*lexical.Unit{u})
	}
	if len(items) > 1 {
		return f.createList(items, SpaceSeparated)
	}
	if parts := items[0]; len(parts) > 1 {
		var slashed [][]*lexical.Unit
		for i := 0; i < len(parts); i += 2 {
			slashed = append(slashed, parts[i:i+1])
		}
		return f.createList(slashed, SlashSeparated)
	}
	return f.CreateUnit(seq[0])
}

func (f *Factory) createList(groups [][]*lexical.Unit, sep Separator) (Value, error) {
	list := &ListValue{Sep: sep}
	for _, g := range groups {
		v, err := f.CreateValue(g)
		if err != nil {
			return nil, err
		}
		list.Items = append(list.Items, v)
	}
	return list, nil
}

// CreateUnit creates a value from a single lexical unit.
func (f *Factory) CreateUnit(u *lexical.Unit) (Value, error) {
	switch u.Kind {
	case lexical.Number, lexical.Percentage, lexical.Dimension:
		return createNumber(u)
	case lexical.Ident:
		if k := NewKeyword(u.Name); k != nil {
			return k, nil
		}
		if c, ok, err := f.color(u); ok {
			return c, err
		}
		return &IdentValue{Name: u.Name}, nil
	case lexical.Hash:
		if c, ok, err := f.color(u); ok {
			return c, err
		}
		return nil, csserr.Syntax("invalid color %q", u.Raw)
	case lexical.String:
		return &StringValue{S: u.Name}, nil
	case lexical.URL:
		return &URIValue{URL: u.Name}, nil
	case lexical.UnicodeRange:
		return &UnicodeRangeValue{Range: strings.ToUpper(u.Name)}, nil
	case lexical.Function:
		return f.createFunction(u)
	}
	return nil, csserr.Syntax("unexpected %q", u.String())
}

func (f *Factory) color(u *lexical.Unit) (Value, bool, error) {
	if f.Colors == nil {
		return nil, false, nil
	}
	return f.Colors(f, u)
}

func (f *Factory) createFunction(u *lexical.Unit) (Value, error) {
	switch u.Name {
	case "var":
		return &ProxyValue{Text: u.String()}, nil
	case "calc":
		e, err := f.buildExpr(u.Params)
		if err != nil {
			return nil, err
		}
		return NewExpression(e), nil
	case "attr":
		return f.createAttr(u)
	case "url":
		if len(u.Params) == 1 && u.Params[0].Kind == lexical.String {
			return &URIValue{URL: u.Params[0].Name}, nil
		}
		return nil, csserr.Syntax("malformed url()")
	}
	if IsMathFunction(u.Name) {
		return f.createMathFunction(u)
	}
	if c, ok, err := f.color(u); ok {
		return c, err
	}
	fv := &FunctionValue{Name: u.Name}
	if len(u.Params) == 0 {
		return fv, nil
	}
	for _, g := range splitCommas(u.Params) {
		v, err := f.CreateValue(g)
		if err != nil {
			return nil, err
		}
		fv.Args = append(fv.Args, &Operand{Value: v})
	}
	return fv, nil
}

func (f *Factory) createMathFunction(u *lexical.Unit) (*FunctionValue, error) {
	var args []Expr
	if len(u.Params) > 0 {
		for _, g := range splitCommas(u.Params) {
			e, err := f.buildExpr(g)
			if err != nil {
				return nil, err
			}
			args = append(args, e)
		}
	}
	return NewMathFunction(u.Name, args)
}

// createAttr handles attr( name [type] [, fallback] ).
func (f *Factory) createAttr(u *lexical.Unit) (*AttrValue, error) {
	groups := splitCommas(u.Params)
	if len(u.Params) == 0 || len(groups) > 2 {
		return nil, csserr.Syntax("malformed attr()")
	}
	head := groups[0]
	if len(head) == 0 || head[0].Kind != lexical.Ident || head[0].Name == "" {
		return nil, csserr.Syntax("attr() without attribute name")
	}
	var typ string
	switch len(head) {
	case 1:
	case 2:
		if head[1].Kind != lexical.Ident {
			return nil, csserr.Syntax("attr(%s): malformed type", head[0].Name)
		}
		typ = head[1].Name
	default:
		return nil, csserr.Syntax("attr(%s): unexpected %q", head[0].Name, lexical.Text(head[2:]))
	}
	var fallback Value
	if len(groups) == 2 {
		var err error
		if fallback, err = f.CreateValue(groups[1]); err != nil {
			return nil, err
		}
	}
	return NewAttr(head[0].Name, typ, fallback)
}

func createNumber(u *lexical.Unit) (*Number, error) {
	unit := units.None
	switch u.Kind {
	case lexical.Percentage:
		unit = units.Percent
	case lexical.Dimension:
		var ok bool
		if unit, ok = units.Parse(u.Name); !ok {
			return nil, csserr.NotSupported("unknown unit %q", u.Name)
		}
	}
	return NewNumber(u.Value, unit)
}

// --- calc() ----------------------------------------------------------------

// buildExpr builds an expression tree from the parameters of calc() or of
// a math function argument.
//
// Nested sums and products which would print without parentheses are merged
// into their parent, so that serialized expressions re-parse to equal trees.
func (f *Factory) buildExpr(seq []*lexical.Unit) (Expr, error) {
	b := &exprBuilder{f: f, seq: seq}
	e, err := b.sum()
	if err != nil {
		return nil, err
	}
	if b.pos < len(seq) {
		return nil, csserr.Syntax("missing operator before %q", seq[b.pos].String())
	}
	return e, nil
}

type exprBuilder struct {
	f   *Factory
	seq []*lexical.Unit
	pos int
}

func (b *exprBuilder) peekOperator(ops string) (byte, bool) {
	if b.pos >= len(b.seq) {
		return 0, false
	}
	u := b.seq[b.pos]
	if u.Kind != lexical.Operator || strings.IndexByte(ops, u.Op) < 0 {
		return 0, false
	}
	return u.Op, true
}

func (b *exprBuilder) sum() (Expr, error) {
	first, err := b.product()
	if err != nil {
		return nil, err
	}
	s := &Sum{}
	s.add(first, false)
	for {
		op, ok := b.peekOperator("+-")
		if !ok {
			break
		}
		u := b.seq[b.pos]
		b.pos++
		if !u.SpaceBefore || b.pos >= len(b.seq) || !b.seq[b.pos].SpaceBefore {
			return nil, csserr.Syntax("%q must be surrounded by whitespace", u.Raw)
		}
		t, err := b.product()
		if err != nil {
			return nil, err
		}
		s.add(t, op == '-')
	}
	if len(s.Terms) == 1 {
		return first, nil
	}
	return s, nil
}

func (s *Sum) add(t Expr, inverse bool) {
	if sub, ok := t.(*Sum); ok && !inverse {
		s.Terms = append(s.Terms, sub.Terms...)
		return
	}
	setInverse(t, inverse)
	s.Terms = append(s.Terms, t)
}

func (b *exprBuilder) product() (Expr, error) {
	first, err := b.factor()
	if err != nil {
		return nil, err
	}
	p := &Product{}
	p.add(first, false)
	for {
		op, ok := b.peekOperator("*/")
		if !ok {
			break
		}
		b.pos++
		x, err := b.factor()
		if err != nil {
			return nil, err
		}
		p.add(x, op == '/')
	}
	if len(p.Factors) == 1 {
		return first, nil
	}
	return p, nil
}

func (p *Product) add(x Expr, inverse bool) {
	if sub, ok := x.(*Product); ok && !inverse {
		p.Factors = append(p.Factors, sub.Factors...)
		return
	}
	setInverse(x, inverse)
	p.Factors = append(p.Factors, x)
}

func setInverse(e Expr, inverse bool) {
	switch n := e.(type) {
	case *Operand:
		n.Inverse = inverse
	case *Sum:
		n.Inverse = inverse
	case *Product:
		n.Inverse = inverse
	}
}

var calcConstants = map[string]float64{
	"pi":        math.Pi,
	"e":         math.E,
	"infinity":  math.Inf(1),
	"-infinity": math.Inf(-1),
	"nan":       math.NaN(),
}

func (b *exprBuilder) factor() (Expr, error) {
	if b.pos >= len(b.seq) {
		return nil, csserr.Syntax("missing operand")
	}
	u := b.seq[b.pos]
	b.pos++
	switch u.Kind {
	case lexical.Number, lexical.Percentage, lexical.Dimension:
		n, err := createNumber(u)
		if err != nil {
			return nil, err
		}
		return &Operand{Value: n}, nil
	case lexical.Ident:
		x, ok := calcConstants[strings.ToLower(u.Name)]
		if !ok {
			return nil, csserr.Syntax("unexpected %q in calc()", u.Name)
		}
		n, err := NewNumber(x, units.None)
		if err != nil {
			return nil, err
		}
		return &Operand{Value: n}, nil
	case lexical.Block:
		return b.nested(u.Params)
	case lexical.Function:
		switch {
		case u.Name == "calc":
			return b.nested(u.Params)
		case u.Name == "attr":
			a, err := b.f.createAttr(u)
			if err != nil {
				return nil, err
			}
			return &Operand{Value: a}, nil
		case IsMathFunction(u.Name):
			fv, err := b.f.createMathFunction(u)
			if err != nil {
				return nil, err
			}
			return &Operand{Value: fv}, nil
		}
		return nil, csserr.Syntax("%s() not allowed in calc()", u.Name)
	case lexical.Operator:
		return nil, csserr.Syntax("stray operator %q", u.Raw)
	case lexical.Comma:
		return nil, csserr.Syntax("unexpected ',' in calc()")
	}
	return nil, csserr.Syntax("unexpected %q in calc()", u.String())
}

func (b *exprBuilder) nested(seq []*lexical.Unit) (Expr, error) {
	if len(seq) == 0 {
		return nil, csserr.Syntax("empty parentheses in calc()")
	}
	return b.f.buildExpr(seq)
}

// --- Helpers ---------------------------------------------------------------

func containsVar(seq []*lexical.Unit) bool {
	for _, u := range seq {
		if u.IsFunction("var") || containsVar(u.Params) {
			return true
		}
	}
	return false
}

// splitCommas splits seq at top level commas. Empty groups are kept.
func splitCommas(seq []*lexical.Unit) [][]*lexical.Unit {
	var groups [][]*lexical.Unit
	start := 0
	for i, u := range seq {
		if u.Kind == lexical.Comma {
			groups = append(groups, seq[start:i])
			start = i + 1
		}
	}
	return append(groups, seq[start:])
}

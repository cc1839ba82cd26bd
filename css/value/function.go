package value

import (
	"strings"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
)

// arity is the number of arguments a math function accepts. max < 0 means
// no upper bound.
type arity struct {
	min, max int
}

var mathFunctions = map[string]arity{
	"min":   {1, -1},
	"max":   {1, -1},
	"clamp": {3, 3},
	"sin":   {1, 1},
	"cos":   {1, 1},
	"tan":   {1, 1},
	"asin":  {1, 1},
	"acos":  {1, 1},
	"atan":  {1, 1},
	"atan2": {2, 2},
	"pow":   {2, 2},
	"sqrt":  {1, 1},
	"hypot": {1, -1},
	"sign":  {1, 1},
	"abs":   {1, 1},
}

// IsMathFunction is true for the names of functions which may appear
// inside calc(): min, max, clamp, sin, cos, tan, asin, acos, atan, atan2,
// pow, sqrt, hypot, sign and abs.
func IsMathFunction(name string) bool {
	_, ok := mathFunctions[strings.ToLower(name)]
	return ok
}

// FunctionValue is a function call. Arguments are expressions; arguments
// of functions other than math functions are single operands.
type FunctionValue struct {
	Name string // lower case
	Args []Expr
}

// NewMathFunction creates a math function call and checks its arity.
func NewMathFunction(name string, args []Expr) (*FunctionValue, error) {
	name = strings.ToLower(name)
	a, ok := mathFunctions[name]
	if !ok {
		return nil, csserr.NotSupported("%s() is not a math function", name)
	}
	if len(args) < a.min || (a.max >= 0 && len(args) > a.max) {
		return nil, csserr.Syntax("%s() called with %d arguments", name, len(args))
	}
	for _, arg := range args {
		if !ValidateExpr(arg) {
			return nil, csserr.Syntax("%s(): malformed argument", name)
		}
	}
	return &FunctionValue{Name: name, Args: args}, nil
}

// IsMath is true if fv is one of the math functions.
func (fv *FunctionValue) IsMath() bool {
	_, ok := mathFunctions[fv.Name]
	return ok
}

func (fv *FunctionValue) CSSType() CSSType     { return Typed }
func (fv *FunctionValue) Primitive() Primitive { return Function }

func (fv *FunctionValue) CSSText() string {
	return fv.text(false)
}

func (fv *FunctionValue) MinifiedCSSText(string) string {
	return fv.text(true)
}

func (fv *FunctionValue) text(minify bool) string {
	sep := ", "
	if minify {
		sep = ","
	}
	var b strings.Builder
	b.WriteString(fv.Name)
	b.WriteByte('(')
	for i, arg := range fv.Args {
		if i > 0 {
			b.WriteString(sep)
		}
		writeExpr(&b, arg, minify)
	}
	b.WriteByte(')')
	return b.String()
}

func (fv *FunctionValue) Clone() Value {
	return &FunctionValue{Name: fv.Name, Args: cloneExprs(fv.Args)}
}

func (fv *FunctionValue) Equals(other Value) bool {
	o, ok := other.(*FunctionValue)
	return ok && o.Name == fv.Name && equalExprs(fv.Args, o.Args)
}

// IsPending is true if an argument contains an unresolved attr() or var().
func (fv *FunctionValue) IsPending() bool {
	return anyPending(fv.Args)
}

// --- attr() ----------------------------------------------------------------

// AttrValue is an attr() reference to an element attribute. Type is empty,
// a data type name (string, number, length, …) or a unit. Fallback may be nil.
type AttrValue struct {
	Name     string
	Type     string
	Fallback Value
}

var attrTypes = map[string]bool{
	"string": true, "ident": true, "color": true, "url": true, "integer": true, "number": true,
	"length": true, "angle": true, "time": true, "frequency": true, "resolution": true,
	"percentage": true, "flex": true,
}

// NewAttr creates an attr() value. An empty attribute name is a SYNTAX_ERR,
// as is an unknown type.
func NewAttr(name, typ string, fallback Value) (*AttrValue, error) {
	if name == "" {
		return nil, csserr.Syntax("attr() without attribute name")
	}
	typ = strings.ToLower(typ)
	if typ != "" && !attrTypes[typ] && !isUnitName(typ) {
		return nil, csserr.Syntax("attr(%s): unknown type %q", name, typ)
	}
	return &AttrValue{Name: name, Type: typ, Fallback: fallback}, nil
}

func (a *AttrValue) CSSType() CSSType     { return Typed }
func (a *AttrValue) Primitive() Primitive { return Attr }

func (a *AttrValue) CSSText() string {
	return a.text(false)
}

func (a *AttrValue) MinifiedCSSText(string) string {
	return a.text(true)
}

func (a *AttrValue) text(minify bool) string {
	var b strings.Builder
	b.WriteString("attr(")
	b.WriteString(a.Name)
	if a.Type != "" {
		b.WriteByte(' ')
		b.WriteString(a.Type)
	}
	if a.Fallback != nil {
		if minify {
			b.WriteByte(',')
			b.WriteString(a.Fallback.MinifiedCSSText(""))
		} else {
			b.WriteString(", ")
			b.WriteString(a.Fallback.CSSText())
		}
	}
	b.WriteByte(')')
	return b.String()
}

func (a *AttrValue) Clone() Value {
	c := &AttrValue{Name: a.Name, Type: a.Type}
	if a.Fallback != nil {
		c.Fallback = a.Fallback.Clone()
	}
	return c
}

func (a *AttrValue) Equals(other Value) bool {
	o, ok := other.(*AttrValue)
	return ok && o.Name == a.Name && o.Type == a.Type && Equal(a.Fallback, o.Fallback)
}

// IsPending is always true: attr() is resolved against a document only.
func (a *AttrValue) IsPending() bool { return true }

func isUnitName(s string) bool {
	u, ok := units.Parse(s)
	return ok && u != units.None
}

package calc

import (
	"math"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
)

// AttrResolver looks up the value of an element attribute for attr().
// It returns false if the attribute is absent.
type AttrResolver func(name string) (value.Value, bool)

// Context holds everything evaluation depends on besides the expression.
// The zero value is a valid context without metrics.
type Context struct {
	units.Metrics
	// DisplayUnit is the unit results of sqrt() are reported in. If unset,
	// or not of the result's category, the unit of the first operand is used.
	// The root is taken in canonical units, so only a DisplayUnit of px gives
	// dimensionally correct magnitudes: calc(sqrt(4in * 1in)) is 192in
	// without it and 192px with it.
	DisplayUnit units.Unit
	// Attrs resolves attr() references. Without it, attr() is pending.
	Attrs AttrResolver
}

// quantity is an intermediate result.
//
// x is given in unit^dim.Exp, where unit is either the canonical unit of
// the category or a relative unit which could not be resolved. report is
// the unit of the first concrete operand, in which results are reported.
type quantity struct {
	x      float64
	dim    units.Dimension
	unit   units.Unit
	report units.Unit
}

func (q quantity) isNumber() bool {
	return q.dim.IsNumber()
}

func number(x float64) quantity {
	return quantity{x: x, dim: units.Dimensionless}
}

// Evaluate reduces a numeric value, an expression, a math function or an
// attr() reference to a single calculated number.
func Evaluate(v value.Value, ctx *Context) (*value.Number, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	q, err := ctx.eval(v)
	if err != nil {
		tracer().Debugf("cannot evaluate %s: %v", text(v), err)
		return nil, err
	}
	n, err := ctx.toNumber(q)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("%s = %s", text(v), n.CSSText())
	return n, nil
}

// EvaluateExpr reduces an expression tree to a single calculated number.
func EvaluateExpr(e value.Expr, ctx *Context) (*value.Number, error) {
	return Evaluate(value.NewExpression(e), ctx)
}

// FloatValue evaluates v and returns its magnitude in unit u.
func FloatValue(v value.Value, u units.Unit, ctx *Context) (float64, error) {
	if ctx == nil {
		ctx = &Context{}
	}
	n, err := Evaluate(v, ctx)
	if err != nil {
		return 0, err
	}
	return ctx.Convert(n.Float(), n.UnitType(), u)
}

func text(v value.Value) string {
	if v == nil {
		return "<nil>"
	}
	return v.CSSText()
}

// toNumber reports a quantity as a number of exponent 0 or 1.
func (ctx *Context) toNumber(q quantity) (*value.Number, error) {
	cat, ok := q.dim.Reported()
	if !ok {
		return nil, csserr.TypeMismatch("result is of dimension %s^%d", q.dim.Category, q.dim.Exp)
	}
	if cat == units.Number {
		return calculated(q.x, units.None)
	}
	target := q.report
	if target.Category() != cat {
		target = units.Canonical(cat)
	}
	x := q.x
	if cat == units.Frequency {
		// q.x is per q.unit, a unit of time
		s, err := ctx.rescale(q, units.S)
		if err != nil {
			return nil, err
		}
		x, err = units.Convert(s, units.HZ, target)
		if err != nil {
			return nil, err
		}
		return calculated(x, target)
	}
	x, err := ctx.Convert(x, q.unit, target)
	if err != nil {
		return nil, err
	}
	return calculated(x, target)
}

func calculated(x float64, u units.Unit) (*value.Number, error) {
	if math.IsNaN(x) {
		return nil, csserr.InvalidAccess("result is not a number")
	}
	return value.NewCalculated(x, u)
}

// rescale expresses the magnitude of q in unit to instead of q.unit,
// taking the exponent into account.
func (ctx *Context) rescale(q quantity, to units.Unit) (float64, error) {
	if q.unit == to || q.dim.Exp == 0 {
		return q.x, nil
	}
	r, err := ctx.Convert(1, q.unit, to)
	if err != nil {
		return 0, err
	}
	return q.x * math.Pow(r, float64(q.dim.Exp)), nil
}

// --- Recursive fold --------------------------------------------------------

func (ctx *Context) eval(v value.Value) (quantity, error) {
	switch x := v.(type) {
	case *value.Number:
		return ctx.leaf(x)
	case *value.ExpressionValue:
		return ctx.evalExpr(x.Expr)
	case *value.FunctionValue:
		return ctx.evalFunction(x)
	case *value.AttrValue:
		return ctx.evalAttr(x)
	case nil:
		return quantity{}, csserr.InvalidState("missing operand")
	}
	if value.IsPending(v) {
		return quantity{}, csserr.InvalidState("%s is pending", v.CSSText())
	}
	return quantity{}, csserr.TypeMismatch("%s is not numeric", v.CSSText())
}

// leaf converts a number to a quantity in canonical units, where possible.
func (ctx *Context) leaf(n *value.Number) (quantity, error) {
	u := n.UnitType()
	q := quantity{x: n.Float(), dim: units.DimensionOf(u), unit: u, report: u}
	switch c := u.Category(); {
	case c == units.Number:
		q.unit, q.report = units.None, units.None
	case c == units.Frequency:
		hz, err := units.Convert(q.x, u, units.HZ)
		if err != nil {
			return q, err
		}
		q.x, q.unit = hz, units.S
	case u.IsRelative():
		if px, ok := ctx.Px(u); ok {
			q.x, q.unit = q.x*px, units.PX
		}
	default:
		x, err := units.Convert(q.x, u, units.Canonical(c))
		if err != nil {
			return q, err
		}
		q.x, q.unit = x, units.Canonical(c)
	}
	return q, nil
}

func (ctx *Context) evalExpr(e value.Expr) (quantity, error) {
	switch n := e.(type) {
	case *value.Operand:
		return ctx.eval(n.Value)
	case *value.Sum:
		return ctx.evalSum(n)
	case *value.Product:
		return ctx.evalProduct(n)
	}
	return quantity{}, csserr.Syntax("malformed expression")
}

func (ctx *Context) evalSum(s *value.Sum) (quantity, error) {
	if len(s.Terms) == 0 {
		return quantity{}, csserr.Syntax("empty sum")
	}
	terms := make([]quantity, len(s.Terms))
	for i, t := range s.Terms {
		q, err := ctx.evalExpr(t)
		if err != nil {
			return q, err
		}
		if t.IsInverse() {
			q.x = -q.x
		}
		terms[i] = q
	}
	if err := ctx.align(terms); err != nil {
		return quantity{}, err
	}
	acc := terms[0]
	for _, t := range terms[1:] {
		acc.x += t.x
	}
	if math.IsNaN(acc.x) {
		return acc, csserr.InvalidAccess("sum is not a number")
	}
	return acc, nil
}

// align brings a set of quantities to a common unit, the unit of the first
// dimensioned one. All quantities must be of the same dimension.
func (ctx *Context) align(qs []quantity) error {
	first := -1
	for i, q := range qs {
		if !q.isNumber() {
			first = i
			break
		}
	}
	if first < 0 {
		return nil
	}
	target := qs[first]
	for i := range qs {
		q := &qs[i]
		if q.dim != target.dim {
			return csserr.TypeMismatch("cannot combine %s^%d with %s^%d",
				q.dim.Category, q.dim.Exp, target.dim.Category, target.dim.Exp)
		}
		if q.unit != target.unit {
			x, err := ctx.rescale(*q, target.unit)
			if err != nil {
				return err
			}
			q.x, q.unit = x, target.unit
		}
		q.report = target.report
	}
	return nil
}

func (ctx *Context) evalProduct(p *value.Product) (quantity, error) {
	if len(p.Factors) == 0 {
		return quantity{}, csserr.Syntax("empty product")
	}
	acc := number(1)
	for _, f := range p.Factors {
		q, err := ctx.evalExpr(f)
		if err != nil {
			return q, err
		}
		if !q.isNumber() {
			if acc.isNumber() {
				acc.unit, acc.report = q.unit, q.report
			} else if q.unit != acc.unit {
				if q.x, err = ctx.rescale(q, acc.unit); err != nil {
					return q, err
				}
			}
		}
		if f.IsInverse() {
			q.dim = q.dim.Inverse()
		}
		if acc.dim, err = acc.dim.Mul(q.dim); err != nil {
			return acc, err
		}
		if f.IsInverse() {
			acc.x /= q.x
		} else {
			acc.x *= q.x
		}
		if math.IsNaN(acc.x) {
			return acc, csserr.InvalidAccess("product is not a number")
		}
	}
	if acc.isNumber() {
		acc.unit = units.None
	}
	return acc, nil
}

func (ctx *Context) evalAttr(a *value.AttrValue) (quantity, error) {
	if ctx.Attrs == nil {
		return quantity{}, csserr.InvalidState("%s is pending", a.CSSText())
	}
	v, ok := ctx.Attrs(a.Name)
	if !ok {
		if a.Fallback == nil {
			return quantity{}, csserr.InvalidState("attribute %q not present", a.Name)
		}
		return ctx.eval(a.Fallback)
	}
	if n, ok := v.(*value.Number); ok && n.UnitType() == units.None && a.Type != "" {
		if u, ok := units.Parse(a.Type); ok && u != units.None {
			var err error
			if v, err = value.NewNumber(n.Float(), u); err != nil {
				return quantity{}, err
			}
		}
	}
	return ctx.eval(v)
}

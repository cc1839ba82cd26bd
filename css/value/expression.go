package value

import (
	"strings"
)

// Expr is a node of a calc() expression tree: one of *Operand, *Sum or *Product.
//
// Every node carries an inverse flag. Its meaning depends on the parent node:
// an inverse child of a Sum is subtracted, an inverse child of a Product is
// a divisor. The flag of a root node is ignored.
type Expr interface {
	IsInverse() bool
	exprNode()
}

// Operand is a leaf of an expression tree.
type Operand struct {
	Value   Value
	Inverse bool
}

// Sum is the sum of its terms.
type Sum struct {
	Terms   []Expr
	Inverse bool
}

// Product is the product of its factors.
type Product struct {
	Factors []Expr
	Inverse bool
}

func (o *Operand) IsInverse() bool { return o.Inverse }
func (s *Sum) IsInverse() bool     { return s.Inverse }
func (p *Product) IsInverse() bool { return p.Inverse }

func (*Operand) exprNode() {}
func (*Sum) exprNode()     {}
func (*Product) exprNode() {}

// CloneExpr returns a deep copy of e.
func CloneExpr(e Expr) Expr {
	switch n := e.(type) {
	case *Operand:
		var v Value
		if n.Value != nil {
			v = n.Value.Clone()
		}
		return &Operand{Value: v, Inverse: n.Inverse}
	case *Sum:
		return &Sum{Terms: cloneExprs(n.Terms), Inverse: n.Inverse}
	case *Product:
		return &Product{Factors: cloneExprs(n.Factors), Inverse: n.Inverse}
	}
	return nil
}

func cloneExprs(es []Expr) []Expr {
	c := make([]Expr, len(es))
	for i, e := range es {
		c[i] = CloneExpr(e)
	}
	return c
}

// EqualExpr compares two expression trees structurally.
func EqualExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.IsInverse() != b.IsInverse() {
		return false
	}
	switch x := a.(type) {
	case *Operand:
		y, ok := b.(*Operand)
		return ok && Equal(x.Value, y.Value)
	case *Sum:
		y, ok := b.(*Sum)
		return ok && equalExprs(x.Terms, y.Terms)
	case *Product:
		y, ok := b.(*Product)
		return ok && equalExprs(x.Factors, y.Factors)
	}
	return false
}

func equalExprs(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ValidateExpr checks the structural invariants of an expression tree:
// sums and products have at least one child, operands hold a value.
func ValidateExpr(e Expr) bool {
	switch n := e.(type) {
	case *Operand:
		return n.Value != nil
	case *Sum:
		return len(n.Terms) > 0 && allValid(n.Terms)
	case *Product:
		return len(n.Factors) > 0 && allValid(n.Factors)
	}
	return false
}

func allValid(es []Expr) bool {
	for _, e := range es {
		if !ValidateExpr(e) {
			return false
		}
	}
	return true
}

func exprPending(e Expr) bool {
	switch n := e.(type) {
	case *Operand:
		return IsPending(n.Value)
	case *Sum:
		return anyPending(n.Terms)
	case *Product:
		return anyPending(n.Factors)
	}
	return false
}

func anyPending(es []Expr) bool {
	for _, e := range es {
		if exprPending(e) {
			return true
		}
	}
	return false
}

// --- Serialization ---------------------------------------------------------

// ExprText returns the text of an expression tree, without a calc() wrapper.
func ExprText(e Expr, minify bool) string {
	var b strings.Builder
	writeExpr(&b, e, minify)
	return b.String()
}

func writeExpr(b *strings.Builder, e Expr, minify bool) {
	switch n := e.(type) {
	case *Operand:
		writeOperand(b, n, minify)
	case *Sum:
		writeSum(b, n, minify)
	case *Product:
		writeProduct(b, n, minify)
	}
}

// Sums nested in a sum lose their parentheses, unless they are subtracted.
func writeSum(b *strings.Builder, s *Sum, minify bool) {
	for i, t := range s.Terms {
		if i == 0 {
			if t.IsInverse() {
				writeNegated(b, t, minify)
				continue
			}
		} else if t.IsInverse() {
			b.WriteString(" - ")
		} else {
			b.WriteString(" + ")
		}
		if sub, ok := t.(*Sum); ok && sub.Inverse {
			writeParenthesized(b, sub, minify)
		} else {
			writeExpr(b, t, minify)
		}
	}
}

// writeNegated writes a subtracted first term of a sum. Operands fold the sign
// into their text, other nodes are multiplied by -1.
func writeNegated(b *strings.Builder, t Expr, minify bool) {
	if op, ok := t.(*Operand); ok {
		if n, ok := op.Value.(*Number); ok && !n.IsNegativeNumber() && !n.IsInfinite() {
			b.WriteByte('-')
			writeOperand(b, op, minify)
			return
		}
	}
	b.WriteString("-1*")
	if _, ok := t.(*Operand); ok {
		writeExpr(b, t, minify)
		return
	}
	writeParenthesized(b, t, minify)
}

// Sums nested in a product keep their parentheses, unless the sum is the only
// factor. Products nested in a product lose them, unless they are divisors.
func writeProduct(b *strings.Builder, p *Product, minify bool) {
	for i, f := range p.Factors {
		if i == 0 {
			if f.IsInverse() {
				b.WriteString("1/")
				if _, ok := f.(*Operand); ok {
					writeExpr(b, f, minify)
				} else {
					writeParenthesized(b, f, minify)
				}
				continue
			}
		} else if f.IsInverse() {
			b.WriteByte('/')
		} else {
			b.WriteByte('*')
		}
		switch sub := f.(type) {
		case *Sum:
			if len(p.Factors) == 1 {
				writeSum(b, sub, minify)
			} else {
				writeParenthesized(b, sub, minify)
			}
		case *Product:
			if i > 0 && sub.Inverse {
				writeParenthesized(b, sub, minify)
			} else {
				writeProduct(b, sub, minify)
			}
		default:
			writeExpr(b, f, minify)
		}
	}
}

func writeParenthesized(b *strings.Builder, e Expr, minify bool) {
	b.WriteByte('(')
	writeExpr(b, e, minify)
	b.WriteByte(')')
}

func writeOperand(b *strings.Builder, op *Operand, minify bool) {
	switch v := op.Value.(type) {
	case *Number:
		if v.IsInfinite() {
			if v.x < 0 {
				b.WriteString("-infinity")
			} else {
				b.WriteString("infinity")
			}
			if v.unit.IsDimensioned() {
				b.WriteString("*1" + v.unit.String())
			}
		} else if minify {
			b.WriteString(v.minified(false))
		} else {
			b.WriteString(v.CSSText())
		}
	case *ExpressionValue:
		writeParenthesized(b, v.Expr, minify)
	case nil:
	default:
		if minify {
			b.WriteString(v.MinifiedCSSText(""))
		} else {
			b.WriteString(v.CSSText())
		}
	}
}

// --- Expression values -----------------------------------------------------

// ExpressionValue is a calc() expression.
type ExpressionValue struct {
	Expr Expr
}

// NewExpression wraps an expression tree into a calc() value.
func NewExpression(e Expr) *ExpressionValue {
	return &ExpressionValue{Expr: e}
}

func (ev *ExpressionValue) CSSType() CSSType     { return Typed }
func (ev *ExpressionValue) Primitive() Primitive { return Expression }

func (ev *ExpressionValue) CSSText() string {
	return "calc(" + ExprText(ev.Expr, false) + ")"
}

func (ev *ExpressionValue) MinifiedCSSText(string) string {
	return "calc(" + ExprText(ev.Expr, true) + ")"
}

func (ev *ExpressionValue) Clone() Value {
	return &ExpressionValue{Expr: CloneExpr(ev.Expr)}
}

func (ev *ExpressionValue) Equals(other Value) bool {
	o, ok := other.(*ExpressionValue)
	return ok && EqualExpr(ev.Expr, o.Expr)
}

// IsPending is true if the expression contains an unresolved attr() or var().
func (ev *ExpressionValue) IsPending() bool {
	return exprPending(ev.Expr)
}

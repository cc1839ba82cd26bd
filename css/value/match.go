package value

// Match starts a switch over the variants of a value. Each case method
// returns the matcher if the value is of that variant, nil otherwise,
// and stores the value into its argument on a match:
//
//	var n *value.Number
//	switch m := value.Match(v); m {
//	case m.Keyword("inherit"):
//	    …
//	case m.Number(&n):
//	    …
//	}
func Match(v Value) *Matcher {
	return &Matcher{v: v}
}

// Matcher matches a value against variants.
type Matcher struct {
	v Value
}

// Keyword matches a CSS-wide keyword. An empty name matches every keyword.
func (m *Matcher) Keyword(name string) *Matcher {
	if k, ok := m.v.(*KeywordValue); ok && (name == "" || k.Name == name) {
		return m
	}
	return nil
}

// Ident matches an identifier.
func (m *Matcher) Ident(name *string) *Matcher {
	if id, ok := m.v.(*IdentValue); ok {
		if name != nil {
			*name = id.Name
		}
		return m
	}
	return nil
}

// Number matches a numeric value.
func (m *Matcher) Number(n **Number) *Matcher {
	if x, ok := m.v.(*Number); ok {
		if n != nil {
			*n = x
		}
		return m
	}
	return nil
}

// Expression matches a calc() expression.
func (m *Matcher) Expression(e **ExpressionValue) *Matcher {
	if x, ok := m.v.(*ExpressionValue); ok {
		if e != nil {
			*e = x
		}
		return m
	}
	return nil
}

// Function matches a function call.
func (m *Matcher) Function(f **FunctionValue) *Matcher {
	if x, ok := m.v.(*FunctionValue); ok {
		if f != nil {
			*f = x
		}
		return m
	}
	return nil
}

// List matches a list.
func (m *Matcher) List(l **ListValue) *Matcher {
	if x, ok := m.v.(*ListValue); ok {
		if l != nil {
			*l = x
		}
		return m
	}
	return nil
}

// Primitive matches typed values of primitive kind p.
func (m *Matcher) Primitive(p Primitive) *Matcher {
	if m.v != nil && m.v.CSSType() == Typed && m.v.Primitive() == p {
		return m
	}
	return nil
}

// Pending matches values depending on an unresolved var() or attr().
func (m *Matcher) Pending() *Matcher {
	if IsPending(m.v) {
		return m
	}
	return nil
}

// --- Expression matching ---------------------------------------------------

// ValuePatterns holds a result for each variant of a value.
type ValuePatterns[T any] struct {
	Keyword    T
	Pending    T
	Number     T
	Expression T
	Color      T
	List       T
	Default    T
}

// ValuePattern starts an expression over the variants of v.
func ValuePattern[T any](v Value) *MatchExpr[T] {
	return &MatchExpr[T]{v: v}
}

// MatchExpr selects one of several results depending on a value.
type MatchExpr[T any] struct {
	v Value
}

// OneOf selects the pattern matching the variant of the value.
// Pending values select Pending before any other pattern.
func (m *MatchExpr[T]) OneOf(patterns ValuePatterns[T]) T {
	switch {
	case m.v == nil:
		return patterns.Default
	case IsPending(m.v):
		return patterns.Pending
	case m.v.CSSType() == Keyword:
		return patterns.Keyword
	case m.v.CSSType() == List:
		return patterns.List
	}
	switch m.v.Primitive() {
	case Numeric:
		return patterns.Number
	case Expression:
		return patterns.Expression
	case Color:
		return patterns.Color
	}
	return patterns.Default
}

// With stores the value into n if it is numeric.
func (m *MatchExpr[T]) With(n **Number) *MatchExpr[T] {
	if x, ok := m.v.(*Number); ok {
		*n = x
	}
	return m
}

func (m *MatchExpr[T]) Const(x T) T {
	return x
}

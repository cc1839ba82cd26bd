package calc

import (
	"math"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
)

func (ctx *Context) evalFunction(fv *value.FunctionValue) (quantity, error) {
	if !fv.IsMath() {
		return quantity{}, csserr.TypeMismatch("%s() is not a math function", fv.Name)
	}
	args := make([]quantity, len(fv.Args))
	for i, a := range fv.Args {
		q, err := ctx.evalExpr(a)
		if err != nil {
			return q, err
		}
		args[i] = q
	}
	var q quantity
	var err error
	switch fv.Name {
	case "min", "max":
		q, err = ctx.extremum(fv.Name == "max", args)
	case "clamp":
		q, err = ctx.clamp(args)
	case "sin", "cos", "tan":
		q, err = trig(fv.Name, args[0])
	case "asin", "acos", "atan":
		q, err = arcTrig(fv.Name, args[0])
	case "atan2":
		q, err = ctx.atan2(args[0], args[1])
	case "pow":
		q, err = pow(args[0], args[1])
	case "sqrt":
		q, err = ctx.sqrt(args[0])
	case "hypot":
		q, err = ctx.hypot(args)
	case "sign":
		q, err = sign(args[0])
	case "abs":
		q = args[0]
		q.x = math.Abs(q.x)
	}
	if err == nil && math.IsNaN(q.x) {
		err = csserr.InvalidAccess("%s() is not a number", fv.Name)
	}
	return q, err
}

func (ctx *Context) extremum(max bool, args []quantity) (quantity, error) {
	if err := ctx.align(args); err != nil {
		return quantity{}, err
	}
	q := args[0]
	for _, a := range args[1:] {
		if max {
			q.x = math.Max(q.x, a.x)
		} else {
			q.x = math.Min(q.x, a.x)
		}
	}
	return q, nil
}

func (ctx *Context) clamp(args []quantity) (quantity, error) {
	if err := ctx.align(args); err != nil {
		return quantity{}, err
	}
	lo, q, hi := args[0], args[1], args[2]
	q.x = math.Max(lo.x, math.Min(q.x, hi.x))
	return q, nil
}

// radians returns the angle of q in radians. Plain numbers are radians.
func radians(q quantity) (float64, error) {
	if q.isNumber() {
		return q.x, nil
	}
	if q.dim != (units.Dimension{Category: units.Angle, Exp: 1}) {
		return 0, csserr.TypeMismatch("expected an angle, have %s^%d", q.dim.Category, q.dim.Exp)
	}
	return units.Convert(q.x, q.unit, units.RAD)
}

func trig(name string, q quantity) (quantity, error) {
	rad, err := radians(q)
	if err != nil {
		return q, err
	}
	switch name {
	case "sin":
		return number(math.Sin(rad)), nil
	case "cos":
		return number(math.Cos(rad)), nil
	}
	return number(math.Tan(rad)), nil
}

func degrees(rad float64) quantity {
	return quantity{
		x:      rad * 180 / math.Pi,
		dim:    units.DimensionOf(units.DEG),
		unit:   units.DEG,
		report: units.DEG,
	}
}

func arcTrig(name string, q quantity) (quantity, error) {
	if !q.isNumber() {
		return q, csserr.TypeMismatch("%s() expects a number, have %s^%d", name, q.dim.Category, q.dim.Exp)
	}
	switch name {
	case "asin":
		return degrees(math.Asin(q.x)), nil
	case "acos":
		return degrees(math.Acos(q.x)), nil
	}
	return degrees(math.Atan(q.x)), nil
}

func (ctx *Context) atan2(y, x quantity) (quantity, error) {
	args := []quantity{y, x}
	if err := ctx.align(args); err != nil {
		return quantity{}, err
	}
	return degrees(math.Atan2(args[0].x, args[1].x)), nil
}

func pow(base, exp quantity) (quantity, error) {
	if !base.isNumber() || !exp.isNumber() {
		return base, csserr.TypeMismatch("pow() expects numbers")
	}
	return number(math.Pow(base.x, exp.x)), nil
}

// sqrt halves the exponent of its argument. The magnitude of the root is
// taken in canonical units and reported in the display unit.
func (ctx *Context) sqrt(q quantity) (quantity, error) {
	dim, err := q.dim.Sqrt()
	if err != nil {
		return q, err
	}
	r := quantity{x: math.Sqrt(q.x), dim: dim, unit: q.unit, report: q.report}
	if dim.IsNumber() {
		r.unit, r.report = units.None, units.None
		return r, nil
	}
	if cat, _ := dim.Reported(); ctx.DisplayUnit.Category() == cat && ctx.DisplayUnit != units.None {
		r.report = ctx.DisplayUnit
	}
	if !q.unit.IsRelative() {
		r.unit = r.report
	}
	return r, nil
}

func (ctx *Context) hypot(args []quantity) (quantity, error) {
	if err := ctx.align(args); err != nil {
		return quantity{}, err
	}
	q := args[0]
	q.x = 0
	for _, a := range args {
		q.x = math.Hypot(q.x, a.x)
	}
	return q, nil
}

// sign keeps the sign of a zero argument.
func sign(q quantity) (quantity, error) {
	if q.report == units.Percent {
		return q, csserr.NotSupported("sign() of a percentage")
	}
	switch {
	case q.x > 0:
		return number(1), nil
	case q.x < 0:
		return number(-1), nil
	}
	return number(q.x), nil
}

/*
Package calc evaluates calc() expressions and math functions.

Evaluation is a recursive fold over the expression tree of package value.
Every intermediate result is a quantity: a magnitude together with a
dimension (a unit category raised to an exponent). Sums require all terms
to be of the same dimension; products compose dimensions; sqrt() halves
them. A final result must be dimensionless or of exponent 1.

Relative lengths (em, rem, vw, %, …) are resolved with the metrics of a
Context. Without metrics they may only be combined with lengths of the
same unit.

Division by zero yields a correctly signed infinity; results which are
not a number (0/0, ∞-∞) are rejected with INVALID_ACCESS_ERR.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package calc

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.calc'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.calc")
}

/*
Package value implements the CSS value model.

A Value is one of a closed set of variants, discriminated by CSSType:

    Keyword   inherit, initial, unset, revert, revert-layer
    List      space, comma or slash separated values
    Proxy     a value which depends on an unresolved var() substitution
    Typed     a primitive value, discriminated by Primitive:
              Numeric, Color, Expression, Function, String, Ident,
              UnicodeRange, URI, Attr

Numeric values (type Number) carry a magnitude and a unit from package units.
calc() expressions are held by type ExpressionValue as an immutable tree
of Sum, Product and Operand nodes; math functions (min(), sqrt(), …) are
held by type FunctionValue. Colors are implemented in package color and
plug into the value model by implementing interface Value.

Values are created from lexical units (see package lexical) by a Factory.
Every value serializes to full CSS text (CSSText) and to minified CSS text
(MinifiedCSSText), clones itself deeply and compares structurally. Clients
may switch over variants with Match or ValuePattern.

Status

Evaluation of expressions is the responsibility of package calc. This
package does not resolve var() or attr(); it only recognizes them as pending.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package value

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.value'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.value")
}

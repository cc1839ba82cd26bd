/*
Package lexical turns the text of a CSS property value into a tree of
lexical units.

Tokenizing is done by the CSS lexer of github.com/tdewolff/parse. The units
produced here are the input of value.Factory, which builds typed values,
expression trees and colors from them. A lexical unit tree is a flat sequence
of units; function units hold the sequence of their parameters, including
operator and comma units. Whitespace is not represented as a unit, but
recorded as a flag on the unit following it.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexical

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.lexical'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.lexical")
}

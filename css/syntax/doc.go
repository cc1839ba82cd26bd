/*
Package syntax matches CSS values against simple value grammars.

A grammar is a '|' separated list of alternatives. Each alternative is a
data type such as <length> or <color>, a keyword, or the universal '*'.
Data types and keywords may carry a multiplier: '+' for a space separated
list and '#' for a comma separated one.

    auto | <length-percentage>
    <color>#
    <integer>+

Matching is three-valued. A value which depends on an unresolved var() or
attr() matches Pending, as it cannot be decided before substitution.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.syntax")
}

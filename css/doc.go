/*
Package css bridges CSS values to layout.

Sub-packages implement the CSS value core: units, values, calc()
evaluation, colors and syntax matching. This package maps resolved values
to DimenT, an option type for dimensions as a layout engine needs them:
fixed typesetting dimensions, percentages, font or viewport relative sizes,
and the keywords auto, inherit and initial.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.css'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.css")
}

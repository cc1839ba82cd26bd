/*
Package sheet reads style sheets and turns their declarations into values.

Style sheets and declaration blocks are parsed with
github.com/aymerick/douceur. Each declaration's text is handed to a
value factory. A declaration whose value cannot be created is treated as
absent: it is reported to an ErrorHandler and left out of its rule, and
all such errors of a sheet are returned combined (go.uber.org/multierr).

Custom properties (--name) are kept as unparsed proxy values, as their
grammar is only known where they are substituted.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package sheet

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cssval.sheet'.
func tracer() tracing.Trace {
	return tracing.Select("cssval.sheet")
}

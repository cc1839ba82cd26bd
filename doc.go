/*
Package cssval is the entry point to a CSS value core.

It wires the color engine into the value factory and offers shortcuts for
the common operations: parsing property values, evaluating math
expressions, serializing in full or minified form, and matching values
against simple syntax grammars.

The building blocks live in sub-packages of css:

    css/units     units, categories and conversions
    css/lexical   tokenizing of property values
    css/value     the value types and the value factory
    css/calc      evaluation of calc() and the math functions
    css/color     color models, conversions and color difference
    css/syntax    matching of values against component grammars
    css/sheet     style sheets and declaration blocks

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package cssval

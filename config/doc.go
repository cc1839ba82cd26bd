/*
Package config holds the configuration of cssval applications.

Defaults are embedded as YAML. A user file is superimposed on them and the
result is validated. A Config serves as a schuko.Configuration, so the
trace2go root tracer may be configured from it:

    conf, err := config.Load(path)
    ...
    trace2go.ConfigureRoot(conf, "trace")
    tracing.SetTraceSelector(trace2go.Selector())

Trace levels are found under keys "trace.<tracer key>", the tracing adapter
under "tracing.adapter".

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

/*
Package zapadapter implements tracing with go.uber.org/zap.

Register it before configuring the root tracer:

    tracing.RegisterTraceAdapter("zap", zapadapter.GetAdapter(), false)

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package zapadapter

import (
	"io"
	"os"

	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Tracer implements interface tracing.Trace on top of a zap logger.
type Tracer struct {
	level  zap.AtomicLevel
	out    zapcore.WriteSyncer
	fields []interface{}
	log    *zap.SugaredLogger
}

// New creates a Tracer writing to stderr at level Error.
func New() tracing.Trace {
	t := &Tracer{
		level: zap.NewAtomicLevelAt(zapcore.ErrorLevel),
		out:   zapcore.Lock(os.Stderr),
	}
	t.build()
	return t
}

// GetAdapter creates an adapter (i.e., factory for tracing.Trace) to
// be used to initialize (global) tracers.
func GetAdapter() tracing.Adapter {
	return New
}

func (t *Tracer) build() {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), t.out, t.level)
	t.log = zap.New(core).Sugar().With(t.fields...)
}

func zapLevel(l tracing.TraceLevel) zapcore.Level {
	switch l {
	case tracing.LevelDebug:
		return zapcore.DebugLevel
	case tracing.LevelInfo:
		return zapcore.InfoLevel
	}
	return zapcore.ErrorLevel
}

// P is part of interface Trace. The returned tracer shares level and output.
func (t *Tracer) P(key string, val interface{}) tracing.Trace {
	fields := append(append([]interface{}{}, t.fields...), key, val)
	return &Tracer{
		level:  t.level,
		out:    t.out,
		fields: fields,
		log:    t.log.With(key, val),
	}
}

// Debugf is part of interface Trace
func (t *Tracer) Debugf(s string, args ...interface{}) {
	t.log.Debugf(s, args...)
}

// Infof is part of interface Trace
func (t *Tracer) Infof(s string, args ...interface{}) {
	t.log.Infof(s, args...)
}

// Errorf is part of interface Trace
func (t *Tracer) Errorf(s string, args ...interface{}) {
	t.log.Errorf(s, args...)
}

// SetTraceLevel is part of interface Trace
func (t *Tracer) SetTraceLevel(l tracing.TraceLevel) {
	t.level.SetLevel(zapLevel(l))
}

// GetTraceLevel is part of interface Trace
func (t *Tracer) GetTraceLevel() tracing.TraceLevel {
	switch t.level.Level() {
	case zapcore.DebugLevel:
		return tracing.LevelDebug
	case zapcore.InfoLevel:
		return tracing.LevelInfo
	}
	return tracing.LevelError
}

// SetOutput is part of interface Trace
func (t *Tracer) SetOutput(w io.Writer) {
	t.out = zapcore.Lock(zapcore.AddSync(w))
	t.build()
}

// Sync flushes buffered log entries.
func (t *Tracer) Sync() error {
	return t.log.Sync()
}

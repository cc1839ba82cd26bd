package zapadapter_test

import (
	"bytes"
	"testing"

	"github.com/npillmayer/cssval/internal/zapadapter"
	"github.com/npillmayer/schuko/tracing"
	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	tr := zapadapter.New()
	tr.SetOutput(&buf)
	assert.Equal(t, tracing.LevelError, tr.GetTraceLevel())
	tr.Infof("hidden %d", 1)
	assert.Empty(t, buf.String())
	tr.Errorf("shown %d", 2)
	assert.Contains(t, buf.String(), "shown 2")
	assert.Contains(t, buf.String(), "ERROR")
	//
	tr.SetTraceLevel(tracing.LevelDebug)
	assert.Equal(t, tracing.LevelDebug, tr.GetTraceLevel())
	tr.Debugf("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestFields(t *testing.T) {
	var buf bytes.Buffer
	tr := zapadapter.New()
	tr.SetOutput(&buf)
	tr.SetTraceLevel(tracing.LevelInfo)
	tr.P("unit", "px").Infof("converting")
	assert.Contains(t, buf.String(), "converting")
	assert.Contains(t, buf.String(), `"unit": "px"`)
}

func TestAdapterRegistration(t *testing.T) {
	tracing.RegisterTraceAdapter("zap", zapadapter.GetAdapter(), false)
	tr := zapadapter.GetAdapter()()
	_, ok := tr.(*zapadapter.Tracer)
	assert.True(t, ok)
}

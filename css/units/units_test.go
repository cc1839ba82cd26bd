package units_test

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/stretchr/testify/assert"
)

func TestConvertRatios(t *testing.T) {
	tests := []struct {
		x        float64
		from, to units.Unit
		want     float64
	}{
		{1, units.IN, units.CM, 2.54},
		{1, units.IN, units.PX, 96},
		{1, units.IN, units.PT, 72},
		{1, units.IN, units.PC, 6},
		{1, units.MM, units.Q, 4},
		{1, units.TURN, units.DEG, 360},
		{1, units.TURN, units.GRAD, 400},
		{1, units.TURN, units.RAD, 2 * math.Pi},
		{1, units.KHZ, units.HZ, 1000},
		{1, units.S, units.MS, 1000},
		{1, units.DPPX, units.DPI, 96},
		{1, units.DPI, units.DPCM, 1 / 2.54},
	}
	for _, tt := range tests {
		got, err := units.Convert(tt.x, tt.from, tt.to)
		assert.NoError(t, err)
		assert.InDelta(t, tt.want, got, 1e-9, "%v%s -> %s", tt.x, tt.from, tt.to)
	}
}

func TestConvertRoundTrip(t *testing.T) {
	families := [][]units.Unit{
		{units.PX, units.PT, units.PC, units.IN, units.CM, units.MM, units.Q},
		{units.DEG, units.GRAD, units.RAD, units.TURN},
		{units.S, units.MS},
		{units.HZ, units.KHZ},
		{units.DPI, units.DPCM, units.DPPX},
	}
	for _, fam := range families {
		for _, u1 := range fam {
			for _, u2 := range fam {
				y, err := units.Convert(12.345, u1, u2)
				assert.NoError(t, err)
				x, err := units.Convert(y, u2, u1)
				assert.NoError(t, err)
				assert.InDelta(t, 12.345, x, 1e-9, "%s <-> %s", u1, u2)
			}
		}
	}
}

func TestConvertMismatch(t *testing.T) {
	_, err := units.Convert(1, units.PX, units.DEG)
	if !errors.Is(err, csserr.ErrTypeMismatch) {
		t.Errorf("expected TYPE_MISMATCH_ERR for px -> deg, got %v", err)
	}
	_, err = units.Convert(1, units.EM, units.PX)
	if !errors.Is(err, csserr.ErrTypeMismatch) {
		t.Errorf("expected TYPE_MISMATCH_ERR for em -> px without metrics, got %v", err)
	}
}

func TestMetrics(t *testing.T) {
	m := &units.Metrics{FontSize: 16, RootFontSize: 10, ViewportWidth: 1000, ViewportHeight: 500}
	px, err := m.Convert(2, units.EM, units.PX)
	assert.NoError(t, err)
	assert.Equal(t, 32.0, px)
	rem, err := m.Convert(2, units.EM, units.REM)
	assert.NoError(t, err)
	assert.Equal(t, 3.2, rem)
	vmin, err := m.Convert(10, units.VMIN, units.PX)
	assert.NoError(t, err)
	assert.Equal(t, 50.0, vmin)
	_, err = m.Convert(1, units.Percent, units.PX)
	assert.Error(t, err, "percent base is unknown")
}

func TestParseUnit(t *testing.T) {
	for _, s := range []string{"px", "PX", "Q", "q", "kHz", "khz", "dppx", "x", "%"} {
		_, ok := units.Parse(s)
		assert.True(t, ok, s)
	}
	_, ok := units.Parse("furlong")
	assert.False(t, ok)
}

func TestDimensions(t *testing.T) {
	length := units.DimensionOf(units.PT)
	sq, err := length.Mul(length)
	assert.NoError(t, err)
	assert.Equal(t, units.Dimension{Category: units.Length, Exp: 2}, sq)
	root, err := sq.Sqrt()
	assert.NoError(t, err)
	assert.Equal(t, length, root)
	_, err = length.Sqrt()
	assert.Error(t, err)
	//
	_, err = length.Mul(units.DimensionOf(units.DEG))
	assert.True(t, errors.Is(err, csserr.ErrTypeMismatch))
	//
	freq := units.DimensionOf(units.S).Inverse()
	c, ok := freq.Reported()
	assert.True(t, ok)
	assert.Equal(t, units.Frequency, c)
	n, err := units.DimensionOf(units.HZ).Mul(units.DimensionOf(units.MS))
	assert.NoError(t, err)
	assert.True(t, n.IsNumber())
}

package css_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/cssval/css"
	"github.com/npillmayer/cssval/css/calc"
	"github.com/npillmayer/cssval/css/csserr"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/cssval/css/value"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tyse/core/dimen"
	"github.com/npillmayer/tyse/core/percent"
)

func TestDimenBasic(t *testing.T) {
	ten := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	switch m := ten.Match(); m {
	case m.Just(&du):
		t.Logf("du = %v", du)
	default:
		t.Errorf("expected Just(10pt) to be a fixed value, isn't: %#v", ten)
	}

	auto := css.Auto()
	switch m := auto.Match(); m {
	case m.IsKind(css.Auto()):
		t.Logf("dimen is auto")
	default:
		t.Errorf("expected dimen auto to match auto, isn't: %#v", auto)
	}

	pcnt := css.Percentage(percent.FromInt(80))
	var p percent.Percent
	switch m := pcnt.Match(); m {
	case m.Percentage(&p):
		t.Logf("percent = %v", p)
	default:
		t.Errorf("expected Percentage(80) to be a percentage value, isn't: %#v", pcnt)
	}
}

func TestDimenPattern(t *testing.T) {
	ten := css.JustDimen(dimen.PT * 10)
	var du dimen.DU
	m := css.DimenPattern[int](ten)
	zehn := m.OneOf(css.DimenPatterns[int]{
		Just:    m.With(&du).Const(10),
		Auto:    0,
		Default: -1,
	})
	if zehn != 10 {
		t.Errorf("expected zehn == 10, isn't: %#v", zehn)
	}

	e := css.DimenPattern[dimen.DU](ten)
	distance := e.OneOf(css.DimenPatterns[dimen.DU]{
		Just:    e.With(&du).Const(2 * du),
		Auto:    0,
		Default: -1,
	})
	if distance != 2*10*dimen.PT {
		t.Errorf("expected distance to be %v, isn't: %#v", 20*dimen.PT, distance)
	}
}

func dimenOf(t *testing.T, text string, ctx *calc.Context) (css.DimenT, error) {
	t.Helper()
	v, err := value.NewFactory(nil).Parse(text)
	if err != nil {
		t.Fatalf("cannot parse %q: %v", text, err)
	}
	return css.DimenFromValue(v, ctx)
}

func TestDimenFromValue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cssval.css")
	defer teardown()
	//
	var du dimen.DU
	for text, want := range map[string]dimen.DU{
		"10pt":               10 * dimen.PT,
		"0":                  0,
		"1in":                72 * dimen.PT,
		"calc(4pt + 4pt)":    8 * dimen.PT,
		"max(2pt, 1pt * 3)":  3 * dimen.PT,
		"calc(16px * 3 / 4)": 9 * dimen.PT,
	} {
		d, err := dimenOf(t, text, nil)
		if err != nil {
			t.Errorf("%s: unexpected error %v", text, err)
			continue
		}
		switch m := d.Match(); m {
		case m.Just(&du):
			if du != want {
				t.Errorf("%s: expected %v, have %v", text, want, du)
			}
		default:
			t.Errorf("%s: expected a fixed dimension, have %s", text, d)
		}
	}
	d, err := dimenOf(t, "auto", nil)
	if err != nil || d.Match().IsKind(css.Auto()) == nil {
		t.Errorf("expected auto, have %s (%v)", d, err)
	}
	d, _ = dimenOf(t, "inherit", nil)
	if css.DimenPattern[string](d).OneOf(css.DimenPatterns[string]{Inherit: "inherit", Default: "?"}) != "inherit" {
		t.Errorf("expected inherit, have %s", d)
	}
	d, _ = dimenOf(t, "min-content", nil)
	if d.Match().IsKind(css.Content(css.DimenContentMin)) == nil {
		t.Errorf("expected min-content, have %s", d)
	}
	d, _ = dimenOf(t, "50%", nil)
	if d.Match().Percentage(nil) == nil {
		t.Errorf("expected a percentage, have %s", d)
	}
}

func TestRelativeDimen(t *testing.T) {
	d, err := dimenOf(t, "2em", nil)
	if err != nil {
		t.Fatal(err)
	}
	var x float64
	var u units.Unit
	if d.Match().Relative(&x, &u) == nil || x != 2 || u != units.EM {
		t.Errorf("expected 2em to stay relative, have %s", d)
	}
	m := &units.Metrics{FontSize: 12}
	r, err := d.Resolve(m)
	if err != nil {
		t.Fatal(err)
	}
	var du dimen.DU
	if r.Match().Just(&du) == nil || du != 18*dimen.PT {
		t.Errorf("expected 2em to resolve to 18pt, have %s", r)
	}
	//
	d, err = dimenOf(t, "2em", &calc.Context{Metrics: *m})
	if err != nil || d.Match().Just(&du) == nil || du != 18*dimen.PT {
		t.Errorf("expected 2em to resolve to 18pt with metrics, have %s (%v)", d, err)
	}
}

func TestDimenErrors(t *testing.T) {
	for text, target := range map[string]error{
		"12":            csserr.ErrTypeMismatch,
		"90deg":         csserr.ErrTypeMismatch,
		"bold":          csserr.ErrTypeMismatch,
		"revert":        csserr.ErrNotSupported,
		"var(--width)":  csserr.ErrInvalidState,
		"calc(0px/0)":   csserr.ErrInvalidAccess,
	} {
		_, err := dimenOf(t, text, nil)
		if !errors.Is(err, target) {
			t.Errorf("%s: expected %v, have %v", text, target, err)
		}
	}
}

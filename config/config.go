package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/cssval/css/calc"
	"github.com/npillmayer/cssval/css/color"
	"github.com/npillmayer/cssval/css/units"
	"github.com/npillmayer/schuko"
	"github.com/rupor-github/gencfg"
	yaml "gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaultConfig []byte

type (
	EvaluationConfig struct {
		FontSize       float64 `yaml:"font_size" validate:"gt=0"`
		RootFontSize   float64 `yaml:"root_font_size" validate:"gt=0"`
		ExRatio        float64 `yaml:"ex_ratio" validate:"gt=0,lte=1"`
		ChRatio        float64 `yaml:"ch_ratio" validate:"gt=0,lte=2"`
		ViewportWidth  float64 `yaml:"viewport_width" validate:"gte=0"`
		ViewportHeight float64 `yaml:"viewport_height" validate:"gte=0"`
		PercentBase    float64 `yaml:"percent_base" validate:"gte=0"`
		DisplayUnit    string  `yaml:"display_unit"`
	}

	ColorConfig struct {
		Gamut     string `yaml:"gamut" validate:"oneof=clamp strict"`
		HexOutput bool   `yaml:"hex_output"`
	}

	SerializationConfig struct {
		Minify bool `yaml:"minify"`
	}

	TracingConfig struct {
		Adapter     string            `yaml:"adapter" validate:"oneof=go zap nop"`
		Destination string            `yaml:"destination,omitempty"`
		Levels      map[string]string `yaml:"levels" validate:"dive,oneof=Error Info Debug error info debug"`
	}

	Config struct {
		Version       int                 `yaml:"version" validate:"eq=1"`
		Evaluation    EvaluationConfig    `yaml:"evaluation"`
		Color         ColorConfig         `yaml:"color"`
		Serialization SerializationConfig `yaml:"serialization"`
		Tracing       TracingConfig       `yaml:"tracing"`
	}
)

var _ schuko.Configuration = (*Config)(nil)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we know of are allowed
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
		if _, ok := units.Parse(cfg.Evaluation.DisplayUnit); !ok {
			return nil, fmt.Errorf("unknown display unit %q", cfg.Evaluation.DisplayUnit)
		}
	}
	return cfg, nil
}

// Default returns the default configuration.
func Default() (*Config, error) {
	data, err := gencfg.Process(defaultConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to process default configuration: %w", err)
	}
	return unmarshalConfig(data, &Config{}, true)
}

// Load reads the configuration from the file at path and superimposes its
// values on top of the defaults. An empty path yields the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil || path == "" {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data, cfg)
}

// Parse superimposes YAML data on cfg and validates the result.
func Parse(data []byte, cfg *Config) (*Config, error) {
	cfg, err := unmarshalConfig(data, cfg, true)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Dump serializes a configuration to YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// --- Evaluation ------------------------------------------------------------

// Context creates an evaluation context with the configured metrics.
func (c *Config) Context() *calc.Context {
	e := c.Evaluation
	ctx := &calc.Context{
		Metrics: units.Metrics{
			FontSize:       e.FontSize,
			RootFontSize:   e.RootFontSize,
			ExHeight:       e.FontSize * e.ExRatio,
			ChWidth:        e.FontSize * e.ChRatio,
			ViewportWidth:  e.ViewportWidth,
			ViewportHeight: e.ViewportHeight,
			PercentBase:    e.PercentBase,
		},
	}
	ctx.DisplayUnit, _ = units.Parse(e.DisplayUnit)
	return ctx
}

// GamutMode returns the configured gamut mode for color conversions.
func (c *Config) GamutMode() color.GamutMode {
	if c.Color.Gamut == "strict" {
		return color.Strict
	}
	return color.Clamped
}

// --- schuko.Configuration --------------------------------------------------

// InitDefaults resets c to the defaults.
func (c *Config) InitDefaults() {
	d, err := Default()
	if err != nil {
		panic(err) // embedded defaults are broken
	}
	*c = *d
}

func (c *Config) lookup(key string) (string, bool) {
	if lvl, ok := strings.CutPrefix(key, "trace."); ok {
		l, found := c.Tracing.Levels[lvl]
		return l, found
	}
	f := func(x float64) string { return strconv.FormatFloat(x, 'g', -1, 64) }
	switch key {
	case "version":
		return strconv.Itoa(c.Version), true
	case "evaluation.font_size":
		return f(c.Evaluation.FontSize), true
	case "evaluation.root_font_size":
		return f(c.Evaluation.RootFontSize), true
	case "evaluation.ex_ratio":
		return f(c.Evaluation.ExRatio), true
	case "evaluation.ch_ratio":
		return f(c.Evaluation.ChRatio), true
	case "evaluation.viewport_width":
		return f(c.Evaluation.ViewportWidth), true
	case "evaluation.viewport_height":
		return f(c.Evaluation.ViewportHeight), true
	case "evaluation.percent_base":
		return f(c.Evaluation.PercentBase), true
	case "evaluation.display_unit":
		return c.Evaluation.DisplayUnit, c.Evaluation.DisplayUnit != ""
	case "color.gamut":
		return c.Color.Gamut, true
	case "color.hex_output":
		return strconv.FormatBool(c.Color.HexOutput), true
	case "serialization.minify":
		return strconv.FormatBool(c.Serialization.Minify), true
	case "tracing", "tracing.adapter":
		return c.Tracing.Adapter, true
	case "tracing.destination":
		return c.Tracing.Destination, c.Tracing.Destination != ""
	}
	return "", false
}

// IsSet is part of interface schuko.Configuration.
func (c *Config) IsSet(key string) bool {
	_, ok := c.lookup(key)
	return ok
}

// GetString is part of interface schuko.Configuration.
func (c *Config) GetString(key string) string {
	s, _ := c.lookup(key)
	return s
}

// GetInt is part of interface schuko.Configuration. Fractions are truncated.
func (c *Config) GetInt(key string) int {
	s, ok := c.lookup(key)
	if !ok {
		return 0
	}
	x, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int(x)
}

// GetBool is part of interface schuko.Configuration.
func (c *Config) GetBool(key string) bool {
	s, _ := c.lookup(key)
	b, _ := strconv.ParseBool(s)
	return b
}

// IsInteractive is part of interface schuko.Configuration.
func (c *Config) IsInteractive() bool {
	return false
}

// SetTraceLevel sets the trace level for a tracer key, e.g. for all keys
// from a --debug flag.
func (c *Config) SetTraceLevel(key, level string) {
	if c.Tracing.Levels == nil {
		c.Tracing.Levels = make(map[string]string)
	}
	c.Tracing.Levels[key] = level
}

// Package config loads and validates YAML composition configs for the
// astroviz command line tool.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/astroviz/astroviz"
)

// Modes accepted by Config.Mode.
const (
	ModeRGB    = "rgb"
	ModeLupton = "lupton"
)

// ErrMissingChannel is returned when a channel has no input file.
var ErrMissingChannel = errors.New("config: channel file missing")

// nan marks unset manual bounds; ManualInterval substitutes data extremes.
var nan = math.NaN()

// Config describes one composition run: three input channels, how each is
// scaled, and where the result goes.
type Config struct {
	// Mode selects the composition scheme: "rgb" (independent
	// per-channel scaling, the default) or "lupton".
	Mode string `yaml:"mode"`

	// Output is the output image path. The extension selects the
	// format (.png, .jpg, .tiff). May be overridden on the command line.
	Output string `yaml:"output"`

	// Workers bounds composition goroutines; 0 means GOMAXPROCS.
	Workers int `yaml:"workers"`

	Channels Channels `yaml:"channels"`

	// Lupton holds the parameters used when Mode is "lupton".
	Lupton Lupton `yaml:"lupton"`
}

// Channels holds the three input channels.
type Channels struct {
	Red   Channel `yaml:"red"`
	Green Channel `yaml:"green"`
	Blue  Channel `yaml:"blue"`
}

// Channel describes one input plane and its scaling (used in rgb mode;
// lupton mode reads only the file).
type Channel struct {
	File     string         `yaml:"file"`
	Interval IntervalConfig `yaml:"interval"`
	Stretch  StretchConfig  `yaml:"stretch"`
}

// IntervalConfig selects an interval strategy by name.
type IntervalConfig struct {
	// Type is one of: "", "minmax", "manual", "percentile", "zscale".
	// Empty means minmax.
	Type string `yaml:"type"`

	// Vmin/Vmax apply to manual intervals. A nil field falls back to
	// the data extreme.
	Vmin *float64 `yaml:"vmin"`
	Vmax *float64 `yaml:"vmax"`

	// Percentile applies to percentile intervals (central fraction to
	// keep, in percent; 0 means 100).
	Percentile float64 `yaml:"percentile"`

	// Contrast and NSamples apply to zscale intervals; 0 keeps the
	// defaults.
	Contrast float64 `yaml:"contrast"`
	NSamples int     `yaml:"nsamples"`
}

// StretchConfig selects a stretch by name.
type StretchConfig struct {
	// Type is one of: "", "linear", "sqrt", "squared", "power",
	// "powerdist", "log", "asinh", "sinh", "contrastbias". Empty means
	// linear.
	Type string `yaml:"type"`

	// A is the softening/exponent parameter; 0 keeps each stretch's
	// default.
	A float64 `yaml:"a"`

	// Contrast and Bias apply to the contrastbias stretch.
	Contrast float64 `yaml:"contrast"`
	Bias     float64 `yaml:"bias"`
}

// Lupton holds the lupton-mode parameters.
type Lupton struct {
	// Minimum is the per-channel black point: one value for all
	// channels or exactly three in red, green, blue order.
	Minimum []float64 `yaml:"minimum"`

	// Stretch is the linear span in data units; 0 keeps the default.
	Stretch float64 `yaml:"stretch"`

	// Q is the asinh softening; 0 keeps the default.
	Q float64 `yaml:"q"`
}

// Load reads, parses, and validates a config file. Unknown YAML keys are
// rejected so typos fail loudly instead of silently using defaults. File
// paths in the config are resolved relative to the config file's directory.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.resolvePaths(filepath.Dir(path))
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config from a reader without path resolution or
// validation.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	if cfg.Mode == "" {
		cfg.Mode = ModeRGB
	}
	return &cfg, nil
}

func (c *Config) resolvePaths(dir string) {
	for _, ch := range []*Channel{&c.Channels.Red, &c.Channels.Green, &c.Channels.Blue} {
		if ch.File != "" && !filepath.IsAbs(ch.File) {
			ch.File = filepath.Join(dir, ch.File)
		}
	}
	if c.Output != "" && !filepath.IsAbs(c.Output) {
		c.Output = filepath.Join(dir, c.Output)
	}
}

// Validate checks the config for problems a run would hit later.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Mode) {
	case ModeRGB, ModeLupton:
	default:
		return fmt.Errorf("config: unknown mode %q (want %q or %q)", c.Mode, ModeRGB, ModeLupton)
	}
	for _, ch := range []struct {
		name string
		ch   Channel
	}{
		{"red", c.Channels.Red},
		{"green", c.Channels.Green},
		{"blue", c.Channels.Blue},
	} {
		if ch.ch.File == "" {
			return fmt.Errorf("%w: %s", ErrMissingChannel, ch.name)
		}
		if _, err := ch.ch.Interval.Build(); err != nil {
			return fmt.Errorf("config: channel %s: %w", ch.name, err)
		}
		if _, err := ch.ch.Stretch.Build(); err != nil {
			return fmt.Errorf("config: channel %s: %w", ch.name, err)
		}
	}
	if n := len(c.Lupton.Minimum); n != 0 && n != 1 && n != 3 {
		return fmt.Errorf("config: lupton minimum wants 1 or 3 values, got %d", n)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// Files returns the three channel input paths in red, green, blue order.
// The output path is deliberately excluded so watch mode does not trigger
// on its own writes.
func (c *Config) Files() []string {
	return []string{c.Channels.Red.File, c.Channels.Green.File, c.Channels.Blue.File}
}

// Build converts the interval config into an astroviz.Interval.
func (ic IntervalConfig) Build() (astroviz.Interval, error) {
	switch strings.ToLower(ic.Type) {
	case "", "minmax":
		return astroviz.MinMaxInterval{}, nil
	case "manual":
		iv := astroviz.ManualInterval{Vmin: nan, Vmax: nan}
		if ic.Vmin != nil {
			iv.Vmin = *ic.Vmin
		}
		if ic.Vmax != nil {
			iv.Vmax = *ic.Vmax
		}
		return iv, nil
	case "percentile":
		return astroviz.PercentileInterval{Percentile: ic.Percentile}, nil
	case "zscale":
		iv := astroviz.NewZScaleInterval()
		if ic.Contrast > 0 {
			iv.Contrast = ic.Contrast
		}
		if ic.NSamples > 0 {
			iv.NSamples = ic.NSamples
		}
		return iv, nil
	default:
		return nil, fmt.Errorf("config: unknown interval %q", ic.Type)
	}
}

// Build converts the stretch config into an astroviz.Stretch.
func (sc StretchConfig) Build() (astroviz.Stretch, error) {
	if strings.ToLower(sc.Type) == "contrastbias" {
		return astroviz.ContrastBiasStretch{Contrast: sc.Contrast, Bias: sc.Bias}, nil
	}
	return astroviz.ParseStretch(sc.Type, sc.A)
}

// Normalizer builds the channel's complete normalizer (rgb mode).
func (ch Channel) Normalizer() (astroviz.Normalizer, error) {
	iv, err := ch.Interval.Build()
	if err != nil {
		return astroviz.Normalizer{}, err
	}
	st, err := ch.Stretch.Build()
	if err != nil {
		return astroviz.Normalizer{}, err
	}
	return astroviz.Normalizer{Interval: iv, Stretch: st}, nil
}

// Minimums expands the lupton minimum list to three values.
func (l Lupton) Minimums() [3]float64 {
	switch len(l.Minimum) {
	case 1:
		return [3]float64{l.Minimum[0], l.Minimum[0], l.Minimum[0]}
	case 3:
		return [3]float64{l.Minimum[0], l.Minimum[1], l.Minimum[2]}
	default:
		return [3]float64{}
	}
}

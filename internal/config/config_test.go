package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroviz/astroviz"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "composite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
mode: rgb
output: out.png
workers: 4
channels:
  red:
    file: r.tiff
    interval: {type: zscale, contrast: 0.3}
    stretch: {type: asinh, a: 0.1}
  green:
    file: g.tiff
    interval: {type: percentile, percentile: 99}
    stretch: {type: log}
  blue:
    file: b.tiff
`

func TestLoad_Valid(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, validYAML)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeRGB, cfg.Mode)
	assert.Equal(t, 4, cfg.Workers)
	// Relative paths resolve against the config directory.
	assert.Equal(t, filepath.Join(dir, "r.tiff"), cfg.Channels.Red.File)
	assert.Equal(t, filepath.Join(dir, "out.png"), cfg.Output)
	assert.Equal(t, "zscale", cfg.Channels.Red.Interval.Type)
	assert.Equal(t, 0.3, cfg.Channels.Red.Interval.Contrast)
	assert.Equal(t, "asinh", cfg.Channels.Red.Stretch.Type)
}

func TestLoad_DefaultMode(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
channels:
  red: {file: r.png}
  green: {file: g.png}
  blue: {file: b.png}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeRGB, cfg.Mode)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
mode: rgb
chanels:
  red: {file: r.png}
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chanels")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := &Config{Mode: ModeRGB}
		cfg.Channels.Red.File = "r.png"
		cfg.Channels.Green.File = "g.png"
		cfg.Channels.Blue.File = "b.png"
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{
			name:    "unknown mode",
			mutate:  func(c *Config) { c.Mode = "cmyk" },
			wantErr: "unknown mode",
		},
		{
			name:    "missing channel file",
			mutate:  func(c *Config) { c.Channels.Green.File = "" },
			wantErr: "green",
		},
		{
			name:    "bad interval type",
			mutate:  func(c *Config) { c.Channels.Red.Interval.Type = "median" },
			wantErr: "unknown interval",
		},
		{
			name:    "bad stretch type",
			mutate:  func(c *Config) { c.Channels.Blue.Stretch.Type = "spline" },
			wantErr: "unknown stretch",
		},
		{
			name:    "bad lupton minimum length",
			mutate:  func(c *Config) { c.Lupton.Minimum = []float64{1, 2} },
			wantErr: "1 or 3 values",
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Workers = -1 },
			wantErr: "workers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIntervalConfig_Build(t *testing.T) {
	vmin, vmax := 1.0, 9.0
	tests := []struct {
		name string
		ic   IntervalConfig
		want astroviz.Interval
	}{
		{name: "default minmax", ic: IntervalConfig{}, want: astroviz.MinMaxInterval{}},
		{name: "minmax", ic: IntervalConfig{Type: "minmax"}, want: astroviz.MinMaxInterval{}},
		{
			name: "manual",
			ic:   IntervalConfig{Type: "manual", Vmin: &vmin, Vmax: &vmax},
			want: astroviz.ManualInterval{Vmin: 1, Vmax: 9},
		},
		{
			name: "percentile",
			ic:   IntervalConfig{Type: "percentile", Percentile: 95},
			want: astroviz.PercentileInterval{Percentile: 95},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.ic.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntervalConfig_BuildManualPartial(t *testing.T) {
	vmax := 5.0
	got, err := IntervalConfig{Type: "manual", Vmax: &vmax}.Build()
	require.NoError(t, err)
	iv, ok := got.(astroviz.ManualInterval)
	require.True(t, ok)
	assert.True(t, math.IsNaN(iv.Vmin), "unset vmin should stay NaN")
	assert.Equal(t, 5.0, iv.Vmax)
}

func TestIntervalConfig_BuildZScale(t *testing.T) {
	got, err := IntervalConfig{Type: "zscale", Contrast: 0.4, NSamples: 600}.Build()
	require.NoError(t, err)
	iv, ok := got.(astroviz.ZScaleInterval)
	require.True(t, ok)
	assert.Equal(t, 0.4, iv.Contrast)
	assert.Equal(t, 600, iv.NSamples)
	// Unset knobs keep the defaults.
	assert.Equal(t, 2.5, iv.KRej)
}

func TestStretchConfig_Build(t *testing.T) {
	got, err := StretchConfig{Type: "contrastbias", Contrast: 2, Bias: 0.4}.Build()
	require.NoError(t, err)
	assert.Equal(t, astroviz.ContrastBiasStretch{Contrast: 2, Bias: 0.4}, got)

	got, err = StretchConfig{Type: "asinh", A: 0.2}.Build()
	require.NoError(t, err)
	assert.Equal(t, astroviz.AsinhStretch{A: 0.2}, got)

	_, err = StretchConfig{Type: "nope"}.Build()
	require.Error(t, err)
}

func TestChannel_Normalizer(t *testing.T) {
	ch := Channel{
		Interval: IntervalConfig{Type: "percentile", Percentile: 99},
		Stretch:  StretchConfig{Type: "sqrt"},
	}
	n, err := ch.Normalizer()
	require.NoError(t, err)
	assert.Equal(t, astroviz.PercentileInterval{Percentile: 99}, n.Interval)
	assert.Equal(t, astroviz.SqrtStretch{}, n.Stretch)
}

func TestLupton_Minimums(t *testing.T) {
	assert.Equal(t, [3]float64{0, 0, 0}, Lupton{}.Minimums())
	assert.Equal(t, [3]float64{2, 2, 2}, Lupton{Minimum: []float64{2}}.Minimums())
	assert.Equal(t, [3]float64{1, 2, 3}, Lupton{Minimum: []float64{1, 2, 3}}.Minimums())
}

func TestFiles(t *testing.T) {
	cfg := &Config{}
	cfg.Channels.Red.File = "r"
	cfg.Channels.Green.File = "g"
	cfg.Channels.Blue.File = "b"
	assert.Equal(t, []string{"r", "g", "b"}, cfg.Files())
}

func TestParse_StrictDecoding(t *testing.T) {
	_, err := Parse(strings.NewReader("mode: [not, a, string]"))
	require.Error(t, err)
}

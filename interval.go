package astroviz

import (
	"math"

	"github.com/astroviz/astroviz/internal/stats"
)

// Interval selects display bounds (vmin, vmax) from image data.
//
// Implementations are small value types, cheap to construct and safe to
// share. A degenerate result with vmin == vmax is legal (constant data);
// Normalizer handles it without dividing by zero. Grids with no finite
// samples at all yield the conventional (0, 1).
type Interval interface {
	// Limits returns the display bounds for the grid.
	Limits(g *Grid) (vmin, vmax float64)
}

// ManualInterval returns fixed, user-chosen bounds. A NaN field falls back
// to the corresponding data extreme, so partial overrides are possible:
//
//	// Pin black to zero, let the data choose white:
//	iv := astroviz.ManualInterval{Vmin: 0, Vmax: math.NaN()}
type ManualInterval struct {
	Vmin float64
	Vmax float64
}

// Limits returns the configured bounds, substituting data extremes for NaN
// fields.
func (iv ManualInterval) Limits(g *Grid) (float64, float64) {
	vmin, vmax := iv.Vmin, iv.Vmax
	if math.IsNaN(vmin) || math.IsNaN(vmax) {
		dmin, dmax, ok := g.MinMax()
		if !ok {
			dmin, dmax = 0, 1
		}
		if math.IsNaN(vmin) {
			vmin = dmin
		}
		if math.IsNaN(vmax) {
			vmax = dmax
		}
	}
	return vmin, vmax
}

// MinMaxInterval uses the full finite range of the data.
type MinMaxInterval struct{}

// Limits returns the smallest and largest finite samples.
func (MinMaxInterval) Limits(g *Grid) (float64, float64) {
	vmin, vmax, ok := g.MinMax()
	if !ok {
		return 0, 1
	}
	return vmin, vmax
}

// PercentileInterval keeps a symmetric central fraction of the data.
// Percentile is the fraction to keep, in percent: 99 clips the darkest and
// brightest 0.5% each. Values outside (0, 100] are treated as 100.
type PercentileInterval struct {
	// Percentile is the central fraction of samples to keep, in percent.
	Percentile float64

	// MaxSamples, when positive, caps how many pixels are inspected.
	// Large grids are evenly subsampled down to this count first.
	MaxSamples int
}

// Limits returns the symmetric percentile bounds.
func (iv PercentileInterval) Limits(g *Grid) (float64, float64) {
	p := iv.Percentile
	if p <= 0 || p > 100 {
		p = 100
	}
	lower := (100 - p) / 2
	return AsymmetricPercentileInterval{
		LowerPercentile: lower,
		UpperPercentile: 100 - lower,
		MaxSamples:      iv.MaxSamples,
	}.Limits(g)
}

// AsymmetricPercentileInterval clips the data at independent lower and
// upper percentiles.
type AsymmetricPercentileInterval struct {
	// LowerPercentile is the percentile for vmin, in [0, 100].
	LowerPercentile float64

	// UpperPercentile is the percentile for vmax, in [0, 100].
	// Must not be below LowerPercentile; a degenerate configuration
	// falls back to the full range.
	UpperPercentile float64

	// MaxSamples, when positive, caps how many pixels are inspected.
	MaxSamples int
}

// Limits returns the asymmetric percentile bounds.
func (iv AsymmetricPercentileInterval) Limits(g *Grid) (float64, float64) {
	data := stats.Subsample(g.Data(), iv.MaxSamples)
	sorted := stats.SortedFinite(data)
	if len(sorted) == 0 {
		return 0, 1
	}
	lo, hi := iv.LowerPercentile, iv.UpperPercentile
	if lo < 0 || hi > 100 || lo > hi {
		return sorted[0], sorted[len(sorted)-1]
	}
	return stats.Percentile(sorted, lo), stats.Percentile(sorted, hi)
}

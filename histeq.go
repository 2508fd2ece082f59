package astroviz

import (
	"sort"

	"github.com/astroviz/astroviz/internal/stats"
)

// HistEqStretch equalizes the histogram of a reference sample: the forward
// transform maps an input through the empirical cumulative distribution of
// the reference, so equally populated intensity ranges receive equal
// display range.
//
// The reference is normally the normalized data the stretch will be applied
// to. Construct with NewHistEqStretch; the zero value degenerates to the
// identity.
type HistEqStretch struct {
	values  []float64 // sorted reference sample, clipped to [0, 1]
	targets []float64 // uniform ramp, same length as values
}

// NewHistEqStretch builds a histogram-equalization stretch from a reference
// sample. Non-finite values are dropped and the rest clipped to [0, 1].
// MaxSamples-style capping is the caller's concern; the constructor keeps
// whatever it is given.
func NewHistEqStretch(data []float64) HistEqStretch {
	sorted := stats.SortedFinite(data)
	values := make([]float64, len(sorted))
	for i, v := range sorted {
		values[i] = clamp01(v)
	}
	targets := make([]float64, len(values))
	if n := len(values); n > 1 {
		for i := range targets {
			targets[i] = float64(i) / float64(n-1)
		}
	}
	return HistEqStretch{values: values, targets: targets}
}

// Forward maps x through the reference CDF.
func (s HistEqStretch) Forward(x float64) float64 {
	return interp(clamp01(x), s.values, s.targets)
}

// Inverse maps a display intensity back through the reference CDF.
func (s HistEqStretch) Inverse(y float64) float64 {
	return interp(clamp01(y), s.targets, s.values)
}

// interp linearly interpolates x through the piecewise-linear function
// defined by the ascending xs and corresponding ys, clamping outside the
// domain. Empty tables degrade to the identity.
func interp(x float64, xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 {
		return x
	}
	if x <= xs[0] {
		return ys[0]
	}
	if x >= xs[n-1] {
		return ys[n-1]
	}
	i := sort.SearchFloat64s(xs, x)
	// xs[i-1] < x <= xs[i] here
	if xs[i] == xs[i-1] {
		return ys[i]
	}
	t := (x - xs[i-1]) / (xs[i] - xs[i-1])
	return ys[i-1] + t*(ys[i]-ys[i-1])
}

// Package stats provides the sample statistics shared by the interval
// strategies: finite filtering, quantiles with linear interpolation, and
// even subsampling of large pixel populations.
package stats

import (
	"math"
	"sort"
)

// SortedFinite returns the finite values of data, sorted ascending.
// The input is not modified.
func SortedFinite(data []float64) []float64 {
	out := make([]float64, 0, len(data))
	for _, v := range data {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	sort.Float64s(out)
	return out
}

// Subsample returns at most n values taken at an even stride across data.
// With n <= 0 or n >= len(data) the input is returned unchanged.
func Subsample(data []float64, n int) []float64 {
	if n <= 0 || len(data) <= n {
		return data
	}
	stride := float64(len(data)) / float64(n)
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, data[int(float64(i)*stride)])
	}
	return out
}

// Percentile returns the p-th percentile (0 to 100) of an ascending-sorted
// slice, interpolating linearly between adjacent ranks. An empty slice
// yields NaN.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if n == 1 {
		return sorted[0]
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 100 {
		return sorted[n-1]
	}
	rank := p / 100 * float64(n-1)
	lo := int(math.Floor(rank))
	frac := rank - float64(lo)
	if lo+1 >= n {
		return sorted[n-1]
	}
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// Median returns the median of an ascending-sorted slice.
func Median(sorted []float64) float64 {
	return Percentile(sorted, 50)
}

// Mean returns the arithmetic mean. An empty slice yields NaN.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// StdDev returns the population standard deviation. Slices with fewer than
// two values yield 0.
func StdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	mean := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

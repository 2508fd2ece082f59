package astroviz

import (
	"math"

	"github.com/astroviz/astroviz/internal/stats"
)

// ZScaleInterval default parameters.
const (
	zscaleDefaultNSamples      = 1000
	zscaleDefaultContrast      = 0.25
	zscaleDefaultMaxReject     = 0.5
	zscaleDefaultMinNPixels    = 5
	zscaleDefaultKRej          = 2.5
	zscaleDefaultMaxIterations = 5
)

// ZScaleInterval chooses display bounds with the z-scale heuristic used by
// astronomical image viewers.
//
// The algorithm samples the image evenly, sorts the finite samples, and fits
// a straight line to the sorted values against their rank. Samples far from
// the fit are rejected iteratively (k-sigma clipping with mask growing) and
// the surviving slope, widened by 1/Contrast, spans the display range around
// the sample median. When too many samples are rejected for the fit to be
// trusted, the full sample range is used instead.
//
// The zero value is not useful; construct with NewZScaleInterval and adjust
// fields as needed.
type ZScaleInterval struct {
	// NSamples is the number of pixels inspected, taken at an even
	// stride across the grid.
	NSamples int

	// Contrast widens the fitted slope; smaller values produce a wider,
	// lower-contrast display range. Non-positive disables the division.
	Contrast float64

	// MaxReject bounds the fraction of samples the clipping may discard
	// before the fit is abandoned.
	MaxReject float64

	// MinNPixels is the absolute minimum of surviving samples for the
	// fit to be trusted.
	MinNPixels int

	// KRej is the sigma-clipping threshold for residual rejection.
	KRej float64

	// MaxIterations bounds the fit/reject cycles.
	MaxIterations int
}

// NewZScaleInterval returns a ZScaleInterval with the conventional
// parameters (1000 samples, contrast 0.25, k = 2.5, 5 iterations).
func NewZScaleInterval() ZScaleInterval {
	return ZScaleInterval{
		NSamples:      zscaleDefaultNSamples,
		Contrast:      zscaleDefaultContrast,
		MaxReject:     zscaleDefaultMaxReject,
		MinNPixels:    zscaleDefaultMinNPixels,
		KRej:          zscaleDefaultKRej,
		MaxIterations: zscaleDefaultMaxIterations,
	}
}

// Limits returns the z-scale display bounds for the grid.
func (iv ZScaleInterval) Limits(g *Grid) (float64, float64) {
	nsamples := iv.NSamples
	if nsamples <= 0 {
		nsamples = zscaleDefaultNSamples
	}
	values := stats.SortedFinite(stats.Subsample(g.Data(), nsamples))
	npix := len(values)
	if npix == 0 {
		return 0, 1
	}
	if npix == 1 {
		return values[0], values[0]
	}

	zmin := values[0]
	zmax := values[npix-1]

	minpix := iv.MinNPixels
	if mr := int(float64(npix) * iv.MaxReject); mr > minpix {
		minpix = mr
	}
	ngrow := int(float64(npix) * 0.01)
	if ngrow < 1 {
		ngrow = 1
	}

	badpix := make([]bool, npix)
	ngoodpix := npix
	lastNgood := npix + 1
	var slope, intercept float64
	iterations := 0

	for iter := 0; iter < iv.MaxIterations; iter++ {
		if ngoodpix >= lastNgood || ngoodpix < minpix {
			break
		}
		iterations++
		slope, intercept = fitSortedLine(values, badpix)

		// Reject samples with residuals beyond KRej sigma.
		var residuals []float64
		for i, v := range values {
			if !badpix[i] {
				residuals = append(residuals, v-(slope*float64(i)+intercept))
			}
		}
		threshold := iv.KRej * stats.StdDev(residuals)
		for i, v := range values {
			r := v - (slope*float64(i) + intercept)
			if r < -threshold || r > threshold {
				badpix[i] = true
			}
		}
		growMask(badpix, ngrow)

		lastNgood = ngoodpix
		ngoodpix = 0
		for _, bad := range badpix {
			if !bad {
				ngoodpix++
			}
		}
	}

	if ngoodpix >= minpix {
		if iv.Contrast > 0 {
			slope /= iv.Contrast
		}
		median := stats.Median(values)
		center := (npix - 1) / 2
		lo := median - float64(center-1)*slope
		hi := median + float64(npix-center)*slope
		zmin = math.Max(zmin, lo)
		zmax = math.Min(zmax, hi)
		Logger().Debug("zscale fit",
			"samples", npix,
			"good", ngoodpix,
			"iterations", iterations,
			"slope", slope,
			"vmin", zmin,
			"vmax", zmax)
	} else {
		Logger().Warn("zscale fit rejected too many samples, using full sample range",
			"samples", npix,
			"good", ngoodpix,
			"min_required", minpix)
	}
	return zmin, zmax
}

// fitSortedLine fits value = slope*index + intercept by least squares over
// the unmasked samples.
func fitSortedLine(values []float64, badpix []bool) (slope, intercept float64) {
	var n, sx, sy, sxy, sxx float64
	for i, v := range values {
		if badpix[i] {
			continue
		}
		x := float64(i)
		n++
		sx += x
		sy += v
		sxy += x * v
		sxx += x * x
	}
	if n < 2 {
		return 0, stats.Mean(values)
	}
	det := n*sxx - sx*sx
	if det == 0 {
		return 0, sy / n
	}
	slope = (n*sxy - sx*sy) / det
	intercept = (sy - slope*sx) / n
	return slope, intercept
}

// growMask widens runs of rejected samples so that pixels adjacent to a
// rejected one are rejected too, matching a 'same'-mode convolution with a
// box kernel of the given width.
func growMask(badpix []bool, width int) {
	if width <= 1 {
		return
	}
	src := make([]bool, len(badpix))
	copy(src, badpix)
	half := width / 2
	for i := range badpix {
		lo := i - half
		hi := i + (width - 1 - half)
		if lo < 0 {
			lo = 0
		}
		if hi > len(src)-1 {
			hi = len(src) - 1
		}
		for j := lo; j <= hi; j++ {
			if src[j] {
				badpix[i] = true
				break
			}
		}
	}
}

package astroviz

import (
	"errors"
	"time"

	"github.com/astroviz/astroviz/internal/parallel"
)

// Composition errors.
var (
	// ErrNilChannel is returned when a channel grid is nil.
	ErrNilChannel = errors.New("astroviz: channel grid is nil")

	// ErrDimensionMismatch is returned when the three channel grids do
	// not share the same dimensions.
	ErrDimensionMismatch = errors.New("astroviz: channel dimensions do not match")
)

// RGBOption configures MakeRGB.
type RGBOption func(*rgbOptions)

type rgbOptions struct {
	norms   [3]Normalizer
	workers int
}

func defaultRGBOptions() rgbOptions {
	n := Normalizer{Interval: MinMaxInterval{}, Stretch: LinearStretch{}}
	return rgbOptions{norms: [3]Normalizer{n, n, n}}
}

// WithInterval sets the interval used by all three channels.
func WithInterval(iv Interval) RGBOption {
	return func(o *rgbOptions) {
		for c := range o.norms {
			o.norms[c].Interval = iv
		}
	}
}

// WithStretch sets the stretch used by all three channels.
func WithStretch(s Stretch) RGBOption {
	return func(o *rgbOptions) {
		for c := range o.norms {
			o.norms[c].Stretch = s
		}
	}
}

// WithChannelIntervals sets an independent interval per channel, in red,
// green, blue order. Nil entries keep the current interval for that
// channel.
func WithChannelIntervals(r, g, b Interval) RGBOption {
	return func(o *rgbOptions) {
		for c, iv := range []Interval{r, g, b} {
			if iv != nil {
				o.norms[c].Interval = iv
			}
		}
	}
}

// WithChannelStretches sets an independent stretch per channel, in red,
// green, blue order. Nil entries keep the current stretch for that channel.
func WithChannelStretches(r, g, b Stretch) RGBOption {
	return func(o *rgbOptions) {
		for c, s := range []Stretch{r, g, b} {
			if s != nil {
				o.norms[c].Stretch = s
			}
		}
	}
}

// WithNormalizers sets the complete per-channel normalizers, in red, green,
// blue order, replacing any interval or stretch options.
func WithNormalizers(r, g, b Normalizer) RGBOption {
	return func(o *rgbOptions) {
		o.norms = [3]Normalizer{r, g, b}
	}
}

// WithWorkers bounds the number of goroutines used for the per-pixel work.
// Zero or negative means GOMAXPROCS.
func WithWorkers(n int) RGBOption {
	return func(o *rgbOptions) {
		o.workers = n
	}
}

// MakeRGB composes three grids into an 8-bit RGB pixmap, scaling each
// channel independently.
//
// Every channel is normalized on its own: its interval picks vmin/vmax from
// that channel's data and its stretch shapes the normalized values. By
// default all channels share a MinMax interval and a linear stretch; use
// WithInterval/WithStretch to change all three at once or the per-channel
// options for full control. Because the channels are scaled independently,
// the result emphasizes structure in each band rather than preserving the
// hue of bright objects; for hue-preserving composition see MakeLuptonRGB.
//
// The grids must share dimensions.
func MakeRGB(r, g, b *Grid, opts ...RGBOption) (*Pixmap, error) {
	if err := checkChannels(r, g, b); err != nil {
		return nil, err
	}
	o := defaultRGBOptions()
	for _, opt := range opts {
		opt(&o)
	}

	start := time.Now()
	grids := [3]*Grid{r, g, b}
	var vmin, vmax [3]float64
	for c, grid := range grids {
		vmin[c], vmax[c] = o.norms[c].Limits(grid)
		if vmin[c] == vmax[c] {
			Logger().Warn("channel has degenerate display limits, rendering black",
				"channel", "rgb"[c:c+1], "value", vmin[c])
		}
		Logger().Debug("channel display limits",
			"channel", "rgb"[c:c+1], "vmin", vmin[c], "vmax", vmax[c])
	}

	width, height := r.Width(), r.Height()
	pm := NewPixmap(width, height)
	npix := width * height

	norm := make([]float64, 3*npix)
	parallel.Slabs(npix, o.workers, func(lo, hi int) {
		for c, grid := range grids {
			buf := norm[c*npix : (c+1)*npix]
			o.norms[c].applyRange(grid, buf, vmin[c], vmax[c], lo, hi)
		}
		for i := lo; i < hi; i++ {
			j := i * 4
			pm.data[j+0] = quantize8(norm[i])
			pm.data[j+1] = quantize8(norm[npix+i])
			pm.data[j+2] = quantize8(norm[2*npix+i])
		}
	})

	Logger().Info("rgb composition finished",
		"width", width, "height", height,
		"elapsed", time.Since(start))
	return pm, nil
}

// checkChannels validates the three channel grids for composition.
func checkChannels(r, g, b *Grid) error {
	for _, grid := range []*Grid{r, g, b} {
		if grid == nil {
			return ErrNilChannel
		}
	}
	if r.Width() != g.Width() || r.Width() != b.Width() ||
		r.Height() != g.Height() || r.Height() != b.Height() {
		return ErrDimensionMismatch
	}
	return nil
}

// quantize8 maps a [0, 1] intensity to a uint8 with rounding.
// NaN maps to 0.
func quantize8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

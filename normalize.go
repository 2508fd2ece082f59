package astroviz

// Normalizer maps raw grid data to display intensities in [0, 1] by
// combining an Interval (which picks vmin and vmax) with a Stretch.
//
// For each finite sample x the result is
//
//	stretch(clip((x - vmin) / (vmax - vmin)))
//
// Non-finite samples map to 0 (display black), as does everything when the
// interval degenerates to vmin == vmax. The zero value uses the full data
// range with a linear stretch.
type Normalizer struct {
	// Interval picks the display bounds. Nil means MinMaxInterval.
	Interval Interval

	// Stretch is applied to the normalized values. Nil means linear.
	Stretch Stretch
}

func (n Normalizer) interval() Interval {
	if n.Interval == nil {
		return MinMaxInterval{}
	}
	return n.Interval
}

func (n Normalizer) stretch() Stretch {
	if n.Stretch == nil {
		return LinearStretch{}
	}
	return n.Stretch
}

// Limits returns the display bounds the normalizer would use for the grid.
func (n Normalizer) Limits(g *Grid) (vmin, vmax float64) {
	return n.interval().Limits(g)
}

// Apply returns a new grid of display intensities in [0, 1].
func (n Normalizer) Apply(g *Grid) *Grid {
	vmin, vmax := n.Limits(g)
	out := NewGrid(g.Width(), g.Height())
	n.applyInto(g, out.Data(), vmin, vmax)
	return out
}

// applyInto normalizes g into dst, which must have len(g.Data()) elements.
// Limits are passed in so composition routines can compute them once and
// reuse them across parallel slabs.
func (n Normalizer) applyInto(g *Grid, dst []float64, vmin, vmax float64) {
	n.applyRange(g, dst, vmin, vmax, 0, len(dst))
}

// applyRange normalizes samples [lo, hi) of g into the same positions of
// dst.
func (n Normalizer) applyRange(g *Grid, dst []float64, vmin, vmax float64, lo, hi int) {
	stretch := n.stretch()
	span := vmax - vmin
	src := g.Data()
	if span <= 0 {
		for i := lo; i < hi; i++ {
			dst[i] = 0
		}
		return
	}
	for i := lo; i < hi; i++ {
		v := src[i]
		if !isFinite(v) {
			dst[i] = 0
			continue
		}
		dst[i] = clamp01(stretch.Forward(clamp01((v - vmin) / span)))
	}
}

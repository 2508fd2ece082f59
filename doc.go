// Package astroviz maps raw scientific image data to display-ready images.
//
// # Overview
//
// astroviz is a pure Go library for intensity scaling and color composition
// of scientific images. Raw data (for example a CCD exposure) usually spans
// an arbitrary numeric range with a handful of very bright pixels; showing
// it directly makes everything but those pixels black. astroviz provides the
// two building blocks that fix this, plus the composition routines on top:
//
//   - Interval: strategies for picking display bounds (vmin, vmax) from the
//     data, including the z-scale heuristic used by astronomical viewers.
//   - Stretch: monotonic transforms on the normalized [0, 1] range (asinh,
//     log, sqrt, histogram equalization, ...) that lift faint features.
//
// # Quick Start
//
//	import "github.com/astroviz/astroviz"
//
//	r, _ := astroviz.LoadGrid("halpha.tiff")
//	g, _ := astroviz.LoadGrid("oiii.tiff")
//	b, _ := astroviz.LoadGrid("sii.tiff")
//
//	pm, err := astroviz.MakeRGB(r, g, b,
//	    astroviz.WithInterval(astroviz.NewZScaleInterval()),
//	    astroviz.WithStretch(astroviz.AsinhStretch{A: 0.1}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pm.SavePNG("composite.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: Grid, Interval, Stretch, Normalizer, Pixmap
//   - Composition: MakeRGB (independent per-channel scaling) and
//     MakeLuptonRGB (intensity-coupled asinh scheme)
//   - Internal: stats (sample quantiles), parallel (row slabs)
//
// # Data Model
//
// A Grid is a single-channel float64 plane. NaN and infinite pixels are
// carried through untouched; every statistic skips them and every mapping
// renders them black. Composition output is an 8-bit Pixmap that implements
// image.Image and saves to PNG, JPEG, or TIFF.
package astroviz

// Version information
const (
	// Version is the current version of the library
	Version = "0.2.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 2

	// VersionPatch is the patch version
	VersionPatch = 0
)

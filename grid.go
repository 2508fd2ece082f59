package astroviz

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Grid represents a single-channel image plane of float64 samples.
//
// Values are stored row-major. NaN and infinite values are legal and mark
// missing or saturated pixels: statistics skip them and intensity mappings
// render them black. A Grid holds raw data in whatever units the source
// used; nothing about it is normalized until a Normalizer or a composition
// routine is applied.
type Grid struct {
	width  int
	height int
	data   []float64 // row-major, len = width*height
}

// NewGrid creates a zero-filled grid with the given dimensions.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		data:   make([]float64, width*height),
	}
}

// GridFrom wraps an existing row-major slice as a grid. The slice is used
// directly, not copied, so the caller must not mutate it concurrently with
// grid operations.
func GridFrom(data []float64, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("astroviz: invalid grid dimensions: width=%d, height=%d (both must be > 0)", width, height)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("astroviz: grid data length %d does not match %dx%d", len(data), width, height)
	}
	return &Grid{width: width, height: height, data: data}, nil
}

// GridFromImage converts an image to a grid of values in [0, 1].
//
// Gray and Gray16 images map their single channel directly. Color images
// are reduced with the Rec. 709 luma weights. Fully transparent pixels
// become NaN so that downstream statistics ignore them.
func GridFromImage(img image.Image) *Grid {
	bounds := img.Bounds()
	g := NewGrid(bounds.Dx(), bounds.Dy())

	switch src := img.(type) {
	case *image.Gray:
		for y := 0; y < g.height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+g.width]
			for x, v := range row {
				g.data[y*g.width+x] = float64(v) / 255
			}
		}
	case *image.Gray16:
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				i := y*src.Stride + x*2
				v := uint16(src.Pix[i])<<8 | uint16(src.Pix[i+1])
				g.data[y*g.width+x] = float64(v) / 65535
			}
		}
	default:
		for y := 0; y < g.height; y++ {
			for x := 0; x < g.width; x++ {
				r, gr, b, a := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				if a == 0 {
					g.data[y*g.width+x] = math.NaN()
					continue
				}
				luma := 0.2126*float64(r) + 0.7152*float64(gr) + 0.0722*float64(b)
				g.data[y*g.width+x] = luma / 65535
			}
		}
	}
	return g
}

// Width returns the width of the grid.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the height of the grid.
func (g *Grid) Height() int {
	return g.height
}

// Data returns the raw row-major samples.
func (g *Grid) Data() []float64 {
	return g.data
}

// Value returns the sample at (x, y). Out-of-bounds reads return NaN.
func (g *Grid) Value(x, y int) float64 {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return math.NaN()
	}
	return g.data[y*g.width+x]
}

// SetValue sets the sample at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) SetValue(x, y int, v float64) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	g.data[y*g.width+x] = v
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	dup := NewGrid(g.width, g.height)
	copy(dup.data, g.data)
	return dup
}

// MinMax returns the smallest and largest finite samples.
// ok is false when the grid has no finite samples at all.
func (g *Grid) MinMax() (min, max float64, ok bool) {
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, v := range g.data {
		if !isFinite(v) {
			continue
		}
		ok = true
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

// Gray16Image renders the grid into an image.Gray16 using the given display
// bounds: vmin maps to black, vmax to white, non-finite samples to black.
func (g *Grid) Gray16Image(vmin, vmax float64) *image.Gray16 {
	img := image.NewGray16(image.Rect(0, 0, g.width, g.height))
	span := vmax - vmin
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			v := g.data[y*g.width+x]
			var t float64
			if isFinite(v) && span > 0 {
				t = clamp01((v - vmin) / span)
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(t*65535 + 0.5)})
		}
	}
	return img
}

// isFinite reports whether v is neither NaN nor infinite.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// clamp01 clamps a value to [0, 1] range.
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

package astroviz

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"

	"golang.org/x/image/tiff"
)

// Pixmap is an 8-bit RGB pixel buffer, the output of the composition
// routines. Alpha is always opaque; the fourth byte per pixel exists so the
// buffer can be copied straight into an image.RGBA.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA layout, alpha fixed at 0xff
}

// NewPixmap creates an opaque black pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	p := &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
	for i := 3; i < len(p.data); i += 4 {
		p.data[i] = 0xff
	}
	return p
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA layout).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetRGB sets the color of a single pixel. Out-of-bounds writes are
// ignored.
func (p *Pixmap) SetRGB(x, y int, r, g, b uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = r
	p.data[i+1] = g
	p.data[i+2] = b
}

// RGB returns the color of a single pixel. Out-of-bounds reads return
// black.
func (p *Pixmap) RGB(x, y int) (r, g, b uint8) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return 0, 0, 0
	}
	i := (y*p.width + x) * 4
	return p.data[i+0], p.data[i+1], p.data[i+2]
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// At implements the image.Image interface.
func (p *Pixmap) At(x, y int) color.Color {
	r, g, b := p.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Bounds implements the image.Image interface.
func (p *Pixmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, p.width, p.height)
}

// ColorModel implements the image.Image interface.
func (p *Pixmap) ColorModel() color.Model {
	return color.RGBAModel
}

// SavePNG saves the pixmap to a PNG file.
func (p *Pixmap) SavePNG(path string) error {
	return p.save(path, func(f *os.File) error {
		return png.Encode(f, p.ToImage())
	})
}

// SaveJPEG saves the pixmap to a JPEG file with the given quality (1-100).
// Quality 0 selects the encoder default.
func (p *Pixmap) SaveJPEG(path string, quality int) error {
	var opts *jpeg.Options
	if quality > 0 {
		opts = &jpeg.Options{Quality: quality}
	}
	return p.save(path, func(f *os.File) error {
		return jpeg.Encode(f, p.ToImage(), opts)
	})
}

// SaveTIFF saves the pixmap to an uncompressed TIFF file.
func (p *Pixmap) SaveTIFF(path string) error {
	return p.save(path, func(f *os.File) error {
		return tiff.Encode(f, p.ToImage(), nil)
	})
}

func (p *Pixmap) save(path string, encode func(*os.File) error) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("astroviz: create %s: %w", path, err)
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("astroviz: encode %s: %w", path, err)
	}
	return f.Close()
}

package astroviz

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
)

// ErrUnsupportedFormat is returned when the image format is not supported.
var ErrUnsupportedFormat = errors.New("astroviz: unsupported image format")

// LoadGrid loads a single-channel grid from an image file, auto-detecting
// the format from the extension. Supported formats: PNG, JPEG, TIFF
// (including 16-bit grayscale). Color inputs are reduced to luma; see
// GridFromImage for the conversion rules.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("astroviz: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return decodeGridWith(f, png.Decode)
	case ".jpg", ".jpeg":
		return decodeGridWith(f, jpeg.Decode)
	case ".tif", ".tiff":
		return decodeGridWith(f, tiff.Decode)
	default:
		return DecodeGrid(f)
	}
}

// DecodeGrid decodes a grid from a reader, sniffing the format from the
// content. Supported formats: PNG, JPEG, TIFF.
func DecodeGrid(r io.Reader) (*Grid, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	Logger().Debug("decoded grid", "format", format)
	return GridFromImage(img), nil
}

func decodeGridWith(r io.Reader, decode func(io.Reader) (image.Image, error)) (*Grid, error) {
	img, err := decode(r)
	if err != nil {
		return nil, fmt.Errorf("astroviz: decode image: %w", err)
	}
	return GridFromImage(img), nil
}

// Resize scales a pixmap to the given dimensions with Catmull-Rom
// resampling, for quick-look thumbnails of large composites.
func Resize(p *Pixmap, width, height int) (*Pixmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("astroviz: invalid resize dimensions: width=%d, height=%d (both must be > 0)", width, height)
	}
	src := p.ToImage()
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	out := NewPixmap(width, height)
	copy(out.data, dst.Pix)
	// Resampling can soften alpha at the edges; the buffer is opaque by
	// contract.
	for i := 3; i < len(out.data); i += 4 {
		out.data[i] = 0xff
	}
	return out, nil
}

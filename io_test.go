package astroviz

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/tiff"
)

func writeGrayPNG(t *testing.T, dir, name string, pix []uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, len(pix), 1))
	copy(img.Pix, pix)
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGrid_PNG(t *testing.T) {
	path := writeGrayPNG(t, t.TempDir(), "in.png", []uint8{0, 128, 255})
	g, err := LoadGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 128.0 / 255, 1}
	for i, w := range want {
		if absDiff(g.Data()[i], w) > 1e-12 {
			t.Errorf("data[%d] = %v, want %v", i, g.Data()[i], w)
		}
	}
}

func TestLoadGrid_TIFF16(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 1))
	img.SetGray16(0, 0, color.Gray16{Y: 0})
	img.SetGray16(1, 0, color.Gray16{Y: 65535})

	path := filepath.Join(t.TempDir(), "in.tiff")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := tiff.Encode(f, img, nil); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGrid(path)
	if err != nil {
		t.Fatal(err)
	}
	if g.Data()[0] != 0 || g.Data()[1] != 1 {
		t.Errorf("data = %v, want [0 1]", g.Data())
	}
}

func TestLoadGrid_UnknownExtensionSniffs(t *testing.T) {
	// PNG content behind an unknown extension still decodes via
	// content sniffing.
	dir := t.TempDir()
	src := writeGrayPNG(t, dir, "in.png", []uint8{7})
	raw, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	dst := filepath.Join(dir, "in.dat")
	if err := os.WriteFile(dst, raw, 0o644); err != nil {
		t.Fatal(err)
	}

	g, err := LoadGrid(dst)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 1 || g.Height() != 1 {
		t.Errorf("size = %dx%d, want 1x1", g.Width(), g.Height())
	}
}

func TestLoadGrid_MissingFile(t *testing.T) {
	if _, err := LoadGrid(filepath.Join(t.TempDir(), "nope.png")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestDecodeGrid_UnsupportedFormat(t *testing.T) {
	_, err := DecodeGrid(strings.NewReader("definitely not an image"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecodeGrid_FromReader(t *testing.T) {
	var buf bytes.Buffer
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	g, err := DecodeGrid(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if g.Width() != 2 || g.Height() != 2 {
		t.Errorf("size = %dx%d, want 2x2", g.Width(), g.Height())
	}
}

func TestResize(t *testing.T) {
	pm := NewPixmap(4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			pm.SetRGB(x, y, 100, 150, 200)
		}
	}

	small, err := Resize(pm, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if small.Width() != 2 || small.Height() != 2 {
		t.Fatalf("size = %dx%d, want 2x2", small.Width(), small.Height())
	}
	// Uniform input stays uniform under resampling.
	r, g, b := small.RGB(0, 0)
	if intDiff(r, 100) > 1 || intDiff(g, 150) > 1 || intDiff(b, 200) > 1 {
		t.Errorf("resized pixel = (%d,%d,%d), want (100,150,200) ±1", r, g, b)
	}
	// And the result is still opaque.
	_, _, _, a := small.At(0, 0).RGBA()
	if a != 65535 {
		t.Errorf("alpha = %d, want opaque", a)
	}
}

func TestResize_InvalidDimensions(t *testing.T) {
	pm := NewPixmap(2, 2)
	if _, err := Resize(pm, 0, 2); err == nil {
		t.Fatal("expected error for zero width")
	}
	if _, err := Resize(pm, 2, -1); err == nil {
		t.Fatal("expected error for negative height")
	}
}

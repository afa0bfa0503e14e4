package bitmap

import (
	"bytes"
	"errors"
	"image"
	"io/fs"
	"testing"
	"testing/fstest"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := mustImage(t, image.NewRGBA(image.Rect(0, 0, w, h)), 1).Write(&buf, FormatPNG); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestAssets_Image(t *testing.T) {
	fsys := fstest.MapFS{
		"icons/star.png":    {Data: pngBytes(t, 8, 8)},
		"icons/star@2x.png": {Data: pngBytes(t, 16, 16)},
		"icons/plain.bmp":   {Data: pngBytes(t, 4, 4)},
	}

	tests := []struct {
		name      string
		maxScale  float64
		asset     string
		wantScale float64
		wantPx    int
	}{
		{"prefers 2x", 0, "icons/star", 2, 16},
		{"max scale caps variant", 1, "icons/star", 1, 8},
		{"any extension", 0, "icons/plain", 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := NewAssets(fsys, tt.maxScale).Image(tt.asset)
			if err != nil {
				t.Fatalf("Image(%q) error = %v", tt.asset, err)
			}
			if img.Scale() != tt.wantScale {
				t.Errorf("Scale() = %v, want %v", img.Scale(), tt.wantScale)
			}
			if img.PixelSize().X != tt.wantPx {
				t.Errorf("PixelSize() = %v, want %d", img.PixelSize(), tt.wantPx)
			}
			if w, _ := img.Size(); w != 8 && tt.asset == "icons/star" {
				t.Errorf("logical width = %v, want 8", w)
			}
		})
	}
}

func TestAssets_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"broken@2x.png": {Data: []byte("junk")},
	}
	a := NewAssets(fsys, 0)

	if _, err := a.Image("missing"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Image(missing) error = %v, want fs.ErrNotExist", err)
	}
	if _, err := a.Image("broken"); err == nil || errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Image(broken) error = %v, want a decode error", err)
	}
}

package bitmap

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an image format is not supported.
	ErrUnsupportedFormat = errors.New("bitmap: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("bitmap: empty data")
)

// Format is an image file format.
type Format uint8

// Supported formats. WebP can only be decoded.
const (
	FormatNone Format = iota
	FormatPNG
	FormatJPEG
	FormatGIF
	FormatBMP
	FormatTIFF
	FormatWebP
)

// String returns the lowercase format name as used by image.Decode.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJPEG:
		return "jpeg"
	case FormatGIF:
		return "gif"
	case FormatBMP:
		return "bmp"
	case FormatTIFF:
		return "tiff"
	case FormatWebP:
		return "webp"
	default:
		return "none"
	}
}

// FormatFromExt returns the format for a file extension, with or without the
// leading dot.
func FormatFromExt(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "gif":
		return FormatGIF, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "webp":
		return FormatWebP, nil
	}
	return FormatNone, fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
}

// Open loads an image file. A "@Nx" suffix on the base name (for example
// "logo@2x.png") sets the scale; otherwise the scale is 1.
func Open(path string) (*Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("bitmap: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	img, _, err := Read(f)
	if err != nil {
		return nil, err
	}
	img.name, img.scale = splitScale(filepath.Base(path))
	return img, nil
}

// Load decodes an image from a byte slice at scale 1.
func Load(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	img, _, err := Read(bytes.NewReader(data))
	return img, err
}

// Read decodes an image at scale 1, detecting the format from its content.
func Read(r io.Reader) (*Image, Format, error) {
	src, name, err := image.Decode(r)
	if err != nil {
		return nil, FormatNone, fmt.Errorf("bitmap: decode: %w", err)
	}
	f, err := FormatFromExt(name)
	if err != nil {
		return nil, FormatNone, err
	}
	img, err := NewImage(src, 1)
	if err != nil {
		return nil, f, fmt.Errorf("bitmap: decode: %w", err)
	}
	return img, f, nil
}

// Write encodes the image to w in the given format.
func (i *Image) Write(w io.Writer, f Format) error {
	var err error
	switch f {
	case FormatPNG:
		err = png.Encode(w, i.src)
	case FormatJPEG:
		err = jpeg.Encode(w, i.src, &jpeg.Options{Quality: 90})
	case FormatGIF:
		err = gif.Encode(w, i.src, nil)
	case FormatBMP:
		err = bmp.Encode(w, i.src)
	case FormatTIFF:
		err = tiff.Encode(w, i.src, nil)
	default:
		return fmt.Errorf("%w: cannot encode %s", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return fmt.Errorf("bitmap: encode %s: %w", f, err)
	}
	return nil
}

// Save writes the image to path, choosing the format from the extension.
func (i *Image) Save(path string) error {
	f, err := FormatFromExt(filepath.Ext(path))
	if err != nil {
		return err
	}
	file, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("bitmap: create file: %w", err)
	}

	bw := bufio.NewWriter(file)
	if err := i.Write(bw, f); err != nil {
		_ = file.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = file.Close()
		return fmt.Errorf("bitmap: write file: %w", err)
	}
	return file.Close()
}

// splitScale strips the extension and any "@Nx" suffix from a file name and
// returns the bare name and the scale it denotes.
func splitScale(base string) (string, float64) {
	name := strings.TrimSuffix(base, filepath.Ext(base))
	at := strings.LastIndexByte(name, '@')
	if at < 0 || !strings.HasSuffix(name, "x") {
		return name, 1
	}
	s, err := strconv.ParseFloat(name[at+1:len(name)-1], 64)
	if err != nil || !validScale(s) {
		return name, 1
	}
	return name[:at], s
}

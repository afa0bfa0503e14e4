package bitmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"iter"
	"math"
	"slices"

	xdraw "golang.org/x/image/draw"
)

// Common errors for bitmap operations.
var (
	// ErrInvalidDimensions is returned when a width, height, scale or
	// capacity is not positive.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrIndexOutOfRange is returned when a write addresses a pixel outside
	// the bitmap.
	ErrIndexOutOfRange = errors.New("bitmap: index out of range")

	// ErrDecodeFailure is returned when an image cannot be rendered into a
	// bitmap context.
	ErrDecodeFailure = errors.New("bitmap: decode failure")

	// ErrEncodeFailure is returned when a bitmap cannot be turned back into
	// an image.
	ErrEncodeFailure = errors.New("bitmap: encode failure")
)

// MaxPixels is the largest pixel count New accepts (1 GiB of storage).
const MaxPixels = 1 << 28

// noCopy flags accidental copies of a PixelBitmap value in go vet
// (copylocks check).
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// PixelBitmap is a directly addressable, row-major RGBA pixel buffer.
//
// A PixelBitmap exclusively owns its pixel storage: no method hands the
// backing slice out, Map and friends always allocate a fresh buffer, and
// Clone is the only way to duplicate one. Use it through a pointer.
//
// Pixels are stored with straight alpha. Premultiplication happens only at
// the Decode/Encode boundary.
//
// Thread safety: concurrent reads are safe. Writes (SetPixelAt, Set, Fill)
// require a single writer and no concurrent readers.
type PixelBitmap struct {
	noCopy noCopy

	width  int
	height int
	scale  float64
	pix    []Pixel
}

// New creates a transparent bitmap of width x height pixels recorded at the
// given device scale. Sizes above MaxPixels are rejected.
func New(width, height int, scale float64) (*PixelBitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrInvalidDimensions, width, height, MaxPixels)
	}
	if !validScale(scale) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidDimensions, scale)
	}
	return &PixelBitmap{
		width:  width,
		height: height,
		scale:  scale,
		pix:    make([]Pixel, width*height),
	}, nil
}

func validScale(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}

// Decode renders img into a new bitmap at its native pixel resolution
// (logical size times scale).
//
// The image is first drawn into a premultiplied RGBA bitmap context with a
// stride of width*4 and then unpremultiplied into Pixels. When a target size
// is requested with WithTargetSize and differs from the native one, the
// image is resampled with the configured interpolator.
func Decode(img *Image, opts ...DecodeOption) (*PixelBitmap, error) {
	if img == nil || img.src == nil {
		return nil, fmt.Errorf("%w: nil image", ErrDecodeFailure)
	}

	o := defaultDecodeOptions()
	for _, opt := range opts {
		opt(&o)
	}

	sr := img.src.Bounds()
	size := img.PixelSize()
	if o.size != (image.Point{}) {
		size = o.size
	}

	b, err := New(size.X, size.Y, img.scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}

	ctx := image.NewRGBA(image.Rect(0, 0, size.X, size.Y))
	if sr.Size() == size {
		xdraw.Copy(ctx, image.Point{}, img.src, sr, xdraw.Src, nil)
	} else {
		o.interp.Scale(ctx, ctx.Bounds(), img.src, sr, xdraw.Src, nil)
	}

	for i := range b.pix {
		off := i * 4
		b.pix[i] = unpremultiply(ctx.Pix[off], ctx.Pix[off+1], ctx.Pix[off+2], ctx.Pix[off+3])
	}

	Logger().Debug("decoded bitmap",
		"name", img.name,
		"width", b.width,
		"height", b.height,
		"scale", b.scale,
		"resampled", sr.Size() != size)

	return b, nil
}

// Encode writes the bitmap into a new premultiplied RGBA image (top-left
// origin, stride width*4) and wraps it at the bitmap's scale.
func (b *PixelBitmap) Encode() (*Image, error) {
	if b.width <= 0 || b.height <= 0 || len(b.pix) != b.width*b.height {
		return nil, fmt.Errorf("%w: %w: %dx%d with %d pixels",
			ErrEncodeFailure, ErrInvalidDimensions, b.width, b.height, len(b.pix))
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	if dst.Stride != b.width*4 {
		return nil, fmt.Errorf("%w: unexpected stride %d", ErrEncodeFailure, dst.Stride)
	}
	for i, p := range b.pix {
		off := i * 4
		dst.Pix[off], dst.Pix[off+1], dst.Pix[off+2], dst.Pix[off+3] = p.premultiplied()
	}

	Logger().Debug("encoded bitmap", "width", b.width, "height", b.height, "scale", b.scale)

	return &Image{src: dst, scale: b.scale}, nil
}

// Width returns the width in pixels.
func (b *PixelBitmap) Width() int {
	return b.width
}

// Height returns the height in pixels.
func (b *PixelBitmap) Height() int {
	return b.height
}

// Scale returns the device scale factor (pixels per logical unit).
func (b *PixelBitmap) Scale() float64 {
	return b.scale
}

// Len returns the number of pixels, width*height.
func (b *PixelBitmap) Len() int {
	return len(b.pix)
}

// PixelAt returns the pixel at a linear row-major position.
// The boolean is false when position is outside [0, Len()).
func (b *PixelBitmap) PixelAt(position int) (Pixel, bool) {
	if position < 0 || position >= len(b.pix) {
		return Pixel{}, false
	}
	return b.pix[position], true
}

// PixelAtCoord returns the pixel at (row, column).
// The boolean is false when the coordinate lies outside the bitmap.
func (b *PixelBitmap) PixelAtCoord(row, column int) (Pixel, bool) {
	i, ok := b.index(row, column)
	if !ok {
		return Pixel{}, false
	}
	return b.pix[i], true
}

// SetPixelAt replaces the pixel at a linear position.
// It returns ErrIndexOutOfRange and leaves the bitmap untouched when
// position is outside [0, Len()).
func (b *PixelBitmap) SetPixelAt(position int, p Pixel) error {
	if position < 0 || position >= len(b.pix) {
		return fmt.Errorf("%w: position %d, len %d", ErrIndexOutOfRange, position, len(b.pix))
	}
	b.pix[position] = p
	return nil
}

// SetPixelAtCoord replaces the pixel at (row, column).
// It returns ErrIndexOutOfRange and leaves the bitmap untouched when the
// coordinate lies outside the bitmap.
func (b *PixelBitmap) SetPixelAtCoord(row, column int, p Pixel) error {
	i, ok := b.index(row, column)
	if !ok {
		return fmt.Errorf("%w: row %d, column %d in %dx%d", ErrIndexOutOfRange, row, column, b.width, b.height)
	}
	b.pix[i] = p
	return nil
}

func (b *PixelBitmap) index(row, column int) (int, bool) {
	if row < 0 || row >= b.height || column < 0 || column >= b.width {
		return 0, false
	}
	return row*b.width + column, true
}

// Fill sets every pixel to p.
func (b *PixelBitmap) Fill(p Pixel) {
	for i := range b.pix {
		b.pix[i] = p
	}
}

// Clone returns a deep copy of the bitmap.
func (b *PixelBitmap) Clone() *PixelBitmap {
	return &PixelBitmap{
		width:  b.width,
		height: b.height,
		scale:  b.scale,
		pix:    slices.Clone(b.pix),
	}
}

// Equal reports whether both bitmaps have the same dimensions, scale and
// pixels.
func (b *PixelBitmap) Equal(o *PixelBitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.width == o.width &&
		b.height == o.height &&
		b.scale == o.scale &&
		slices.Equal(b.pix, o.pix)
}

// All returns an iterator over (position, pixel) pairs in ascending
// position order.
func (b *PixelBitmap) All() iter.Seq2[int, Pixel] {
	return func(yield func(int, Pixel) bool) {
		for i, p := range b.pix {
			if !yield(i, p) {
				return
			}
		}
	}
}

// String returns a short description of the bitmap.
func (b *PixelBitmap) String() string {
	return fmt.Sprintf("PixelBitmap(%dx%d@%gx)", b.width, b.height, b.scale)
}

// Bounds implements image.Image. X is the column and Y the row.
func (b *PixelBitmap) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements image.Image.
func (b *PixelBitmap) ColorModel() color.Model {
	return PixelModel
}

// At implements image.Image. Points outside the bitmap are transparent.
func (b *PixelBitmap) At(x, y int) color.Color {
	p, ok := b.PixelAtCoord(y, x)
	if !ok {
		return color.Transparent
	}
	return p
}

// Set implements draw.Image. As the draw.Image contract requires, points
// outside the bitmap are ignored; use SetPixelAtCoord to get an error.
func (b *PixelBitmap) Set(x, y int, c color.Color) {
	if i, ok := b.index(y, x); ok {
		b.pix[i] = pixelModel(c).(Pixel)
	}
}

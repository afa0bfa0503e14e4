package bitmap

import (
	"fmt"
	"image"
)

// Image is an opaque bitmap image: a decoded image.Image plus the device
// scale it was authored for. Its logical size is the pixel size divided by
// the scale, so an image loaded from "icon@2x.png" with 64x64 pixels is
// 32x32 logical units.
//
// Image values are immutable; Decode copies pixels out and Encode builds a
// fresh Image.
type Image struct {
	src   image.Image
	scale float64
	name  string
}

// NewImage wraps src at the given device scale.
func NewImage(src image.Image, scale float64) (*Image, error) {
	if src == nil || src.Bounds().Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidDimensions)
	}
	if !validScale(scale) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidDimensions, scale)
	}
	return &Image{src: src, scale: scale}, nil
}

// Name returns the name the image was loaded under, if any.
func (i *Image) Name() string {
	return i.name
}

// Scale returns the device scale factor.
func (i *Image) Scale() float64 {
	return i.scale
}

// PixelSize returns the native size in pixels.
func (i *Image) PixelSize() image.Point {
	return i.src.Bounds().Size()
}

// Size returns the logical size, in points.
func (i *Image) Size() (width, height float64) {
	s := i.PixelSize()
	return float64(s.X) / i.scale, float64(s.Y) / i.scale
}

// Std returns the underlying image. Encoded images are *image.RGBA with a
// top-left origin.
func (i *Image) Std() image.Image {
	return i.src
}

// ToPixels decodes the image into a PixelBitmap. It is shorthand for Decode.
func (i *Image) ToPixels(opts ...DecodeOption) (*PixelBitmap, error) {
	return Decode(i, opts...)
}

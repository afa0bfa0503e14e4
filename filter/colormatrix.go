package filter

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/gogpu/bitmap"
)

// ColorMatrix applies a 4x5 color transformation matrix to each pixel.
// The transformation is:
//
//	[R']   [a00 a01 a02 a03 a04]   [R]
//	[G'] = [a10 a11 a12 a13 a14] * [G]
//	[B']   [a20 a21 a22 a23 a24]   [B]
//	[A']   [a30 a31 a32 a33 a34]   [A]
//	                               [1]
//
// The fifth column provides bias/offset values.
// Channels are straight (non-premultiplied) and in [0, 255] during the
// transformation, then rounded and clamped back.
type ColorMatrix struct {
	// Matrix is the 4x5 transformation matrix in row-major order.
	// [0-4] = row 0 (R), [5-9] = row 1 (G), [10-14] = row 2 (B), [15-19] = row 3 (A)
	Matrix [20]float32
}

// NewColorMatrix creates a color matrix filter with the given matrix.
func NewColorMatrix(matrix [20]float32) *ColorMatrix {
	return &ColorMatrix{Matrix: matrix}
}

// Identity creates a color matrix that passes pixels through unchanged.
func Identity() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			1, 0, 0, 0, 0, // R
			0, 1, 0, 0, 0, // G
			0, 0, 1, 0, 0, // B
			0, 0, 0, 1, 0, // A
		},
	}
}

// Brightness scales the color channels.
// factor: 0.0 = black, 1.0 = unchanged, 2.0 = twice as bright
func Brightness(factor float32) *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, 0,
			0, factor, 0, 0, 0,
			0, 0, factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Contrast scales the color channels around mid-gray.
// factor: 0.0 = gray, 1.0 = unchanged, 2.0 = high contrast
func Contrast(factor float32) *ColorMatrix {
	// (color - 128) * factor + 128
	offset := 128 * (1 - factor)
	return &ColorMatrix{
		Matrix: [20]float32{
			factor, 0, 0, 0, offset,
			0, factor, 0, 0, offset,
			0, 0, factor, 0, offset,
			0, 0, 0, 1, 0,
		},
	}
}

// Rec. 709 luminance weights.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Saturation blends between luminance and the original color.
// factor: 0.0 = grayscale, 1.0 = unchanged, 2.0 = oversaturated
func Saturation(factor float32) *ColorMatrix {
	inv := 1 - factor
	return &ColorMatrix{
		Matrix: [20]float32{
			lumR*inv + factor, lumG * inv, lumB * inv, 0, 0,
			lumR * inv, lumG*inv + factor, lumB * inv, 0, 0,
			lumR * inv, lumG * inv, lumB*inv + factor, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Grayscale converts to gray using Rec. 709 luminance weights.
func Grayscale() *ColorMatrix {
	return Saturation(0)
}

// Sepia applies a sepia tone.
func Sepia() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			0.393, 0.769, 0.189, 0, 0,
			0.349, 0.686, 0.168, 0, 0,
			0.272, 0.534, 0.131, 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Invert replaces each color channel c with 255-c. Alpha is unchanged.
func Invert() *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			-1, 0, 0, 0, 255,
			0, -1, 0, 0, 255,
			0, 0, -1, 0, 255,
			0, 0, 0, 1, 0,
		},
	}
}

// HueRotate rotates hue by the given angle in degrees.
func HueRotate(degrees float32) *ColorMatrix {
	rad := degrees * math32.Pi / 180
	sin, cos := math32.Sincos(rad)

	const (
		r = 0.213
		g = 0.715
		b = 0.072
	)

	return &ColorMatrix{
		Matrix: [20]float32{
			r + cos*(1-r) + sin*(-r), g + cos*(-g) + sin*(-g), b + cos*(-b) + sin*(1-b), 0, 0,
			r + cos*(-r) + sin*(0.143), g + cos*(1-g) + sin*(0.140), b + cos*(-b) + sin*(-0.283), 0, 0,
			r + cos*(-r) + sin*(-(1 - r)), g + cos*(-g) + sin*(g), b + cos*(1-b) + sin*(b), 0, 0,
			0, 0, 0, 1, 0,
		},
	}
}

// Opacity multiplies alpha by factor.
// factor: 0.0 = fully transparent, 1.0 = unchanged
func Opacity(factor float32) *ColorMatrix {
	return &ColorMatrix{
		Matrix: [20]float32{
			1, 0, 0, 0, 0,
			0, 1, 0, 0, 0,
			0, 0, 1, 0, 0,
			0, 0, 0, factor, 0,
		},
	}
}

// Tint blends every pixel toward tint by the tint's alpha.
// Colors outside the monochrome and RGB models are rejected.
func Tint(tint bitmap.Color) (*ColorMatrix, error) {
	tr, tg, tb, f, err := tint.Components()
	if err != nil {
		return nil, fmt.Errorf("filter: tint: %w", err)
	}
	inv := 1 - f

	return &ColorMatrix{
		Matrix: [20]float32{
			inv, 0, 0, 0, tr * 255 * f,
			0, inv, 0, 0, tg * 255 * f,
			0, 0, inv, 0, tb * 255 * f,
			0, 0, 0, 1, 0,
		},
	}, nil
}

// Pixel transforms a single pixel.
func (m *ColorMatrix) Pixel(p bitmap.Pixel) bitmap.Pixel {
	r8, g8, b8, a8 := p.RGBA8()
	r, g, b, a := float32(r8), float32(g8), float32(b8), float32(a8)
	x := &m.Matrix

	return bitmap.RGBA8(
		clampByte(x[0]*r+x[1]*g+x[2]*b+x[3]*a+x[4]),
		clampByte(x[5]*r+x[6]*g+x[7]*b+x[8]*a+x[9]),
		clampByte(x[10]*r+x[11]*g+x[12]*b+x[13]*a+x[14]),
		clampByte(x[15]*r+x[16]*g+x[17]*b+x[18]*a+x[19]),
	)
}

// Apply returns a new bitmap with the matrix applied to every pixel.
func (m *ColorMatrix) Apply(b *bitmap.PixelBitmap, opts ...bitmap.MapOption) *bitmap.PixelBitmap {
	return b.Map(m.Pixel, opts...)
}

// Then returns the product matrix that applies m and then next in one step.
// Unlike two separate passes it does not clamp or round in between, so the
// results differ when m saturates a channel.
func (m *ColorMatrix) Then(next *ColorMatrix) *ColorMatrix {
	a := &next.Matrix
	b := &m.Matrix

	result := &ColorMatrix{}
	r := &result.Matrix

	// next * m, treating the 5th column as a constant input of 1.
	for row := range 4 {
		for col := range 4 {
			var sum float32
			for k := range 4 {
				sum += a[row*5+k] * b[k*5+col]
			}
			r[row*5+col] = sum
		}
		r[row*5+4] = a[row*5+0]*b[4] + a[row*5+1]*b[9] +
			a[row*5+2]*b[14] + a[row*5+3]*b[19] + a[row*5+4]
	}

	return result
}

func clampByte(v float32) uint8 {
	if !(v > 0) { // also catches NaN
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math32.Round(v))
}

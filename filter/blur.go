package filter

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/bitmap"
)

// MaxBlurRadius is the largest radius a blur kernel is built for.
const MaxBlurRadius = 128

// Blur is a separable convolution blur. Color is weighted by alpha so that
// transparent pixels do not bleed their color into opaque neighbors. Edges
// are clamped.
type Blur struct {
	kernel []float32
}

// NewBlur creates a Gaussian blur whose standard deviation is radius; the
// kernel spans 3*radius pixels on each side. A radius of 0 or less yields an
// identity filter and radii above MaxBlurRadius are clamped.
func NewBlur(radius float64) *Blur {
	return &Blur{kernel: CachedGaussianKernel(radius)}
}

// NewBoxBlur creates a box blur averaging 2*radius+1 pixels per axis.
// Radii above MaxBlurRadius are clamped.
func NewBoxBlur(radius int) *Blur {
	return &Blur{kernel: BoxKernel(radius)}
}

// KernelSize returns the number of taps per axis.
func (f *Blur) KernelSize() int {
	return len(f.kernel)
}

// Apply blurs b horizontally and then vertically.
func (f *Blur) Apply(b *bitmap.PixelBitmap, opts ...bitmap.MapOption) *bitmap.PixelBitmap {
	if len(f.kernel) == 1 {
		return b.Clone()
	}
	h := f.pass(b, 0, 1, opts)
	return f.pass(h, 1, 0, opts)
}

// pass convolves src along one axis; (dr, dc) is the unit step.
func (f *Blur) pass(src *bitmap.PixelBitmap, dr, dc int, opts []bitmap.MapOption) *bitmap.PixelBitmap {
	half := len(f.kernel) / 2
	maxRow, maxCol := src.Height()-1, src.Width()-1

	return src.MapCoordinate(func(row, col int, _ bitmap.Pixel) bitmap.Pixel {
		var sr, sg, sb, sa float32
		for i, k := range f.kernel {
			off := i - half
			r := min(max(row+off*dr, 0), maxRow)
			c := min(max(col+off*dc, 0), maxCol)
			p, _ := src.PixelAtCoord(r, c)
			pr, pg, pb, pa := p.RGBA8()
			wa := k * float32(pa)
			sr += wa * float32(pr)
			sg += wa * float32(pg)
			sb += wa * float32(pb)
			sa += wa
		}
		if sa <= 0 {
			return bitmap.Pixel{}
		}
		return bitmap.RGBA8(clampByte(sr/sa), clampByte(sg/sa), clampByte(sb/sa), clampByte(math32.Min(sa, 255)))
	}, opts...)
}

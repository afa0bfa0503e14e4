package bitmap

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// DecodeOption configures Decode.
//
// Example:
//
//	// Native resolution
//	b, err := bitmap.Decode(img)
//
//	// Resampled to 64x64 with bilinear filtering
//	b, err := bitmap.Decode(img,
//		bitmap.WithTargetSize(64, 64),
//		bitmap.WithInterpolator(xdraw.BiLinear))
type DecodeOption func(*decodeOptions)

// decodeOptions holds optional configuration for Decode.
type decodeOptions struct {
	size   image.Point // zero means native
	interp xdraw.Interpolator
}

// defaultDecodeOptions returns the default decode options.
func defaultDecodeOptions() decodeOptions {
	return decodeOptions{
		interp: xdraw.CatmullRom,
	}
}

// WithTargetSize decodes into a width x height bitmap, resampling when the
// image's pixel size differs. Non-positive values keep the native size.
func WithTargetSize(width, height int) DecodeOption {
	return func(o *decodeOptions) {
		if width > 0 && height > 0 {
			o.size = image.Pt(width, height)
		}
	}
}

// WithInterpolator sets the resampling kernel used with WithTargetSize.
// A nil interpolator is ignored.
func WithInterpolator(i xdraw.Interpolator) DecodeOption {
	return func(o *decodeOptions) {
		if i != nil {
			o.interp = i
		}
	}
}

// DefaultParallelThreshold is the pixel count below which Map and Transform
// run on the calling goroutine.
const DefaultParallelThreshold = 16384

// MapOption configures Transform, Map, MapPosition and MapCoordinate.
type MapOption func(*mapOptions)

type mapOptions struct {
	workers   int
	threshold int
}

func defaultMapOptions() mapOptions {
	return mapOptions{threshold: DefaultParallelThreshold}
}

// WithWorkers sets the number of bands the bitmap is split into.
// 1 forces a serial traversal; 0 or less picks a default from GOMAXPROCS.
func WithWorkers(n int) MapOption {
	return func(o *mapOptions) {
		o.workers = n
	}
}

// WithParallelThreshold sets the minimum pixel count for a parallel
// traversal. Zero or less always parallelizes.
func WithParallelThreshold(pixels int) MapOption {
	return func(o *mapOptions) {
		o.threshold = pixels
	}
}

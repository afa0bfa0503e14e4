package bitmap

import (
	"errors"
	"fmt"

	"github.com/gogpu/bitmap/internal/parallel"
)

// ErrNilTransform is returned by Transform when the function is nil.
var ErrNilTransform = errors.New("bitmap: nil transform")

// Coord locates a pixel by linear position and by (row, column).
// Row is Position / Width and Column is Position % Width.
type Coord struct {
	Position int
	Row      int
	Column   int
}

// TransformFunc computes the output pixel for one input pixel.
type TransformFunc func(c Coord, p Pixel) (Pixel, error)

// Transform builds a new bitmap of the same size and scale by calling fn once
// for every pixel. The receiver is never modified.
//
// Large bitmaps are split into contiguous bands that run in parallel, so fn
// must be safe for concurrent use and must not rely on visiting order. If fn
// fails anywhere, Transform returns the error for the lowest failing position
// and no bitmap.
func (b *PixelBitmap) Transform(fn TransformFunc, opts ...MapOption) (*PixelBitmap, error) {
	if fn == nil {
		return nil, ErrNilTransform
	}

	o := defaultMapOptions()
	for _, opt := range opts {
		opt(&o)
	}

	out := &PixelBitmap{
		width:  b.width,
		height: b.height,
		scale:  b.scale,
		pix:    make([]Pixel, len(b.pix)),
	}

	n := len(b.pix)
	if n == 0 {
		return out, nil
	}
	bands := o.workers
	if n < o.threshold {
		bands = 1
	}
	if bands <= 0 {
		bands = parallel.Default().Workers() * 4
	}

	if bands == 1 {
		if err := b.transformSpan(out, fn, 0, n); err != nil {
			return nil, err
		}
		return out, nil
	}

	bands = min(bands, n)
	errs := make([]error, bands)
	panics := make([]any, bands)
	parallel.Default().Range(n, bands, func(band, start, end int) {
		defer func() {
			if r := recover(); r != nil {
				panics[band] = r
			}
		}()
		errs[band] = b.transformSpan(out, fn, start, end)
	})

	Logger().Debug("parallel transform", "pixels", n, "bands", bands)

	for band := range bands {
		if panics[band] != nil {
			panic(panics[band])
		}
		if errs[band] != nil {
			return nil, errs[band]
		}
	}
	return out, nil
}

// transformSpan fills out[start:end] and stops at the first failure.
func (b *PixelBitmap) transformSpan(out *PixelBitmap, fn TransformFunc, start, end int) error {
	w := b.width
	row, col := start/w, start%w
	for i := start; i < end; i++ {
		p, err := fn(Coord{Position: i, Row: row, Column: col}, b.pix[i])
		if err != nil {
			return fmt.Errorf("bitmap: transform at position %d (row %d, column %d): %w", i, row, col, err)
		}
		out.pix[i] = p
		if col++; col == w {
			col = 0
			row++
		}
	}
	return nil
}

// Map returns a new bitmap with fn applied to every pixel value.
func (b *PixelBitmap) Map(fn func(Pixel) Pixel, opts ...MapOption) *PixelBitmap {
	return b.mustTransform(func(_ Coord, p Pixel) (Pixel, error) {
		return fn(p), nil
	}, opts)
}

// MapPosition returns a new bitmap with fn applied to every pixel and its
// linear position.
func (b *PixelBitmap) MapPosition(fn func(position int, p Pixel) Pixel, opts ...MapOption) *PixelBitmap {
	return b.mustTransform(func(c Coord, p Pixel) (Pixel, error) {
		return fn(c.Position, p), nil
	}, opts)
}

// MapCoordinate returns a new bitmap with fn applied to every pixel and its
// (row, column) coordinate.
func (b *PixelBitmap) MapCoordinate(fn func(row, column int, p Pixel) Pixel, opts ...MapOption) *PixelBitmap {
	return b.mustTransform(func(c Coord, p Pixel) (Pixel, error) {
		return fn(c.Row, c.Column, p), nil
	}, opts)
}

func (b *PixelBitmap) mustTransform(fn TransformFunc, opts []MapOption) *PixelBitmap {
	out, err := b.Transform(fn, opts...)
	if err != nil {
		// Infallible wrappers never produce an error.
		panic(err)
	}
	return out
}

package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gogpu/bitmap"
)

// Filter errors.
var (
	// ErrUnknownFilter is returned by ByName for an unrecognized filter name.
	ErrUnknownFilter = errors.New("filter: unknown filter")

	// ErrInvalidRadius is returned by ByName for a blur radius above
	// MaxBlurRadius or one that is not a number.
	ErrInvalidRadius = errors.New("filter: invalid radius")
)

// Filter transforms a bitmap into a new one of the same size.
type Filter interface {
	Apply(b *bitmap.PixelBitmap, opts ...bitmap.MapOption) *bitmap.PixelBitmap
}

// Chain applies filters in order. Runs of adjacent color matrices share a
// single traversal; each matrix still clamps and rounds before the next, so
// the result equals applying the filters one at a time.
type Chain []Filter

// Apply runs the chain over b. An empty chain returns a clone of b.
func (c Chain) Apply(b *bitmap.PixelBitmap, opts ...bitmap.MapOption) *bitmap.PixelBitmap {
	out := b
	passes := 0
	var pending []*ColorMatrix

	flush := func() {
		switch len(pending) {
		case 0:
			return
		case 1:
			out = pending[0].Apply(out, opts...)
		default:
			run := pending
			out = out.Map(func(p bitmap.Pixel) bitmap.Pixel {
				for _, m := range run {
					p = m.Pixel(p)
				}
				return p
			}, opts...)
		}
		pending = nil
		passes++
	}

	for _, f := range c {
		if m, ok := f.(*ColorMatrix); ok {
			pending = append(pending, m)
			continue
		}
		flush()
		out = f.Apply(out, opts...)
		passes++
	}
	flush()

	bitmap.Logger().Debug("applied filter chain", "filters", len(c), "passes", passes)

	if out == b {
		return b.Clone()
	}
	return out
}

// Names lists the names accepted by ByName.
func Names() []string {
	return []string{
		"identity", "invert", "grayscale", "sepia",
		"brightness", "contrast", "saturation", "opacity", "hue",
		"blur", "boxblur",
	}
}

// ByName builds a filter from its name. amount is the factor for brightness,
// contrast, saturation and opacity, the angle in degrees for hue, and the
// radius for blur and boxblur, which must not exceed MaxBlurRadius. It is
// ignored by the others.
func ByName(name string, amount float64) (Filter, error) {
	a := float32(amount)
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "identity":
		return Identity(), nil
	case "invert":
		return Invert(), nil
	case "grayscale", "greyscale":
		return Grayscale(), nil
	case "sepia":
		return Sepia(), nil
	case "brightness":
		return Brightness(a), nil
	case "contrast":
		return Contrast(a), nil
	case "saturation":
		return Saturation(a), nil
	case "opacity":
		return Opacity(a), nil
	case "hue":
		return HueRotate(a), nil
	case "blur":
		if err := checkRadius(amount); err != nil {
			return nil, err
		}
		return NewBlur(amount), nil
	case "boxblur":
		if err := checkRadius(amount); err != nil {
			return nil, err
		}
		return NewBoxBlur(int(amount)), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

func checkRadius(r float64) error {
	if !(r <= MaxBlurRadius) {
		return fmt.Errorf("%w: %v, max %d", ErrInvalidRadius, r, MaxBlurRadius)
	}
	return nil
}

// Parse builds a chain from a comma-separated list of names, all sharing
// one amount.
func Parse(list string, amount float64) (Chain, error) {
	var c Chain
	for name := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := ByName(name, amount)
		if err != nil {
			return nil, err
		}
		c = append(c, f)
	}
	return c, nil
}

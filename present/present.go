// Package present pushes bitmaps to periph.io display devices.
package present

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/conn/v3/display"

	"github.com/gogpu/bitmap"
)

// ErrOutsideDisplay is returned when the destination does not overlap the
// display.
var ErrOutsideDisplay = errors.New("present: destination outside display")

// Show draws b at the display's origin. Pixels beyond the display bounds are
// clipped.
func Show(d display.Drawer, b *bitmap.PixelBitmap) error {
	origin := d.Bounds().Min
	return ShowAt(d, b, image.Rectangle{Min: origin, Max: origin.Add(b.Bounds().Size())})
}

// ShowAt draws b into dst on the display, which enables partial updates.
// The bitmap's top-left pixel lands at dst.Min; the area drawn is dst
// clipped to both the display and the bitmap.
func ShowAt(d display.Drawer, b *bitmap.PixelBitmap, dst image.Rectangle) error {
	img, err := b.Encode()
	if err != nil {
		return fmt.Errorf("present: %w", err)
	}

	src := img.Std()
	full := image.Rectangle{Min: dst.Min, Max: dst.Min.Add(src.Bounds().Size())}
	r := dst.Intersect(full).Intersect(d.Bounds())
	if r.Empty() {
		return fmt.Errorf("%w: %v not in %v", ErrOutsideDisplay, dst, d.Bounds())
	}

	sp := src.Bounds().Min.Add(r.Min.Sub(dst.Min))
	if err := d.Draw(r, src, sp); err != nil {
		return fmt.Errorf("present: draw on %s: %w", d, err)
	}

	bitmap.Logger().Debug("presented bitmap", "display", d.String(), "rect", r)
	return nil
}

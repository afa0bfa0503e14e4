// Package bitmap provides direct pixel access to images and a parallel
// per-pixel transform engine.
//
// # Overview
//
// An Image is an opaque, immutable picture with a device scale. Decoding it
// yields a PixelBitmap: a row-major buffer of straight-alpha RGBA Pixels that
// can be read, written and mapped, then encoded back into an Image.
//
// # Quick Start
//
//	import "github.com/gogpu/bitmap"
//
//	img, err := bitmap.Open("photo@2x.png")
//	if err != nil {
//		return err
//	}
//	b, err := bitmap.Decode(img)
//	if err != nil {
//		return err
//	}
//
//	// Invert every pixel, keeping alpha
//	inv := b.Map(func(p bitmap.Pixel) bitmap.Pixel {
//		r, g, b, a := p.RGBA8()
//		return bitmap.RGBA8(255-r, 255-g, 255-b, a)
//	})
//
//	out, err := inv.Encode()
//	if err != nil {
//		return err
//	}
//	return out.Save("inverted.png")
//
// # Coordinate System
//
//   - Position is the linear index: row*Width + column
//   - Origin (0,0) at top-left, columns increase right, rows increase down
//   - Width and Height are in pixels: logical size times Scale
//
// # Memory Layout
//
// At the Decode/Encode boundary pixels are 4 bytes, R,G,B,A order,
// premultiplied, with a stride of Width*4. Inside a PixelBitmap they are
// straight alpha.
//
// # Ownership
//
// A PixelBitmap owns its storage exclusively. Map, MapPosition,
// MapCoordinate and Transform always return a fresh bitmap and never modify
// the receiver; Clone is the only explicit copy.
package bitmap

// Version is the current version of the library.
const Version = "0.1.0"

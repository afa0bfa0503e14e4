package bitmap

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/chewxy/math32"
	"golang.org/x/image/colornames"
)

// ErrUnsupportedColorSpace is returned when a Color is expressed in a model
// other than monochrome or RGB and is asked for its RGB components.
var ErrUnsupportedColorSpace = errors.New("bitmap: unsupported color space")

// ColorModel identifies the color-space model a Color was expressed in.
type ColorModel uint8

const (
	// ModelUnknown is used for colors whose model could not be identified.
	ModelUnknown ColorModel = iota

	// ModelMonochrome is a single white level plus alpha.
	ModelMonochrome

	// ModelRGB is red, green and blue plus alpha.
	ModelRGB

	// ModelCMYK is cyan, magenta, yellow and key.
	ModelCMYK

	// ModelYCbCr is luma plus two chroma components.
	ModelYCbCr

	// ModelIndexed is a palette index.
	ModelIndexed
)

// String returns the model name.
func (m ColorModel) String() string {
	switch m {
	case ModelMonochrome:
		return "Monochrome"
	case ModelRGB:
		return "RGB"
	case ModelCMYK:
		return "CMYK"
	case ModelYCbCr:
		return "YCbCr"
	case ModelIndexed:
		return "Indexed"
	default:
		return "Unknown"
	}
}

// Color is a color value that remembers the model it was expressed in.
// Components are nominally in [0, 1]; they are clamped only when stored
// into a Pixel.
//
// The zero Color is an unknown-model color and fails conversion.
type Color struct {
	model ColorModel

	// v holds white (monochrome) or red, green, blue (RGB).
	v [3]float32
	a float32

	// std keeps the source value for models that are not converted.
	std color.Color
}

// RGB creates an opaque RGB color.
func RGB(r, g, b float32) Color {
	return RGBA(r, g, b, 1)
}

// RGBA creates an RGB color with alpha. Arguments range from 0 to 1.
func RGBA(r, g, b, a float32) Color {
	return Color{model: ModelRGB, v: [3]float32{r, g, b}, a: a}
}

// Mono creates a grayscale color. Arguments range from 0 to 1.
func Mono(white, alpha float32) Color {
	return Color{model: ModelMonochrome, v: [3]float32{white, white, white}, a: alpha}
}

// HSB creates a color from hue, saturation and brightness, all in [0, 1].
// The result is stored in the RGB model.
func HSB(hue, saturation, brightness, alpha float32) Color {
	h := hue - math32.Floor(hue)
	s := clampUnit(saturation)
	v := clampUnit(brightness)
	if s == 0 {
		return RGBA(v, v, v, alpha)
	}

	sector := h * 6
	i := math32.Floor(sector)
	f := sector - i
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch int(i) % 6 {
	case 0:
		return RGBA(v, t, p, alpha)
	case 1:
		return RGBA(q, v, p, alpha)
	case 2:
		return RGBA(p, v, t, alpha)
	case 3:
		return RGBA(p, q, v, alpha)
	case 4:
		return RGBA(t, p, v, alpha)
	default:
		return RGBA(v, p, q, alpha)
	}
}

// Hex creates a color from a 0xRRGGBB value and an alpha in [0, 1].
//
//	c := bitmap.Hex(0x336699, 0.2)
func Hex(hex uint32, alpha float32) Color {
	r := float32((hex>>16)&0xff) / 255
	g := float32((hex>>8)&0xff) / 255
	b := float32(hex&0xff) / 255
	return RGBA(r, g, b, alpha)
}

// Named returns the SVG 1.1 color with the given name, e.g. "cornflowerblue".
// Lookup is case-insensitive.
func Named(name string) (Color, bool) {
	c, ok := colornames.Map[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Color{}, false
	}
	return FromStd(c), true
}

// FromStd converts a standard library color into a Color, keeping track of
// its model. Gray types become monochrome; RGBA and NRGBA types become RGB.
// CMYK, YCbCr and paletted colors keep their model and fail conversion.
func FromStd(c color.Color) Color {
	switch c := c.(type) {
	case Color:
		return c
	case Pixel:
		return c.Color()
	case color.Gray:
		return Mono(float32(c.Y)/0xff, 1)
	case color.Gray16:
		return Mono(float32(c.Y)/0xffff, 1)
	case color.Alpha:
		return Mono(1, float32(c.A)/0xff)
	case color.Alpha16:
		return Mono(1, float32(c.A)/0xffff)
	case color.NRGBA:
		return RGBA(float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff)
	case color.NRGBA64:
		return RGBA(float32(c.R)/0xffff, float32(c.G)/0xffff, float32(c.B)/0xffff, float32(c.A)/0xffff)
	case color.RGBA, color.RGBA64:
		return fromPremultiplied(c)
	case color.CMYK:
		return Color{model: ModelCMYK, std: c}
	case color.YCbCr, color.NYCbCrA:
		return Color{model: ModelYCbCr, std: c}
	case nil:
		return Color{}
	default:
		return Color{model: ModelUnknown, std: c}
	}
}

func fromPremultiplied(c color.Color) Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return RGBA(0, 0, 0, 0)
	}
	fa := float32(a)
	return RGBA(float32(r)/fa, float32(g)/fa, float32(b)/fa, fa/0xffff)
}

// Model returns the color-space model this color was expressed in.
func (c Color) Model() ColorModel {
	return c.model
}

// Components returns the color as straight (non-premultiplied) RGBA
// components. Monochrome colors replicate their white level into all three
// channels. Any other model yields ErrUnsupportedColorSpace.
func (c Color) Components() (r, g, b, a float32, err error) {
	switch c.model {
	case ModelMonochrome, ModelRGB:
		return c.v[0], c.v[1], c.v[2], c.a, nil
	default:
		return 0, 0, 0, 0, fmt.Errorf("%w: %s", ErrUnsupportedColorSpace, c.model)
	}
}

// Std returns the color as a standard library color. Monochrome and RGB
// colors become color.NRGBA; other models return the value they were
// created from.
func (c Color) Std() color.Color {
	switch c.model {
	case ModelMonochrome, ModelRGB:
		return color.NRGBA{
			R: quantize(c.v[0]),
			G: quantize(c.v[1]),
			B: quantize(c.v[2]),
			A: quantize(c.a),
		}
	default:
		if c.std == nil {
			return color.Transparent
		}
		return c.std
	}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.Std().RGBA()
}

// String returns a readable representation of the color.
func (c Color) String() string {
	switch c.model {
	case ModelMonochrome:
		return fmt.Sprintf("Mono(%.3g, %.3g)", c.v[0], c.a)
	case ModelRGB:
		return fmt.Sprintf("RGBA(%.3g, %.3g, %.3g, %.3g)", c.v[0], c.v[1], c.v[2], c.a)
	default:
		return fmt.Sprintf("%s(%v)", c.model, c.std)
	}
}

// Common colors. The grays are monochrome, the rest RGB.
var (
	Black     = Mono(0, 1)
	DarkGray  = Mono(1.0/3, 1)
	LightGray = Mono(2.0/3, 1)
	White     = Mono(1, 1)
	Gray      = Mono(0.5, 1)
	Red       = RGB(1, 0, 0)
	Green     = RGB(0, 1, 0)
	Blue      = RGB(0, 0, 1)
	Cyan      = RGB(0, 1, 1)
	Yellow    = RGB(1, 1, 0)
	Magenta   = RGB(1, 0, 1)
	Orange    = RGB(1, 0.5, 0)
	Purple    = RGB(0.5, 0, 0.5)
	Brown     = RGB(0.6, 0.4, 0.2)
	Clear     = Mono(0, 0)
)

// clampUnit restricts v to [0, 1]. NaN maps to 0.
func clampUnit(v float32) float32 {
	if math32.IsNaN(v) {
		return 0
	}
	return math32.Max(0, math32.Min(1, v))
}

// quantize maps a unit value to a byte: round(clamp(v, 0, 1) * 255).
func quantize(v float32) uint8 {
	return uint8(math32.Round(clampUnit(v) * 255))
}

package bitmap

import "image/color"

// Pixel is a single RGBA texel with straight (non-premultiplied) alpha.
//
// Channels are stored as bytes. The float accessors expose them in [0, 1];
// the setters clamp to that range and round, so a stored channel is always
// round(clamp(v, 0, 1) * 255).
type Pixel struct {
	r, g, b, a uint8
}

// PixelModel converts any color.Color to a Pixel.
var PixelModel color.Model = color.ModelFunc(pixelModel)

func pixelModel(c color.Color) color.Color {
	if p, ok := c.(Pixel); ok {
		return p
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Pixel{r: n.R, g: n.G, b: n.B, a: n.A}
}

// RGBA8 creates a pixel from raw byte channels.
func RGBA8(r, g, b, a uint8) Pixel {
	return Pixel{r: r, g: g, b: b, a: a}
}

// PixelOf creates a pixel from unit-range channels, clamping each one.
func PixelOf(r, g, b, a float32) Pixel {
	return Pixel{r: quantize(r), g: quantize(g), b: quantize(b), a: quantize(a)}
}

// RGBA8 returns the raw byte channels.
func (p Pixel) RGBA8() (r, g, b, a uint8) {
	return p.r, p.g, p.b, p.a
}

// Red returns the red channel in [0, 1].
func (p Pixel) Red() float32 { return float32(p.r) / 255 }

// Green returns the green channel in [0, 1].
func (p Pixel) Green() float32 { return float32(p.g) / 255 }

// Blue returns the blue channel in [0, 1].
func (p Pixel) Blue() float32 { return float32(p.b) / 255 }

// Alpha returns the alpha channel in [0, 1].
func (p Pixel) Alpha() float32 { return float32(p.a) / 255 }

// SetRed sets the red channel, clamping v to [0, 1].
func (p *Pixel) SetRed(v float32) { p.r = quantize(v) }

// SetGreen sets the green channel, clamping v to [0, 1].
func (p *Pixel) SetGreen(v float32) { p.g = quantize(v) }

// SetBlue sets the blue channel, clamping v to [0, 1].
func (p *Pixel) SetBlue(v float32) { p.b = quantize(v) }

// SetAlpha sets the alpha channel, clamping v to [0, 1].
func (p *Pixel) SetAlpha(v float32) { p.a = quantize(v) }

// Color returns the pixel as an RGB color.
func (p Pixel) Color() Color {
	return RGBA(p.Red(), p.Green(), p.Blue(), p.Alpha())
}

// SetColor replaces all four channels with c. Colors outside the monochrome
// and RGB models return ErrUnsupportedColorSpace and leave p unchanged.
func (p *Pixel) SetColor(c Color) error {
	r, g, b, a, err := c.Components()
	if err != nil {
		return err
	}
	*p = PixelOf(r, g, b, a)
	return nil
}

// RGBA implements color.Color. The returned values are alpha-premultiplied
// as the interface requires.
func (p Pixel) RGBA() (r, g, b, a uint32) {
	return color.NRGBA{R: p.r, G: p.g, B: p.b, A: p.a}.RGBA()
}

// premultiplied returns the pixel with color channels scaled by alpha,
// rounded to nearest.
func (p Pixel) premultiplied() (r, g, b, a uint8) {
	a16 := uint16(p.a)
	return uint8((uint16(p.r)*a16 + 127) / 255),
		uint8((uint16(p.g)*a16 + 127) / 255),
		uint8((uint16(p.b)*a16 + 127) / 255),
		p.a
}

// unpremultiply builds a straight-alpha pixel from premultiplied bytes.
// Fully transparent input yields transparent black.
func unpremultiply(r, g, b, a uint8) Pixel {
	switch a {
	case 0:
		return Pixel{}
	case 0xff:
		return Pixel{r: r, g: g, b: b, a: a}
	}
	a16 := uint16(a)
	half := a16 / 2
	return Pixel{
		r: unpremulChannel(r, a16, half),
		g: unpremulChannel(g, a16, half),
		b: unpremulChannel(b, a16, half),
		a: a,
	}
}

func unpremulChannel(c uint8, a, half uint16) uint8 {
	v := (uint16(c)*255 + half) / a
	if v > 255 {
		v = 255
	}
	return uint8(v)
}

package render

import (
	"image/color"

	"github.com/additionsdigital/gradientfollow/pkg/math3d"
	"github.com/lucasb-eyer/go-colorful"
)

// Color is an alias for color.RGBA for convenience.
type Color = color.RGBA

// Colors for convenience
var (
	ColorBlack = color.RGBA{0, 0, 0, 255}
	ColorWhite = color.RGBA{255, 255, 255, 255}
)

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return color.RGBA{r, g, b, 255}
}

// HSL is a color in hue/saturation/lightness space with every component in
// [0, 1]. Hue wraps, saturation and lightness are clamped.
type HSL struct {
	H, S, L float64
}

// Color converts h to an RGB color.
func (h HSL) Color() colorful.Color {
	return colorful.Hsl(math3d.Wrap(h.H, 1)*360, math3d.Saturate(h.S), math3d.Saturate(h.L))
}

// HSLOf returns the HSL components of c.
func HSLOf(c colorful.Color) HSL {
	h, s, l := c.Hsl()
	return HSL{H: h / 360, S: s, L: l}
}

// HexColor builds a color from a 0xRRGGBB literal.
func HexColor(hex uint32) colorful.Color {
	return colorful.Color{
		R: float64(hex>>16&0xff) / 255,
		G: float64(hex>>8&0xff) / 255,
		B: float64(hex&0xff) / 255,
	}
}

// ToRGBA clamps c into the displayable range.
func ToRGBA(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB(r, g, b)
}

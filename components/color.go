package components

// Color is an 8-bit RGBA color, not premultiplied. It is also the component
// that tints whatever an entity renders.
type Color struct {
	R, G, B, A uint8
}

const (
	Translucent uint8 = 0
	Opaque      uint8 = 255
)

// RGBA creates a color from its four channels.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: Opaque}
}

// Alpha returns the color with its alpha replaced by a factor in [0, 1].
func (c Color) Alpha(factor float32) Color {
	c.A = uint8(clamp01(factor) * float32(Opaque))
	return c
}

// Blend returns the linear interpolation between c and other. A factor of 0
// gives c, 1 gives other.
func (c Color) Blend(other Color, factor float32) Color {
	factor = clamp01(factor)
	mix := func(from, to uint8) uint8 {
		return uint8(float32(from)*(1-factor) + float32(to)*factor)
	}
	return Color{
		R: mix(c.R, other.R),
		G: mix(c.G, other.G),
		B: mix(c.B, other.B),
		A: mix(c.A, other.A),
	}
}

// RGBA implements image/color.Color with premultiplied 16-bit channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	return r * 0x101, g * 0x101, b * 0x101, a * 0x101
}

func clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

var (
	White      = RGB(255, 255, 255)
	Black      = RGB(0, 0, 0)
	Gray       = RGB(130, 130, 130)
	LightGray  = RGB(200, 200, 200)
	DarkGray   = RGB(80, 80, 80)
	Yellow     = RGB(253, 249, 0)
	Gold       = RGB(255, 203, 0)
	Orange     = RGB(255, 161, 0)
	Pink       = RGB(255, 109, 194)
	Red        = RGB(230, 41, 55)
	Maroon     = RGB(190, 33, 55)
	Green      = RGB(0, 228, 48)
	Lime       = RGB(0, 158, 47)
	DarkGreen  = RGB(0, 117, 44)
	SkyBlue    = RGB(102, 191, 255)
	Blue       = RGB(0, 121, 241)
	DarkBlue   = RGB(0, 82, 172)
	Purple     = RGB(200, 122, 255)
	Violet     = RGB(135, 60, 190)
	DarkPurple = RGB(112, 31, 126)
	Beige      = RGB(211, 176, 131)
	Brown      = RGB(127, 106, 79)
	DarkBrown  = RGB(76, 63, 47)
	Magenta    = RGB(255, 0, 255)
	Untinted   = White
)

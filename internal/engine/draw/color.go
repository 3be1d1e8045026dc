package draw

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Colors used by the board.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	ColorCube       = Color{0.16, 0.17, 0.22, 0.55}
	ColorCubeLines  = Color{0.55, 0.58, 0.7, 1}
	ColorCross      = Color{0.93, 0.35, 0.3, 1}
	ColorCircle     = Color{0.3, 0.62, 0.95, 1}
	ColorHover      = Color{1, 0.85, 0.3, 0.6}
	ColorWinLine    = Color{1, 0.95, 0.55, 1}
	ColorText       = Color{0.9, 0.9, 0.9, 1}
	ColorBackground = Color{0.06, 0.06, 0.09, 1}
)

// RGBA creates a color from 8-bit RGBA values (0-255).
func RGBA(r, g, b, a uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: float32(a) / 255.0,
	}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}

// Params packs a primary and a secondary color into a command's parameters.
func Params(primary, secondary Color) [8]float32 {
	return [8]float32{
		primary.R, primary.G, primary.B, primary.A,
		secondary.R, secondary.G, secondary.B, secondary.A,
	}
}

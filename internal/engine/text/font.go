// Package text lays out and draws strings from a pre-rendered SDF glyph
// atlas described by a metrics file.
package text

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/cubetac/internal/engine/draw"
	"github.com/Faultbox/cubetac/internal/logger"
	"github.com/Faultbox/cubetac/pkg/math"
)

// FallbackChar is drawn in place of characters missing from the atlas.
const FallbackChar = '?'

// DefaultPixelSize is the pixel height the atlas glyphs were rendered at.
const DefaultPixelSize = 16

// ErrMissingFallback is returned when a font has no FallbackChar glyph.
var ErrMissingFallback = errors.New("font has no fallback glyph")

// Glyph holds the metrics of one character. Bounds and advance are in atlas
// pixels, UVs in atlas texture coordinates.
type Glyph struct {
	Char       rune
	XMin, XMax float32
	YMin, YMax float32
	Advance    fixed.Int26_6
	UMin, UMax float32
	VMin, VMax float32
}

// Font maps characters to glyphs of one atlas texture.
type Font struct {
	Texture   string
	PixelSize float32

	glyphs   map[rune]Glyph
	fallback Glyph
	log      *zap.Logger
}

// NewFont builds a font from parsed metrics.
func NewFont(glyphs []Glyph, texture string) (*Font, error) {
	f := &Font{
		Texture:   texture,
		PixelSize: DefaultPixelSize,
		glyphs:    make(map[rune]Glyph, len(glyphs)),
		log:       logger.Named("text"),
	}
	for _, g := range glyphs {
		f.glyphs[g.Char] = g
	}

	fb, ok := f.glyphs[FallbackChar]
	if !ok {
		return nil, ErrMissingFallback
	}
	f.fallback = fb
	return f, nil
}

// Glyph returns the glyph for r, or the fallback glyph if r is unknown.
func (f *Font) Glyph(r rune) Glyph {
	if g, ok := f.glyphs[r]; ok {
		return g
	}
	f.log.Error("character not in font atlas", zap.String("char", string(r)))
	return f.fallback
}

// Len returns the number of glyphs in the font.
func (f *Font) Len() int {
	return len(f.glyphs)
}

func (f *Font) scale(size float32) float32 {
	return size / f.PixelSize
}

// advance returns the summed advance of s in atlas pixels.
func (f *Font) advance(s string) fixed.Int26_6 {
	var total fixed.Int26_6
	for _, r := range s {
		total += f.Glyph(r).Advance
	}
	return total
}

// Width returns the width of s drawn at the given size, in screen units.
func (f *Font) Width(s string, size float32) float32 {
	return fixedToFloat(f.advance(s)) * f.scale(size)
}

// Draw queues s with its baseline starting at corner. size is the line height
// in screen units; z is the depth key of every glyph.
func (f *Font) Draw(ctx *draw.Context, s string, corner math.Vec2, size, z float32, color draw.Color) error {
	scale := f.scale(size)
	pen := corner
	for _, r := range s {
		g := f.Glyph(r)

		if g.XMax > g.XMin && g.YMax > g.YMin {
			center := math.Vec3{
				X: pen.X + (g.XMax+g.XMin)/2*scale,
				Y: pen.Y + (g.YMax+g.YMin)/2*scale,
				Z: z,
			}
			extent := math.Vec2{X: (g.XMax - g.XMin) * scale, Y: (g.YMax - g.YMin) * scale}
			sprite := draw.Sprite{
				Shader:  draw.ShaderText,
				Texture: f.Texture,
				Params: [8]float32{
					color.R, color.G, color.B, color.A,
					g.UMin, g.UMax, g.VMin, g.VMax,
				},
			}
			if err := ctx.ScreenBillboard(center, extent, 0, sprite); err != nil {
				return fmt.Errorf("draw %q: %w", r, err)
			}
		}

		pen.X += fixedToFloat(g.Advance) * scale
	}
	return nil
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

package game

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubetac/internal/engine/draw"
	"github.com/Faultbox/cubetac/internal/engine/text"
	"github.com/Faultbox/cubetac/internal/game/board"
	"github.com/Faultbox/cubetac/internal/game/cube"
	"github.com/Faultbox/cubetac/internal/game/match"
	"github.com/Faultbox/cubetac/pkg/math"
)

// Texture names of the piece sprites.
const (
	TextureCross  = "cross.png"
	TextureCircle = "circle.png"
	TextureFont   = "font.png"
)

const (
	cubeBgScale    = 1.04
	hoverScale     = 0.92 // hover cube size relative to a cell
	pieceScale     = 0.8  // piece billboard size relative to a cell
	winLineWidth   = 0.008
	minSegment     = 1e-3 // shorter win-line segments are not drawn
	hudTextSize    = 0.045
	hudMargin      = 0.02
	hudDepth       = -1 // in front of every world command
	hudFPSTextSize = 0.03
)

// HUD holds what the overlay shows besides the match state.
type HUD struct {
	ShowFPS bool
	FPS     int
}

// Scene turns the play state into draw commands.
type Scene struct {
	ctx  *draw.Context
	font *text.Font
	fovY float32
}

// NewScene creates a scene drawing through ctx. fovY is the vertical field
// of view in radians and must match the context projection.
func NewScene(ctx *draw.Context, font *text.Font, fovY float32) *Scene {
	return &Scene{ctx: ctx, font: font, fovY: fovY}
}

// Render queues one frame. Errors come from the draw queue and are fatal.
func (s *Scene) Render(p *Play, now float32, hud HUD) error {
	transform := p.Transform()

	if err := s.ctx.Cube(transform, draw.ColorCube, draw.ColorCubeLines, cubeBgScale); err != nil {
		return fmt.Errorf("cube: %w", err)
	}
	if err := s.pieces(p, transform); err != nil {
		return err
	}
	if err := s.hover(p); err != nil {
		return err
	}
	if line, ok := p.Match.WinLine(now); ok {
		if err := s.winLine(line, transform); err != nil {
			return err
		}
	}
	return s.hud(p.Match.State(), hud)
}

// cellSize returns the side of one grid cell in view units.
func cellSize(p *Play) float32 {
	return p.Size / board.RowCount
}

// screenSize converts a view-space length to screen-height units at unit
// distance, which WorldBillboard then scales by depth.
func (s *Scene) screenSize(viewLength float32) float32 {
	return viewLength / (2 * math32.Tan(s.fovY/2))
}

func (s *Scene) pieces(p *Play, transform math.Mat4) error {
	size := s.screenSize(cellSize(p) * pieceScale)
	var err error
	p.Match.Grid.Each(func(pos math.Vec3i, value board.BlockType) {
		if err != nil || value == board.None {
			return
		}
		sprite := draw.Sprite{Shader: draw.ShaderTexture}
		switch value {
		case board.Cross:
			sprite.Texture = TextureCross
			sprite.Params = draw.Params(draw.ColorCross, draw.ColorTransparent)
		case board.Circle:
			sprite.Texture = TextureCircle
			sprite.Params = draw.Params(draw.ColorCircle, draw.ColorTransparent)
		}
		center := cube.CellCenter(transform, pos)
		if e := s.ctx.WorldBillboard(center, math.Vec2{X: size, Y: size}, 0, sprite); e != nil {
			err = fmt.Errorf("piece %v: %w", pos, e)
		}
	})
	return err
}

func (s *Scene) hover(p *Play) error {
	cell, ok := p.Selected()
	if !ok || p.Match.State().Over() {
		return nil
	}
	center := cube.CellCenter(p.Transform(), cell)
	t := cube.Transform(center, p.Rotator.Rotation, cellSize(p)*hoverScale)
	if err := s.ctx.Cube(t, draw.ColorHover, draw.ColorHover.Lighten(0.5), 1); err != nil {
		return fmt.Errorf("hover: %w", err)
	}
	return nil
}

// winLine draws the line through the winning cells, growing with the
// animation progress. Segments that wrap around the cube are skipped.
func (s *Scene) winLine(line match.WinLine, transform math.Mat4) error {
	segments := len(line.Cells) - 1
	for i := 0; i < segments; i++ {
		from, to := line.Cells[i], line.Cells[i+1]
		if !adjacent(from, to) {
			continue
		}
		amount := line.Progress*float32(segments) - float32(i)
		if amount < minSegment {
			break
		}
		if amount > 1 {
			amount = 1
		}
		a := cube.CellCenter(transform, from)
		b := cube.CellCenter(transform, to)
		if err := s.ctx.Line(a, a.Lerp(b, amount), draw.ColorWinLine, winLineWidth, false); err != nil {
			return fmt.Errorf("win line: %w", err)
		}
	}
	return nil
}

func adjacent(a, b math.Vec3i) bool {
	for axis := 0; axis < 3; axis++ {
		d := a.Axis(axis) - b.Axis(axis)
		if d < -1 || d > 1 {
			return false
		}
	}
	return true
}

// StatusText returns the banner for a match state.
func StatusText(state match.GameState) string {
	switch state.Phase {
	case match.GameWon:
		return state.Victory.Winner.String() + " wins! Press R to restart"
	case match.GameDrawn:
		return "Draw! Press R to restart"
	default:
		return state.Player.String() + " to move"
	}
}

func statusColor(state match.GameState) draw.Color {
	player := state.Player
	if state.Phase == match.GameWon {
		player = state.Victory.Winner
	}
	switch {
	case state.Phase == match.GameDrawn:
		return draw.ColorText
	case player == board.Cross:
		return draw.ColorCross
	case player == board.Circle:
		return draw.ColorCircle
	default:
		return draw.ColorText
	}
}

func (s *Scene) hud(state match.GameState, hud HUD) error {
	status := StatusText(state)
	corner := math.Vec2{X: hudMargin, Y: 1 - hudMargin - hudTextSize}
	if err := s.font.Draw(s.ctx, status, corner, hudTextSize, hudDepth, statusColor(state)); err != nil {
		return fmt.Errorf("status text: %w", err)
	}

	if hud.ShowFPS {
		fps := fmt.Sprintf("%d FPS", hud.FPS)
		x := s.ctx.Aspect() - hudMargin - s.font.Width(fps, hudFPSTextSize)
		corner := math.Vec2{X: x, Y: 1 - hudMargin - hudFPSTextSize}
		if err := s.font.Draw(s.ctx, fps, corner, hudFPSTextSize, hudDepth, draw.ColorText); err != nil {
			return fmt.Errorf("fps text: %w", err)
		}
	}
	return nil
}

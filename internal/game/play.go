package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/Faultbox/cubetac/internal/engine/input"
	"github.com/Faultbox/cubetac/internal/engine/picking"
	"github.com/Faultbox/cubetac/internal/game/board"
	"github.com/Faultbox/cubetac/internal/game/cube"
	"github.com/Faultbox/cubetac/internal/game/match"
	"github.com/Faultbox/cubetac/pkg/math"
)

// Frame is the input snapshot one gameplay step consumes.
type Frame struct {
	Ray     picking.Ray // view-space pointer ray
	Left    input.ButtonInfo
	Middle  input.ButtonInfo
	Right   input.ButtonInfo
	Wheel   int // steps up minus steps down
	Restart bool
	Now     float32
	Dt      float32
}

// Outcome reports what a step changed.
type Outcome struct {
	Placed   bool
	Finished bool // the match ended on this step
}

// Play is the gameplay state of one window: the match, the cube orientation
// and the hover selection.
type Play struct {
	Match   *match.Match
	Rotator *cube.Rotator

	Center math.Vec3 // cube center in view space
	Size   float32

	// Depth is how many wheel steps the selection sits below the surface.
	Depth   int
	Hover   cube.Position
	HoverOK bool

	rng         *rand.Rand
	randomStart bool
}

// PlayConfig configures a Play.
type PlayConfig struct {
	CubeSize            float32
	CubeDistance        float32
	RotateSpeedDecrease float32
	RandomStart         bool
	Seed                uint64
}

// NewPlay starts a match with Cross to move.
func NewPlay(cfg PlayConfig) *Play {
	p := &Play{
		Match:       match.New(board.Cross),
		Center:      math.Vec3{Z: -cfg.CubeDistance},
		Size:        cfg.CubeSize,
		rng:         rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
		randomStart: cfg.RandomStart,
	}
	p.Rotator = cube.NewRotator(p.startOrientation(), cfg.RotateSpeedDecrease)
	return p
}

func (p *Play) startOrientation() math.Quat {
	if p.randomStart {
		return cube.RandomOrientation(p.rng)
	}
	return math.QuatIdentity()
}

// Transform returns the current model matrix of the cube.
func (p *Play) Transform() math.Mat4 {
	return cube.Transform(p.Center, p.Rotator.Rotation, p.Size)
}

// Selected returns the hovered cell after applying the wheel depth.
func (p *Play) Selected() (math.Vec3i, bool) {
	if !p.HoverOK {
		return math.Vec3i{}, false
	}
	return p.Hover.Cell(p.Depth), true
}

// Restart begins a new match and puts the cube back to rest.
func (p *Play) Restart(now float32) {
	p.Match.Restart()
	p.Rotator.Reset(p.startOrientation(), now)
	p.Depth = 0
	p.HoverOK = false
}

// Step advances the game by one processed frame. A returned error is fatal.
func (p *Play) Step(f Frame) (Outcome, error) {
	var out Outcome

	if f.Restart {
		p.Restart(f.Now)
	}

	hit, ok := cube.Pick(f.Ray, p.Rotator.Rotation, p.Transform(), p.Size)
	p.Rotator.Update(cube.FrameInput{
		Ray:      f.Ray,
		Center:   p.Center,
		Hit:      hit,
		HitOK:    ok,
		Pressed:  f.Right.Down,
		Held:     f.Right.Hold,
		Released: f.Right.Up,
		Now:      f.Now,
		Dt:       f.Dt,
	})

	// The cube may have moved; hover follows the new pose.
	p.Hover, p.HoverOK = cube.Pick(f.Ray, p.Rotator.Rotation, p.Transform(), p.Size)

	if f.Middle.Down {
		p.Depth = 0
	}
	if f.Wheel != 0 {
		p.Depth = wrapDepth(p.Depth + f.Wheel)
	}

	if f.Left.Down && p.HoverOK && !p.Rotator.Dragging && !p.Match.State().Over() {
		cell := p.Hover.Cell(p.Depth)
		placed, err := p.Match.SubmitClick(cell)
		if err != nil {
			return out, fmt.Errorf("place %v: %w", cell, err)
		}
		out.Placed = placed
		out.Finished = placed && p.Match.State().Over()
	}

	return out, nil
}

func wrapDepth(d int) int {
	return ((d % board.RowCount) + board.RowCount) % board.RowCount
}

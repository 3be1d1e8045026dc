package draw

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubetac/pkg/math"
)

func newTestContext() *Context {
	return NewContext(1600, 900, math32.Pi/3, NewQueue())
}

func popAll(t *testing.T, q *Queue) []Command {
	t.Helper()
	var cmds []Command
	b := &recordingBackend{onDraw: func(cmd *Command) error {
		cmds = append(cmds, *cmd)
		return nil
	}}
	if err := q.Flush(b); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	return cmds
}

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func TestScreenBillboardPlacement(t *testing.T) {
	c := newTestContext()
	aspect := c.Aspect()

	// A quad centered on screen with height 0.5 covers half the viewport.
	err := c.ScreenBillboard(math.Vec3{X: aspect / 2, Y: 0.5, Z: -1}, math.Vec2{X: 0.5, Y: 0.5}, 0, Sprite{Shader: ShaderColor})
	if err != nil {
		t.Fatalf("ScreenBillboard: %v", err)
	}
	cmds := popAll(t, c.Queue)
	if len(cmds) != 1 {
		t.Fatalf("queued %d commands, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Z != -1 || cmd.ApplyProjection || cmd.Type != Quad {
		t.Errorf("command = %+v", cmd)
	}

	center := cmd.Transform.TransformPoint(math.Vec3{})
	if !near(center.X, 0, 1e-5) || !near(center.Y, 0, 1e-5) {
		t.Errorf("center in NDC = %v, want origin", center)
	}
	top := cmd.Transform.TransformPoint(math.Vec3{Y: 0.5})
	if !near(top.Y, 0.5, 1e-5) {
		t.Errorf("top edge in NDC = %v, want 0.5", top.Y)
	}
	right := cmd.Transform.TransformPoint(math.Vec3{X: 0.5})
	if !near(right.X, 0.5/aspect, 1e-5) {
		t.Errorf("right edge in NDC = %v, want %v", right.X, 0.5/aspect)
	}
}

func TestWorldBillboardDepth(t *testing.T) {
	c := newTestContext()
	sprite := Sprite{Shader: ShaderTexture, Texture: "cross.png"}
	c.WorldBillboard(math.Vec3{Z: -2}, math.Vec2{X: 1, Y: 1}, 0, sprite)
	c.WorldBillboard(math.Vec3{Z: -5}, math.Vec2{X: 1, Y: 1}, 0, sprite)
	c.WorldBillboard(math.Vec3{Z: 1}, math.Vec2{X: 1, Y: 1}, 0, sprite)

	cmds := popAll(t, c.Queue)
	if len(cmds) != 2 {
		t.Fatalf("queued %d commands, want 2 (one is behind the camera)", len(cmds))
	}
	if cmds[0].Z <= cmds[1].Z {
		t.Errorf("far billboard not drawn first: z %v then %v", cmds[0].Z, cmds[1].Z)
	}
	if !near(cmds[0].Z, c.DepthOf(math.Vec3{Z: -5}), 1e-5) {
		t.Errorf("depth key = %v, want clip z %v", cmds[0].Z, c.DepthOf(math.Vec3{Z: -5}))
	}

	// Farther billboards are smaller on screen.
	farTop := cmds[0].Transform.TransformPoint(math.Vec3{Y: 0.5}).Y
	nearTop := cmds[1].Transform.TransformPoint(math.Vec3{Y: 0.5}).Y
	if farTop >= nearTop {
		t.Errorf("far billboard half height %v not below near %v", farTop, nearTop)
	}
	if cmds[0].Texture != "cross.png" {
		t.Errorf("texture = %q", cmds[0].Texture)
	}
}

func TestLineHorizontal(t *testing.T) {
	c := newTestContext()
	if err := c.Line(math.Vec3{X: -1, Z: -3}, math.Vec3{X: 1, Z: -3}, ColorWhite, 0.01, false); err != nil {
		t.Fatalf("Line: %v", err)
	}
	cmds := popAll(t, c.Queue)
	if len(cmds) != 1 {
		t.Fatalf("queued %d commands, want 1", len(cmds))
	}
	cmd := cmds[0]
	if cmd.Shader != ShaderLine {
		t.Errorf("shader = %q, want %q", cmd.Shader, ShaderLine)
	}
	if cmd.Params[4] <= 1 {
		t.Errorf("ratio = %v, want > 1", cmd.Params[4])
	}

	// The quad's long axis stays horizontal and spans both endpoints.
	a, _ := c.ToScreen(math.Vec3{X: -1, Z: -3})
	b, _ := c.ToScreen(math.Vec3{X: 1, Z: -3})
	end := cmd.Transform.TransformPoint(math.Vec3{X: 0.5})
	if !near(end.Y, 0, 1e-5) {
		t.Errorf("line end y = %v, want 0", end.Y)
	}
	wantHalf := (b.X - a.X + 0.01) / c.Aspect()
	if !near(end.X, wantHalf, 1e-4) {
		t.Errorf("line end x = %v, want %v", end.X, wantHalf)
	}
}

func TestLineVertical(t *testing.T) {
	c := newTestContext()
	c.Line(math.Vec3{Y: -1, Z: -3}, math.Vec3{Y: 1, Z: -3}, ColorWhite, 0.01, true)
	cmd := popAll(t, c.Queue)[0]
	if cmd.Shader != ShaderCheapLine {
		t.Errorf("shader = %q, want %q", cmd.Shader, ShaderCheapLine)
	}
	end := cmd.Transform.TransformPoint(math.Vec3{X: 0.5})
	if !near(end.X, 0, 1e-5) || end.Y <= 0 {
		t.Errorf("vertical line end = %v, want on +Y axis", end)
	}
}

func TestCubeCommand(t *testing.T) {
	c := newTestContext()
	tr := math.Compose(math.Vec3{Z: -3}, math.QuatIdentity(), 1)
	if err := c.Cube(tr, ColorCube, ColorCubeLines, 1.02); err != nil {
		t.Fatalf("Cube: %v", err)
	}
	cmd := popAll(t, c.Queue)[0]
	if cmd.Type != Cube || !cmd.ApplyProjection || cmd.Shader != ShaderCube {
		t.Errorf("command = %+v", cmd)
	}
	if cmd.ScaleForBg != 1.02 {
		t.Errorf("scale for bg = %v", cmd.ScaleForBg)
	}
	if cmd.Params[4] != ColorCubeLines.R {
		t.Errorf("edge color not in the secondary slot: %v", cmd.Params)
	}
	if !near(cmd.Z, c.DepthOf(math.Vec3{Z: -3}), 1e-5) {
		t.Errorf("z = %v, want %v", cmd.Z, c.DepthOf(math.Vec3{Z: -3}))
	}
}

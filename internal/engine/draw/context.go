package draw

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/cubetac/pkg/math"
)

// Shader names used by the builders.
const (
	ShaderColor     = "default_color"
	ShaderTexture   = "default_tex"
	ShaderLine      = "line"
	ShaderCheapLine = "cheap_line"
	ShaderCube      = "cube"
	ShaderText      = "text"
)

// Context turns high-level shapes into queued commands for one frame.
//
// Screen positions are in screen-height units: x in [0, aspect], y in [0, 1]
// from the bottom, and a size of 1 spans the screen height.
type Context struct {
	Projection math.Mat4
	Width      int
	Height     int
	Queue      *Queue
}

// NewContext creates a context with a perspective camera at the origin
// looking down -Z.
func NewContext(width, height int, fovY float32, queue *Queue) *Context {
	c := &Context{Queue: queue}
	c.Resize(width, height, fovY)
	return c
}

// Resize updates the resolution and rebuilds the projection.
func (c *Context) Resize(width, height int, fovY float32) {
	c.Width = width
	c.Height = height
	c.Projection = math.Mat4(mgl32.Perspective(fovY, c.Aspect(), 0.1, 100))
}

// Aspect returns width / height.
func (c *Context) Aspect() float32 {
	if c.Height == 0 {
		return 1
	}
	return float32(c.Width) / float32(c.Height)
}

// Sprite describes the look of a quad.
type Sprite struct {
	Shader  string
	Params  [8]float32
	Texture string
}

// ToScreen projects a view-space point. It returns the point in screen units
// with the clip-space z as Z, and the clip-space w.
func (c *Context) ToScreen(p math.Vec3) (math.Vec3, float32) {
	clip := c.Projection.MulVec4(p.Vec4())
	w := clip[3]
	if w == 0 {
		w = 1
	}
	return math.Vec3{
		X: (clip[0]/w*0.5 + 0.5) * c.Aspect(),
		Y: clip[1]/w*0.5 + 0.5,
		Z: clip[2],
	}, clip[3]
}

// DepthOf returns the depth key of a view-space point.
func (c *Context) DepthOf(p math.Vec3) float32 {
	return c.Projection.MulVec4(p.Vec4())[2]
}

// screenTransform places a unit quad centered at pos with the given size and
// rotation around the screen normal.
func (c *Context) screenTransform(pos math.Vec2, size math.Vec2, rotation float32) math.Mat4 {
	ratio := 1 / c.Aspect()
	m := mgl32.Translate3D(-1+pos.X*2*ratio, -1+pos.Y*2, 0).
		Mul4(mgl32.Scale3D(ratio, 1, 1)).
		Mul4(mgl32.HomogRotate3DZ(rotation)).
		Mul4(mgl32.Scale3D(size.X*2, size.Y*2, 1))
	return math.Mat4(m)
}

// ScreenBillboard queues a screen-aligned quad. pos.Z is the depth key.
func (c *Context) ScreenBillboard(pos math.Vec3, size math.Vec2, rotation float32, s Sprite) error {
	return c.Queue.Push(Command{
		Z:         pos.Z,
		Shader:    s.Shader,
		Transform: c.screenTransform(math.Vec2{X: pos.X, Y: pos.Y}, size, rotation),
		Type:      Quad,
		Params:    s.Params,
		Texture:   s.Texture,
	})
}

// WorldBillboard queues a camera-facing quad at a view-space position. The
// size is given at unit distance and shrinks with depth.
func (c *Context) WorldBillboard(pos math.Vec3, size math.Vec2, rotation float32, s Sprite) error {
	screen, w := c.ToScreen(pos)
	if w <= 0 {
		// Behind the camera.
		return nil
	}
	scaled := size.Scale(1 / w)
	return c.Queue.Push(Command{
		Z:         screen.Z,
		Shader:    s.Shader,
		Transform: c.screenTransform(math.Vec2{X: screen.X, Y: screen.Y}, scaled, rotation),
		Type:      Quad,
		Params:    s.Params,
		Texture:   s.Texture,
	})
}

// Line queues a view-space segment from a to b, drawn as a rotated quad of
// the given width in screen units. The line shaders fade the ends using the
// length to width ratio passed in the secondary parameter slot.
func (c *Context) Line(a, b math.Vec3, color Color, width float32, cheap bool) error {
	sa, wa := c.ToScreen(a)
	sb, wb := c.ToScreen(b)
	if wa <= 0 || wb <= 0 {
		return nil
	}

	from := math.Vec2{X: sa.X, Y: sa.Y}
	to := math.Vec2{X: sb.X, Y: sb.Y}
	d := to.Sub(from)
	length := d.Length()

	rotation := float32(math32.Pi / 2)
	if math32.Abs(d.X) > 0.001 {
		rotation = math32.Atan(d.Y / d.X)
	}

	shader := ShaderLine
	if cheap {
		shader = ShaderCheapLine
	}

	params := Params(color, ColorTransparent)
	params[4] = (length + width) / width

	center := from.Add(to).Scale(0.5)
	return c.Queue.Push(Command{
		Z:         (sa.Z + sb.Z) / 2,
		Shader:    shader,
		Transform: c.screenTransform(center, math.Vec2{X: length + width, Y: width}, rotation),
		Type:      Quad,
		Params:    params,
	})
}

// Cube queues a cube with the given model transform. The secondary color is
// used for the edges; scaleForBg sets how far the background shell extends.
func (c *Context) Cube(transform math.Mat4, fill, edges Color, scaleForBg float32) error {
	center := transform.TransformPoint(math.Vec3{})
	return c.Queue.Push(Command{
		Z:               c.DepthOf(center),
		Shader:          ShaderCube,
		Transform:       transform,
		ApplyProjection: true,
		Type:            Cube,
		ScaleForBg:      scaleForBg,
		Params:          Params(fill, edges),
	})
}

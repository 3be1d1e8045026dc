// Package cube maps the mouse onto cells of the rotatable cube and turns
// pointer drags into cube rotation.
package cube

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubetac/internal/engine/picking"
	"github.com/Faultbox/cubetac/internal/game/board"
	"github.com/Faultbox/cubetac/pkg/math"
)

// face describes one side of the unit cube centered on the origin.
type face struct {
	normal   math.Vec3 // outward normal (local)
	origin   math.Vec3 // corner where both plane coordinates are 0 (local)
	tangent1 math.Vec3
	tangent2 math.Vec3
	axis1    int // grid axis measured along tangent1
	axis2    int // grid axis measured along tangent2
	depth    int // grid axis walked by the wheel
	positive bool
}

// faces are tried in this order; the first face passing every test wins.
var faces = [6]face{
	{normal: math.Vec3{Z: 1}, origin: math.Vec3{X: -0.5, Y: -0.5, Z: 0.5}, tangent1: math.Vec3{X: 1}, tangent2: math.Vec3{Y: 1}, axis1: 0, axis2: 1, depth: 2, positive: true},
	{normal: math.Vec3{Z: -1}, origin: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, tangent1: math.Vec3{X: 1}, tangent2: math.Vec3{Y: 1}, axis1: 0, axis2: 1, depth: 2},
	{normal: math.Vec3{X: 1}, origin: math.Vec3{X: 0.5, Y: -0.5, Z: -0.5}, tangent1: math.Vec3{Z: 1}, tangent2: math.Vec3{Y: 1}, axis1: 2, axis2: 1, depth: 0, positive: true},
	{normal: math.Vec3{X: -1}, origin: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, tangent1: math.Vec3{Z: 1}, tangent2: math.Vec3{Y: 1}, axis1: 2, axis2: 1, depth: 0},
	{normal: math.Vec3{Y: 1}, origin: math.Vec3{X: -0.5, Y: 0.5, Z: -0.5}, tangent1: math.Vec3{X: 1}, tangent2: math.Vec3{Z: 1}, axis1: 0, axis2: 2, depth: 1, positive: true},
	{normal: math.Vec3{Y: -1}, origin: math.Vec3{X: -0.5, Y: -0.5, Z: -0.5}, tangent1: math.Vec3{X: 1}, tangent2: math.Vec3{Z: 1}, axis1: 0, axis2: 2, depth: 1},
}

// Position is the cell under the mouse.
type Position struct {
	WorldPos math.Vec3
	Coords   math.Vec3i

	// WheelDirection is the unit grid step going into the cube from the face.
	WheelDirection math.Vec3i
	Tangent1       math.Vec3
	Tangent2       math.Vec3
	WheelInverted  bool
	Face           int
}

// Cell returns the coordinate reached after depth wheel steps into the cube.
func (p Position) Cell(depth int) math.Vec3i {
	return board.Wrap(p.Coords.Add(p.WheelDirection.Scale(depth)))
}

// Transform returns the model matrix of a cube centered at center, with the
// given rotation and side length.
func Transform(center math.Vec3, rotation math.Quat, size float32) math.Mat4 {
	return math.Compose(center, rotation, size)
}

// Pick finds the cell of the cube hit by ray. transform places the unit cube
// in view space and must agree with rotation and size.
func Pick(ray picking.Ray, rotation math.Quat, transform math.Mat4, size float32) (Position, bool) {
	bounds := picking.CubeBounds(transform.TransformPoint(math.Vec3{}), rotation, size)
	if _, hit := ray.IntersectAABB(bounds); !hit {
		return Position{}, false
	}

	for id, f := range faces {
		normal := rotation.Rotate(f.normal)
		t1 := rotation.Rotate(f.tangent1)
		t2 := rotation.Rotate(f.tangent2)
		origin := transform.TransformPoint(f.origin)

		if !picking.FacingCamera(origin.Sub(ray.Origin), normal) {
			continue
		}

		hit, ok := picking.IntersectLinePlane(origin, normal, ray.Origin, ray.Direction)
		if !ok {
			continue
		}
		// Reject planes behind the viewer.
		if hit.Sub(ray.Origin).Dot(ray.Direction) < 0 {
			continue
		}

		uv := picking.PlaneCoords(origin, t1, t2, hit)
		if uv.X < 0 || uv.X > size || uv.Y < 0 || uv.Y > size {
			continue
		}

		var coords math.Vec3i
		coords = coords.WithAxis(f.axis1, cellOf(uv.X, size))
		coords = coords.WithAxis(f.axis2, cellOf(uv.Y, size))

		step := 1
		surface := 0
		if f.positive {
			step = -1
			surface = board.RowCount - 1
		}
		coords = coords.WithAxis(f.depth, surface)

		return Position{
			WorldPos:       hit,
			Coords:         coords,
			WheelDirection: math.Vec3i{}.WithAxis(f.depth, step),
			Tangent1:       t1,
			Tangent2:       t2,
			WheelInverted:  f.positive,
			Face:           id,
		}, true
	}
	return Position{}, false
}

// cellOf converts a plane coordinate in [0, size] to a cell index.
func cellOf(c, size float32) int {
	i := int(math32.Floor(c / size * board.RowCount))
	if i >= board.RowCount {
		i = board.RowCount - 1
	}
	return i
}

// CellCenter returns the view-space center of a grid cell.
func CellCenter(transform math.Mat4, pos math.Vec3i) math.Vec3 {
	local := math.Vec3{
		X: (float32(pos.X)+0.5)/board.RowCount - 0.5,
		Y: (float32(pos.Y)+0.5)/board.RowCount - 0.5,
		Z: (float32(pos.Z)+0.5)/board.RowCount - 0.5,
	}
	return transform.TransformPoint(local)
}

// Package picking provides ray construction and ray/sphere/plane intersection
// used to map the mouse onto the cube.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/cubetac/pkg/math"
)

// ParallelEpsilon is the smallest |dot(direction, normal)| for which a line is
// considered to cross a plane.
const ParallelEpsilon = 1e-6

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3 // Normalized direction
}

// MouseRay builds a view-space ray through the mouse, for a camera at the
// origin looking down -Z. mouse is in normalized units: x in [0, aspect],
// y in [0, 1] from the bottom. fov is the vertical field of view in radians.
func MouseRay(mouse math.Vec2, aspect, fov float32) math.Vec3 {
	tan := math32.Tan(fov / 2)
	return math.Vec3{
		X: (mouse.X - 0.5*aspect) * tan,
		Y: (mouse.Y - 0.5) * tan,
		Z: -0.5,
	}.Normalize()
}

// sphereParam solves |origin + t*dir - center| = radius and returns the
// smaller root. When clamp is set a negative discriminant is treated as zero.
func sphereParam(center math.Vec3, radius float32, origin, dir math.Vec3, clamp bool) (float32, bool) {
	c := origin.Sub(center)

	dot := dir.Dot(c)
	vv := dir.LengthSquared()
	cc := c.LengthSquared()

	delta := dot*dot - vv*(cc-radius*radius)
	if delta < 0 {
		if !clamp {
			return 0, false
		}
		delta = 0
	}

	sqrtDelta := math32.Sqrt(delta)
	t1 := (-dot + sqrtDelta) / vv
	t2 := (-dot - sqrtDelta) / vv
	return math32.Min(t1, t2), true
}

// IntersectLineSphere intersects the line through origin with direction dir
// and the sphere (center, radius). It returns the point at the smaller line
// parameter, or false when the line misses the sphere.
func IntersectLineSphere(center math.Vec3, radius float32, origin, dir math.Vec3) (math.Vec3, bool) {
	t, ok := sphereParam(center, radius, origin, dir, false)
	if !ok {
		return math.Vec3{}, false
	}
	return origin.Add(dir.Scale(t)), true
}

// IntersectLineSphereAlways is IntersectLineSphere, but a miss yields the
// point of the line closest to the sphere instead of failing.
func IntersectLineSphereAlways(center math.Vec3, radius float32, origin, dir math.Vec3) math.Vec3 {
	t, _ := sphereParam(center, radius, origin, dir, true)
	return origin.Add(dir.Scale(t))
}

// IntersectLinePlane intersects the line through origin with direction dir and
// the plane through point with the given normal. It returns false when the
// line is parallel to the plane.
func IntersectLinePlane(point, normal, origin, dir math.Vec3) (math.Vec3, bool) {
	denom := dir.Dot(normal)
	if math32.Abs(denom) < ParallelEpsilon {
		return math.Vec3{}, false
	}
	t := -normal.Dot(origin.Sub(point)) / denom
	return origin.Add(dir.Scale(t)), true
}

// PlaneCoords returns the coordinates of p in the plane basis (origin, t1, t2).
func PlaneCoords(origin, t1, t2, p math.Vec3) math.Vec2 {
	d := p.Sub(origin)
	return math.Vec2{X: d.Dot(t1), Y: d.Dot(t2)}
}

// FacingCamera reports whether a surface at center with the given normal
// faces a camera placed at the origin.
func FacingCamera(center, normal math.Vec3) bool {
	return center.Dot(normal) < 0
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// CubeBounds returns the box enclosing a cube of side size centered at center
// and rotated by rotation.
func CubeBounds(center math.Vec3, rotation math.Quat, size float32) AABB {
	half := size / 2
	ax := rotation.Rotate(math.Vec3{X: half})
	ay := rotation.Rotate(math.Vec3{Y: half})
	az := rotation.Rotate(math.Vec3{Z: half})
	extent := math.Vec3{
		X: math32.Abs(ax.X) + math32.Abs(ay.X) + math32.Abs(az.X),
		Y: math32.Abs(ax.Y) + math32.Abs(ay.Y) + math32.Abs(az.Y),
		Z: math32.Abs(ax.Z) + math32.Abs(ay.Z) + math32.Abs(az.Z),
	}
	return AABB{Min: center.Sub(extent), Max: center.Add(extent)}
}

// IntersectAABB tests ray intersection with an axis-aligned bounding box.
// Returns the distance to intersection (t) and whether intersection occurred.
// If the ray starts inside the box, returns the exit distance.
func (r Ray) IntersectAABB(box AABB) (t float32, hit bool) {
	tmin := float32(-math32.MaxFloat32)
	tmax := float32(math32.MaxFloat32)

	origin := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float32{r.Direction.X, r.Direction.Y, r.Direction.Z}
	lo := [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
	hi := [3]float32{box.Max.X, box.Max.Y, box.Max.Z}

	for i := 0; i < 3; i++ {
		if dir[i] == 0 {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		t1 := (lo[i] - origin[i]) / dir[i]
		t2 := (hi[i] - origin[i]) / dir[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math32.Max(tmin, t1)
		tmax = math32.Min(tmax, t2)
	}

	if tmax < tmin || tmax < 0 {
		return 0, false
	}
	if tmin < 0 {
		return tmax, true
	}
	return tmin, true
}

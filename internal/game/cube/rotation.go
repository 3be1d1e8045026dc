package cube

import (
	"math/rand/v2"

	"github.com/chewxy/math32"

	"github.com/Faultbox/cubetac/internal/engine/picking"
	"github.com/Faultbox/cubetac/pkg/math"
)

// DefaultRotateSpeedDecrease is the default damping constant of the spin
// left over after a drag.
const DefaultRotateSpeedDecrease = 4.0

// FrameInput is what the rotator reads from one frame.
type FrameInput struct {
	Ray    picking.Ray
	Center math.Vec3 // cube center in view space

	// Hit is the picking result for Ray; HitOK is false on a miss.
	Hit   Position
	HitOK bool

	Pressed  bool // button went down this frame
	Held     bool // button is down
	Released bool // button went up this frame

	Now float32 // seconds since start
	Dt  float32 // seconds since last frame
}

// Rotator turns pointer drags on a virtual sphere around the cube into a
// rotation, and keeps the cube spinning with decaying speed once released.
type Rotator struct {
	Rotation          math.Quat
	Velocity          math.Quat // rotation over the last drag step
	VelocityRate      float32   // steps per second, 1/dt of that step
	ReleaseRotation   math.Quat
	ReleaseTime       float32
	DragStartRotation math.Quat
	StartSphereDir    math.Vec3
	LastSphereDir     math.Vec3
	SphereRadius      float32
	Dragging          bool

	// SpeedDecrease is the exponential damping constant (per second).
	SpeedDecrease float32
}

// NewRotator returns an idle rotator holding the given orientation.
func NewRotator(initial math.Quat, speedDecrease float32) *Rotator {
	if speedDecrease <= 0 {
		speedDecrease = DefaultRotateSpeedDecrease
	}
	initial = initial.Normalize()
	return &Rotator{
		Rotation:          initial,
		Velocity:          math.QuatIdentity(),
		ReleaseRotation:   initial,
		DragStartRotation: initial,
		SpeedDecrease:     speedDecrease,
	}
}

// Reset puts the rotator back to rest at the given orientation.
func (r *Rotator) Reset(initial math.Quat, now float32) {
	*r = *NewRotator(initial, r.SpeedDecrease)
	r.ReleaseTime = now
}

// Press starts a drag if the pointer is on the cube. The drag sphere is
// centered on the cube and passes through the clicked point.
func (r *Rotator) Press(center math.Vec3, hit Position, ok bool) {
	if !ok {
		return
	}
	offset := hit.WorldPos.Sub(center)
	r.SphereRadius = offset.Length()
	if r.SphereRadius == 0 {
		return
	}
	r.StartSphereDir = offset.Scale(1 / r.SphereRadius)
	r.LastSphereDir = r.StartSphereDir
	r.DragStartRotation = r.Rotation
	r.Velocity = math.QuatIdentity()
	r.VelocityRate = 0
	r.Dragging = true
}

// Drag follows the pointer while the button is held.
func (r *Rotator) Drag(ray picking.Ray, center math.Vec3, dt float32) {
	if !r.Dragging {
		return
	}
	p := picking.IntersectLineSphereAlways(center, r.SphereRadius, ray.Origin, ray.Direction)
	to := p.Sub(center).Normalize()
	if to == (math.Vec3{}) {
		return
	}

	delta := math.QuatRotationBetween(r.StartSphereDir, to)
	r.Rotation = delta.Mul(r.DragStartRotation)

	// The step is kept as is: a per-second quaternion cannot hold more
	// than half a turn, so fast flicks would alias.
	if dt > 0 {
		r.Velocity = math.QuatRotationBetween(r.LastSphereDir, to)
		r.VelocityRate = 1 / dt
	}
	r.LastSphereDir = to
}

// Release ends a drag; the cube keeps the last measured velocity.
func (r *Rotator) Release(now float32) {
	if !r.Dragging {
		return
	}
	r.ReleaseRotation = r.Rotation
	r.ReleaseTime = now
	r.Dragging = false
}

// Settle integrates the decaying velocity from the release pose. The amount
// of rotation applied after t seconds is (1 - e^(-k t)) / k.
func (r *Rotator) Settle(now float32) {
	if r.Dragging {
		return
	}
	r.Rotation = r.Velocity.Scale(r.decayAmount(now) * r.VelocityRate).Mul(r.ReleaseRotation)
}

// AngularSpeed returns the release speed in radians per second.
func (r *Rotator) AngularSpeed() float32 {
	return r.Velocity.Angle() * r.VelocityRate
}

func (r *Rotator) decayAmount(now float32) float32 {
	k := r.SpeedDecrease
	elapsed := now - r.ReleaseTime
	if elapsed < 0 {
		elapsed = 0
	}
	return (1 - math32.Exp(-k*elapsed)) / k
}

// RestPose returns the orientation the cube converges to after a release.
func (r *Rotator) RestPose() math.Quat {
	return r.Velocity.Scale(r.VelocityRate / r.SpeedDecrease).Mul(r.ReleaseRotation).Normalize()
}

// Normalize removes floating-point drift from the orientation.
func (r *Rotator) Normalize() {
	r.Rotation = r.Rotation.Normalize()
}

// Update runs one frame of the drag state machine.
func (r *Rotator) Update(in FrameInput) {
	switch {
	case in.Pressed:
		r.Press(in.Center, in.Hit, in.HitOK)
	case in.Held && r.Dragging:
		r.Drag(in.Ray, in.Center, in.Dt)
	}
	if in.Released || (!in.Held && r.Dragging) {
		r.Release(in.Now)
	}
	if !r.Dragging {
		r.Settle(in.Now)
	}
	r.Normalize()
}

// RandomOrientation returns a uniformly distributed orientation.
func RandomOrientation(rng *rand.Rand) math.Quat {
	u1, u2, u3 := rng.Float32(), rng.Float32(), rng.Float32()
	a := math32.Sqrt(1 - u1)
	b := math32.Sqrt(u1)
	s2, c2 := math32.Sincos(2 * math32.Pi * u2)
	s3, c3 := math32.Sincos(2 * math32.Pi * u3)
	return math.Quat{X: a * s2, Y: a * c2, Z: b * s3, W: b * c3}.Normalize()
}

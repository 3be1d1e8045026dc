// Package tween animates a value between two endpoints over a fixed duration.
package tween

import "github.com/chewxy/math32"

// Curve maps linear progress in [0,1] to eased progress.
type Curve int

const (
	Linear Curve = iota
	Ease
)

// Apply returns the eased progress for t in [0,1].
func (c Curve) Apply(t float32) float32 {
	switch c {
	case Ease:
		return math32.Sin(math32.Pi*t-math32.Pi/2)/2 + 0.5
	default:
		return t
	}
}

// LerpFunc interpolates between a and b.
type LerpFunc[T any] func(a, b T, t float32) T

// Float32 interpolates scalars.
func Float32(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Movement moves a value from Start to End in Duration seconds.
type Movement[T any] struct {
	Start    T
	End      T
	Duration float32
	Curve    Curve

	lerp      LerpFunc[T]
	startTime float32
	active    bool
	value     T
}

// New creates an inactive movement resting at start.
func New[T any](start, end T, duration float32, curve Curve, lerp LerpFunc[T]) *Movement[T] {
	return &Movement[T]{
		Start:    start,
		End:      end,
		Duration: duration,
		Curve:    curve,
		lerp:     lerp,
		value:    start,
	}
}

// Restart starts the movement over from Start at time now.
func (m *Movement[T]) Restart(now float32) {
	m.startTime = now
	m.active = true
	m.value = m.Start
}

// Update advances the movement to time now and returns the current value.
// Once the duration has passed the value stays at End and the movement stops.
func (m *Movement[T]) Update(now float32) T {
	if !m.active {
		return m.value
	}

	t := float32(1)
	if m.Duration > 0 {
		t = (now - m.startTime) / m.Duration
	}
	if t >= 1 {
		t = 1
		m.active = false
	}
	if t < 0 {
		t = 0
	}

	m.value = m.lerp(m.Start, m.End, m.Curve.Apply(t))
	return m.value
}

// Stop freezes the movement at its current value.
func (m *Movement[T]) Stop() {
	m.active = false
}

// Package math provides the float32 vector, quaternion and matrix types used
// by the cube renderer and picking code.
package math

import "github.com/chewxy/math32"

// Vec2 is a 2D vector. Screen positions use it in screen-height units.
type Vec2 struct {
	X, Y float32
}

// Add returns v + other.
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{v.X - other.X, v.Y - other.Y}
}

// Scale returns v * s.
func (v Vec2) Scale(s float32) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Length returns the magnitude.
func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Angle returns the direction of v in radians, counter-clockwise from +X.
func (v Vec2) Angle() float32 {
	return math32.Atan2(v.Y, v.X)
}

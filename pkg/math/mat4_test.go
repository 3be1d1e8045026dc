package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestTransformPoint(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		p    Vec3
		want Vec3
	}{
		{"translate", Compose(Vec3{10, 20, 30}, QuatIdentity(), 1), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Compose(Vec3{}, QuatIdentity(), 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{1, 2, 3}, Vec3{1, 2, 3}},
	}
	for _, tt := range tests {
		if got := tt.m.TransformPoint(tt.p); !vecApprox(got, tt.want, 1e-5) {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestTransformPointDividesByW(t *testing.T) {
	m := Identity()
	m[15] = 2
	if got := m.TransformPoint(Vec3{2, 4, 6}); !vecApprox(got, Vec3{1, 2, 3}, 1e-6) {
		t.Errorf("got %v, want (1, 2, 3)", got)
	}
}

func TestCompose(t *testing.T) {
	rot := QuatFromAxisAngle(Vec3{Y: 1}, float32(math.Pi/2))
	m := Compose(Vec3{0, 0, -3}, rot, 2)

	// (0.5,0,0) scales to (1,0,0), rotates to (0,0,-1), then moves to z=-4.
	got := m.TransformPoint(Vec3{X: 0.5})
	if !vecApprox(got, Vec3{0, 0, -4}, 1e-5) {
		t.Errorf("Compose: got %v, want (0, 0, -4)", got)
	}
	if got := m.TransformPoint(Vec3{}); !vecApprox(got, Vec3{0, 0, -3}, 1e-6) {
		t.Errorf("origin maps to %v, want the position", got)
	}
}

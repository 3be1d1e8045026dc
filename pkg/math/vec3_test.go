package math

import "testing"

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 0, 4}.Normalize()
	if !approx(v.Length(), 1, 1e-6) {
		t.Errorf("length = %v, want 1", v.Length())
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should stay zero")
	}
}

func TestVec3Cross(t *testing.T) {
	got := Vec3{X: 1}.Cross(Vec3{Y: 1})
	if got != (Vec3{Z: 1}) {
		t.Errorf("x cross y = %v, want z", got)
	}
}

func TestVec3iAxis(t *testing.T) {
	v := Vec3i{1, 2, 3}
	for i, want := range []int{1, 2, 3} {
		if got := v.Axis(i); got != want {
			t.Errorf("Axis(%d) = %d, want %d", i, got, want)
		}
	}
	if got := v.WithAxis(1, 9); got != (Vec3i{1, 9, 3}) {
		t.Errorf("WithAxis = %v", got)
	}
	if got := v.Add(Vec3i{1, -1, 0}.Scale(2)); got != (Vec3i{3, 0, 3}) {
		t.Errorf("Add/Scale = %v", got)
	}
}

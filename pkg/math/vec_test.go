package math

import (
	"testing"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{2, 3, 6}
	got := v.Length()
	want := float32(7)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}

	zero := Vec3{}.Normalize()
	if zero != (Vec3{}) {
		t.Errorf("zero vector Normalize() = %v, want zero", zero)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 8}
	got := a.Lerp(b, 0.5)
	want := Vec3{1, 2, 4}
	if got != want {
		t.Errorf("Vec3.Lerp() = %v, want %v", got, want)
	}
}

func TestVec3Homogeneous(t *testing.T) {
	v := V3(1, 2, 3)
	if p := v.Point(); p != (Vec4{1, 2, 3, 1}) {
		t.Errorf("Point() = %v", p)
	}
	if d := v.Dir(); d != (Vec4{1, 2, 3, 0}) {
		t.Errorf("Dir() = %v", d)
	}
	if back := v.Point().XYZ(); back != v {
		t.Errorf("XYZ() = %v, want %v", back, v)
	}
}

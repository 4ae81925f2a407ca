package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslateScale(t *testing.T) {
	m := Translate(10, 20, 30).Mul(Scale(2, 2, 2))
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{12, 22, 32}
	if got != want {
		t.Errorf("TransformVec3 = %v, want %v", got, want)
	}
}

func TestRotateZ(t *testing.T) {
	got := RotateZ(math.Pi / 2).TransformVec3(Vec3{1, 0, 0})
	if math.Abs(float64(got.X)) > 1e-6 || math.Abs(float64(got.Y-1)) > 1e-6 {
		t.Errorf("RotateZ(90) * X = %v, want (0,1,0)", got)
	}
}

func TestLookAtMapsEyeToOrigin(t *testing.T) {
	eye := Vec3{0, -10, 5}
	view := LookAt(eye, Vec3{}, Up)
	got := view.TransformVec3(eye)
	if got.Length() > 1e-4 {
		t.Errorf("view * eye = %v, want origin", got)
	}
}

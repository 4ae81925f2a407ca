package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
}

func TestQuatNormalize(t *testing.T) {
	q := Quat{X: 1, Y: 2, Z: 3, W: 4}
	n := q.Normalize()

	length := float32(math.Sqrt(float64(n.X*n.X + n.Y*n.Y + n.Z*n.Z + n.W*n.W)))
	if math.Abs(float64(length-1.0)) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
}

func TestQuatRotateAboutUp(t *testing.T) {
	q := QuatFromAxisAngle(Up, float32(math.Pi/2))
	got := q.Rotate(Vec3{0, 10, 2})
	if math.Abs(float64(got.X+10)) > 1e-4 || math.Abs(float64(got.Y)) > 1e-4 || math.Abs(float64(got.Z-2)) > 1e-4 {
		t.Errorf("Rotate = %v, want (-10, 0, 2)", got)
	}
}

func TestQuatMulComposes(t *testing.T) {
	a := QuatFromAxisAngle(Up, float32(math.Pi/4))
	got := a.Mul(a).Rotate(Vec3{1, 0, 0})
	if math.Abs(float64(got.X)) > 1e-4 || math.Abs(float64(got.Y-1)) > 1e-4 {
		t.Errorf("two 45 degree turns = %v, want (0,1,0)", got)
	}
}

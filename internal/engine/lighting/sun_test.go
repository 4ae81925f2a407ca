package lighting

import (
	gomath "math"
	"testing"
)

func TestSunDirection(t *testing.T) {
	tests := []struct {
		name    string
		az, el  float32
		x, y, z float32
	}{
		{"zenith", 0, 90, 0, 0, -1},
		{"east horizon", 0, 0, -1, 0, 0},
		{"north horizon", 90, 0, 0, -1, 0},
		{"diagonal", 45, 45, -0.5, -0.5, -0.7071},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := SunDirection(tt.az, tt.el)
			if !near(d.X, tt.x) || !near(d.Y, tt.y) || !near(d.Z, tt.z) {
				t.Errorf("SunDirection(%v, %v) = %v, want (%v, %v, %v)", tt.az, tt.el, d, tt.x, tt.y, tt.z)
			}
			if l := d.Length(); !near(l, 1) {
				t.Errorf("length = %v, want 1", l)
			}
		})
	}
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

package water

import "testing"

func TestBuildCentered(t *testing.T) {
	p := BuildCentered(128, -128, 256, -20)
	if len(p.Vertices) != 12 {
		t.Fatalf("got %d floats, want 12", len(p.Vertices))
	}
	for i := 2; i < len(p.Vertices); i += 3 {
		if p.Vertices[i] != -20 {
			t.Errorf("vertex z = %v, want -20", p.Vertices[i])
		}
	}
	if !p.Contains(0, -256) || !p.Contains(256, 0) {
		t.Error("corners should be covered")
	}
	if p.Contains(-1, -128) {
		t.Error("point west of the plane should not be covered")
	}
}

func TestCalculateAnimFrame(t *testing.T) {
	tests := []struct {
		time, speed float32
		frames      int
		want        int
	}{
		{0, 4, 32, 0},
		{1, 4, 32, 2},
		{20, 4, 32, 8},
		{5, 4, 0, 0},
	}
	for _, tt := range tests {
		if got := CalculateAnimFrame(tt.time, tt.speed, tt.frames); got != tt.want {
			t.Errorf("CalculateAnimFrame(%v, %v, %d) = %d, want %d", tt.time, tt.speed, tt.frames, got, tt.want)
		}
	}
}

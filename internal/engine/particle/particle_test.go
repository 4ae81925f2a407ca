package particle

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

func near(a, b math.Vec3) bool {
	return float64(a.Distance(b)) < 1e-3
}

func TestProjectileReachesEnd(t *testing.T) {
	start := math.Vec3{Z: 1}
	end := math.Vec3{X: 2, Y: -1, Z: 3}
	p := NewProjectile(start, end, 0.5)

	if got := p.Position(); !near(got, start) {
		t.Errorf("start = %v", got)
	}
	p.Age = 0.5 - 1e-6
	if got := p.Position(); !near(got, end) {
		t.Errorf("end = %v, want %v", got, end)
	}
	p.Age = 1
	if got := p.Position(); got != end {
		t.Errorf("after life = %v", got)
	}
}

func TestProjectileArcs(t *testing.T) {
	p := NewProjectile(math.Vec3{}, math.Vec3{X: 2}, 1)
	p.Age = 0.5
	// Level flight under gravity peaks at g*T²/8 halfway.
	want := float32(9.81 / 8)
	if got := p.Position().Z; gomath.Abs(float64(got-want)) > 1e-3 {
		t.Errorf("apex z = %v, want %v", got, want)
	}
}

func TestScaleShrinks(t *testing.T) {
	p := NewProjectile(math.Vec3{}, math.Vec3{Z: 1}, 0.5)
	p.StartScale, p.EndScale = 0.4, 0.01
	if got := p.Scale(); got != 0.4 {
		t.Errorf("scale at start = %v", got)
	}
	p.Age = 0.25
	if got := p.Scale(); gomath.Abs(float64(got-0.205)) > 1e-5 {
		t.Errorf("scale halfway = %v", got)
	}
}

func TestSplash(t *testing.T) {
	s := NewSystem(0)
	pos := math.Vec3{X: 5, Y: 5, Z: 2}
	s.Splash(rng.New(1), pos, [4]float32{1, 0, 0, 1})

	if s.Len() != SplashCount {
		t.Fatalf("particles = %d, want %d", s.Len(), SplashCount)
	}
	for _, p := range s.P {
		d := p.End.Sub(pos)
		if d.X < -2 || d.X > 2 || d.Y < -2 || d.Y > 2 || d.Z < 1 || d.Z > 4 {
			t.Errorf("end offset %v out of range", d)
		}
		if p.StartScale < 0.2 || p.StartScale > 0.4 {
			t.Errorf("start scale %v", p.StartScale)
		}
	}

	s.Update(0.3)
	if s.Len() != SplashCount {
		t.Errorf("particles died early: %d", s.Len())
	}
	s.Update(0.3)
	if s.Len() != 0 {
		t.Errorf("particles left after life: %d", s.Len())
	}
}

func TestAddOverwritesWhenFull(t *testing.T) {
	s := NewSystem(3)
	for i := 0; i < 5; i++ {
		s.Add(Particle{Life: float32(i + 1)})
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}
	if s.P[0].Life != 4 || s.P[1].Life != 5 || s.P[2].Life != 3 {
		t.Errorf("lives = %v %v %v", s.P[0].Life, s.P[1].Life, s.P[2].Life)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Error("clear left particles")
	}
}

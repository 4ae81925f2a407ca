package physics

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/avoid-balls/pkg/math"
)

// slope is a plane z = ax + c over a square extent.
type slope struct {
	a, c float32
	half float32
}

func (s slope) Height(x, y float32) (float32, bool) {
	if x < -s.half || x > s.half || y < -s.half || y > s.half {
		return 0, false
	}
	return s.a*x + s.c, true
}

func (s slope) Extent() (lo, hi math.Vec3) {
	z0, z1 := s.c-abs(s.a)*s.half, s.c+abs(s.a)*s.half
	return math.Vec3{X: -s.half, Y: -s.half, Z: z0}, math.Vec3{X: s.half, Y: s.half, Z: z1}
}

func near(a, b, eps float32) bool {
	return gomath.Abs(float64(a-b)) <= float64(eps)
}

func TestRayHitsSphere(t *testing.T) {
	s := NewSpace()
	ball := NewBody("ball", Static, MaskNature, Sphere{Radius: 2}, math.Vec3{X: 10})
	s.Attach(ball)

	hit, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 20}, MaskNature)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Body != ball {
		t.Errorf("hit %v, want %v", hit.Body, ball)
	}
	if !near(hit.Position.X, 8, 0.01) {
		t.Errorf("hit at %v, want x=8", hit.Position)
	}
	if !near(hit.Fraction, 0.4, 0.001) {
		t.Errorf("fraction = %v, want 0.4", hit.Fraction)
	}
}

func TestQueriesRespectMask(t *testing.T) {
	s := NewSpace()
	s.Attach(NewBody("rock", Static, MaskNature, Sphere{Radius: 2}, math.Vec3{X: 10}))

	if _, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 20}, MaskTerrain); ok {
		t.Error("terrain ray should not see a nature body")
	}
	if _, ok := s.SweepTestClosest(Sphere{Radius: 1}, math.Vec3{}, math.Vec3{X: 20}, MaskPlayer, 0); ok {
		t.Error("player sweep should not see a nature body")
	}
}

func TestRayMissReturnsFalse(t *testing.T) {
	s := NewSpace()
	s.Attach(NewBody("rock", Static, MaskNature, Sphere{Radius: 1}, math.Vec3{X: 10, Y: 5}))
	if _, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 20}, MaskAll); ok {
		t.Error("expected miss")
	}
	if _, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 5}, MaskAll); ok {
		t.Error("segment ends before the body")
	}
}

func TestClosestOfSeveral(t *testing.T) {
	s := NewSpace()
	far := NewBody("far", Static, MaskNature, Sphere{Radius: 1}, math.Vec3{X: 30})
	nearBody := NewBody("near", Static, MaskNature, Box{Half: math.Vec3{X: 1, Y: 1, Z: 1}}, math.Vec3{X: 10})
	s.Attach(far)
	s.Attach(nearBody)

	hit, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 40}, MaskAll)
	if !ok || hit.Body != nearBody {
		t.Fatalf("expected near body, got %v", hit.Body)
	}
	if !near(hit.Position.X, 9, 0.01) {
		t.Errorf("hit at %v, want x=9", hit.Position)
	}
}

func TestSweepInflatesByRadius(t *testing.T) {
	s := NewSpace()
	post := NewBody("post", Static, MaskNature, Capsule{Radius: 0.5, HalfHeight: 2}, math.Vec3{X: 10, Y: 1.2})
	s.Attach(post)

	if _, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 20}, MaskAll); ok {
		t.Error("thin ray should pass the post")
	}
	hit, ok := s.SweepTestClosest(Sphere{Radius: 0.5}, math.Vec3{}, math.Vec3{X: 20}, MaskAll, 0.5)
	if !ok {
		t.Fatal("sphere with margin should clip the post")
	}
	if d := post.Distance(hit.Position); !near(d, 1, 0.01) {
		t.Errorf("contact distance = %v, want 1", d)
	}
}

func TestGhostsDoNotBlock(t *testing.T) {
	s := NewSpace()
	s.Attach(NewBody("sensor", Ghost, MaskAll, Box{Half: math.Vec3{X: 3, Y: 3, Z: 3}}, math.Vec3{X: 10}))
	if _, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 20}, MaskAll); ok {
		t.Error("ghost bodies must not block rays")
	}
}

func TestRotatedBox(t *testing.T) {
	s := NewSpace()
	box := NewBody("wall", Static, MaskFoundation, Box{Half: math.Vec3{X: 5, Y: 0.5, Z: 1}}, math.Vec3{})
	box.Heading = 90
	s.Attach(box)

	if _, ok := s.RayTestClosest(math.Vec3{X: -10, Y: 3}, math.Vec3{X: 10, Y: 3}, MaskAll); !ok {
		t.Error("rotated wall spans y in [-5, 5] and should be hit")
	}
	if _, ok := s.RayTestClosest(math.Vec3{X: 3, Y: -10}, math.Vec3{X: 3, Y: 10}, MaskAll); ok {
		t.Error("rotated wall is only 1 unit thick along x")
	}
}

func TestHeightfieldRay(t *testing.T) {
	s := NewSpace()
	ground := NewBody("terrain", Static, MaskTerrain, Heightfield{Sampler: slope{a: 0.5, c: 2, half: 50}}, math.Vec3{})
	s.Attach(ground)

	tests := []struct {
		name     string
		from, to math.Vec3
		wantZ    float32
	}{
		{"vertical", math.Vec3{X: 4, Y: 1, Z: 50}, math.Vec3{X: 4, Y: 1, Z: -50}, 4},
		{"slanted", math.Vec3{X: -10, Y: 0, Z: 40}, math.Vec3{X: 10, Y: 0, Z: -40}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.RayTestClosest(tt.from, tt.to, MaskTerrain)
			if !ok {
				t.Fatal("expected terrain hit")
			}
			h, _ := slope{a: 0.5, c: 2, half: 50}.Height(hit.Position.X, hit.Position.Y)
			if !near(hit.Position.Z, h, 0.05) {
				t.Errorf("hit %v is not on the surface (h=%v)", hit.Position, h)
			}
			if tt.name == "vertical" && !near(hit.Position.Z, tt.wantZ, 0.001) {
				t.Errorf("hit z = %v, want %v", hit.Position.Z, tt.wantZ)
			}
		})
	}

	if _, ok := s.RayTestClosest(math.Vec3{X: 80, Z: 50}, math.Vec3{X: 80, Z: -50}, MaskTerrain); ok {
		t.Error("ray outside the heightfield should miss")
	}
}

func TestHeightfieldSweep(t *testing.T) {
	s := NewSpace()
	s.Attach(NewBody("terrain", Static, MaskTerrain, Heightfield{Sampler: slope{half: 50}}, math.Vec3{}))

	hit, ok := s.SweepTestClosest(Sphere{Radius: 4}, math.Vec3{Z: 50}, math.Vec3{Z: -50}, MaskTerrain, 0)
	if !ok {
		t.Fatal("expected hit")
	}
	if !near(hit.Position.Z, 4, 0.001) {
		t.Errorf("sphere center = %v, want z=4", hit.Position)
	}
}

func TestOverlappingBodies(t *testing.T) {
	s := NewSpace()
	sensor := NewBody("sensor", Ghost, MaskSensor, Box{Half: math.Vec3{X: 3, Y: 0.125, Z: 0.125}}, math.Vec3{Z: 1.5})
	player := NewBody("player", Kinematic, MaskPlayer|MaskSensor, Capsule{Radius: 0.5, HalfHeight: 1}, math.Vec3{Y: 5, Z: 1.5})
	rock := NewBody("rock", Static, MaskNature, Sphere{Radius: 1}, math.Vec3{Z: 1.5})
	s.Attach(sensor)
	s.Attach(player)
	s.Attach(rock)

	if got := s.OverlappingBodies(sensor); len(got) != 0 {
		t.Errorf("expected nothing inside, got %v", got)
	}

	player.Position.Y = 0.3
	got := s.OverlappingBodies(sensor)
	if len(got) != 1 || got[0] != player {
		t.Errorf("expected the player, got %v", got)
	}

	player.Position.Y = 0.7
	if got := s.OverlappingBodies(sensor); len(got) != 0 {
		t.Errorf("capsule 0.7 from a 0.125 thick box should be clear, got %v", got)
	}
}

func TestAttachRemove(t *testing.T) {
	s := NewSpace()
	a := NewBody("a", Static, MaskNature, Sphere{Radius: 1}, math.Vec3{X: 10})
	b := NewBody("b", Kinematic, MaskBall, Sphere{Radius: 1}, math.Vec3{X: 10})
	s.Attach(a)
	s.Attach(a)
	s.Attach(b)
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if a.ID == 0 || a.ID == b.ID {
		t.Errorf("bodies should get distinct IDs, got %d and %d", a.ID, b.ID)
	}
	if s.Count(MaskBall) != 1 {
		t.Errorf("Count(MaskBall) = %d, want 1", s.Count(MaskBall))
	}

	s.Remove(a)
	s.Remove(a)
	if s.Contains(a) || !s.Contains(b) {
		t.Error("Remove should only detach the given body")
	}
	if _, ok := s.RayTestClosest(math.Vec3{}, math.Vec3{X: 20}, MaskNature); ok {
		t.Error("removed body should not be hit")
	}
}

func TestManyStaticBodies(t *testing.T) {
	s := NewSpace()
	for i := 0; i < 200; i++ {
		x := float32(i%20)*10 - 100
		y := float32(i/20)*10 - 50
		s.Attach(NewBody("tree", Static, MaskNature, Capsule{Radius: 0.5, HalfHeight: 2}, math.Vec3{X: x, Y: y}))
	}
	hit, ok := s.SweepTestClosest(Sphere{Radius: 4}, math.Vec3{X: 1, Y: 1, Z: 50}, math.Vec3{X: 1, Y: 1, Z: -50}, MaskNature, 0)
	if !ok {
		t.Fatal("a clearance sweep next to a tree should be blocked")
	}
	if hit.Body.Position.X != 0 || hit.Body.Position.Y != 0 {
		t.Errorf("hit tree at %v, want origin", hit.Body.Position)
	}
	if _, ok := s.SweepTestClosest(Sphere{Radius: 4}, math.Vec3{X: 5, Y: 5, Z: 50}, math.Vec3{X: 5, Y: 5, Z: -50}, MaskNature, 0); ok {
		t.Error("a spot between trees should be clear")
	}
}

func TestBodiesByMask(t *testing.T) {
	s := NewSpace()
	tree := NewBody("tree", Static, MaskNature, Sphere{Radius: 1}, math.Vec3{})
	ball := NewBody("ball", Kinematic, MaskBall, Sphere{Radius: 1}, math.Vec3{X: 5})
	rock := NewBody("rock", Static, MaskNature, Sphere{Radius: 1}, math.Vec3{X: 9})
	s.Attach(tree)
	s.Attach(ball)
	s.Attach(rock)

	got := s.Bodies(MaskNature)
	if len(got) != 2 || got[0] != tree || got[1] != rock {
		t.Errorf("Bodies(MaskNature) = %v, want [tree rock]", got)
	}
	if len(s.Bodies(MaskAll)) != 3 {
		t.Errorf("Bodies(MaskAll) = %d bodies, want 3", len(s.Bodies(MaskAll)))
	}
}

package goal

import (
	stdmath "math"
	"testing"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

func TestCrosses(t *testing.T) {
	l := math.Vec2{X: -3}
	r := math.Vec2{X: 3}

	tests := []struct {
		name    string
		in, out math.Vec2
		want    bool
	}{
		{"straight through", math.Vec2{Y: -1}, math.Vec2{Y: 1}, true},
		{"diagonal through", math.Vec2{X: -2, Y: -1}, math.Vec2{X: 2, Y: 1}, true},
		{"back out same side", math.Vec2{Y: -1}, math.Vec2{X: 1, Y: -0.5}, false},
		{"outside the posts", math.Vec2{X: 4, Y: -1}, math.Vec2{X: 5, Y: 1}, false},
		{"touching endpoint", math.Vec2{Y: -1}, math.Vec2{}, true},
		{"parallel", math.Vec2{X: -1, Y: 1}, math.Vec2{X: 1, Y: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Crosses(l, r, tt.in, tt.out); got != tt.want {
				t.Errorf("Crosses(%v, %v) = %v, want %v", tt.in, tt.out, got, tt.want)
			}
		})
	}
}

func TestPostsFollowHeading(t *testing.T) {
	space := physics.NewSpace()
	g := NewGate(space, nil)
	g.Setup(math.Vec3{X: 10, Y: 20, Z: 5}, 90)

	left, right := g.Posts()
	// A quarter turn maps local +X onto +Y.
	if d := left.Distance(math.Vec2{X: 10, Y: 17}); d > 1e-4 {
		t.Errorf("left post = %v", left)
	}
	if d := right.Distance(math.Vec2{X: 10, Y: 23}); d > 1e-4 {
		t.Errorf("right post = %v", right)
	}
}

func TestSetupAndCleanup(t *testing.T) {
	space := physics.NewSpace()
	g := NewGate(space, nil)
	g.Setup(math.Vec3{Z: 2}, 0)

	if got := space.Len(); got != 4 {
		t.Fatalf("attached bodies = %d, want 4", got)
	}
	if got := space.Count(physics.MaskFoundation); got != 1 {
		t.Errorf("foundations = %d, want 1", got)
	}
	if got := g.Sensor().Body().Position.Z; got != 3.5 {
		t.Errorf("sensor z = %v, want 3.5", got)
	}

	// Setting up again moves the gate instead of duplicating it.
	g.Setup(math.Vec3{X: 50}, 45)
	if got := space.Len(); got != 4 {
		t.Errorf("after second setup = %d, want 4", got)
	}

	g.Cleanup()
	if got := space.Len(); got != 0 {
		t.Errorf("after cleanup = %d, want 0", got)
	}
	if g.Active() {
		t.Error("gate still active")
	}
}

// walk moves a player capsule along x = px from y0 to y1 and polls the gate
// every step. It returns how many times Check reported a finish.
func walk(g *Gate, player *physics.Body, px, y0, y1 float32) int {
	finishes := 0
	steps := int(stdmath.Abs(float64(y1-y0)) / 0.1)
	dir := float32(1)
	if y1 < y0 {
		dir = -1
	}
	for i := 0; i <= steps; i++ {
		player.Position = math.Vec3{X: px, Y: y0 + dir*float32(i)*0.1, Z: 1.5}
		if g.Check() {
			finishes++
		}
	}
	return finishes
}

func newPlayer(space *physics.Space) *physics.Body {
	p := physics.NewBody("player", physics.Kinematic, physics.MaskPlayer|physics.MaskSensor,
		physics.Capsule{Radius: 0.5, HalfHeight: 1}, math.Vec3{Y: -10})
	space.Attach(p)
	return p
}

func TestWalkThrough(t *testing.T) {
	space := physics.NewSpace()
	g := NewGate(space, nil)
	g.Setup(math.Vec3{}, 0)
	player := newPlayer(space)

	if n := walk(g, player, 0, -3, 3); n != 1 {
		t.Fatalf("finishes = %d, want 1", n)
	}
	if !g.Finished() {
		t.Error("gate not finished")
	}

	// A finished sensor ignores further passes.
	if n := walk(g, player, 0, 3, -3); n != 0 {
		t.Errorf("finishes after finish = %d, want 0", n)
	}
}

func TestEnterAndBackOut(t *testing.T) {
	space := physics.NewSpace()
	g := NewGate(space, nil)
	g.Setup(math.Vec3{}, 0)
	player := newPlayer(space)

	walk(g, player, 0, -3, -0.1)
	if g.Sensor().State() != Entered {
		t.Fatalf("state = %v, want entered", g.Sensor().State())
	}
	if n := walk(g, player, 0, -0.1, -3); n != 0 {
		t.Errorf("finishes = %d, want 0", n)
	}
	if g.Finished() {
		t.Error("backing out should not finish")
	}
	if s := g.Sensor(); s.State() != Idle || s.InPoint() != (math.Vec3{}) {
		t.Errorf("sensor not cleared: %v in=%v", s.State(), s.InPoint())
	}

	// The next pass is judged on its own.
	if n := walk(g, player, 1, -3, 3); n != 1 {
		t.Errorf("second pass finishes = %d, want 1", n)
	}
}

func TestWalkAroundPost(t *testing.T) {
	space := physics.NewSpace()
	g := NewGate(space, nil)
	g.Setup(math.Vec3{}, 0)
	player := newPlayer(space)

	if n := walk(g, player, 10, -3, 3); n != 0 {
		t.Errorf("finishes = %d, want 0", n)
	}
	if g.Sensor().State() != Idle {
		t.Errorf("state = %v", g.Sensor().State())
	}
}

func TestPickCorner(t *testing.T) {
	r := rng.New(7)
	for i := 0; i < 20; i++ {
		s := PickCorner(r)
		found := false
		for _, c := range Corners {
			if c == s {
				found = true
			}
		}
		if !found {
			t.Fatalf("PickCorner returned %v", s)
		}
	}
}

func TestCornersFaceCenter(t *testing.T) {
	for _, c := range Corners {
		// The post line must be square to the diagonal through the center.
		line := math.Vec2{X: 1}.Rotate(math.Radians(c.Heading))
		toCenter := math.Vec2{X: -c.X, Y: -c.Y}.Normalize()
		if d := line.Dot(toCenter); d > 1e-3 || d < -1e-3 {
			t.Errorf("corner %v post line %v (dot %v)", c, line, d)
		}
	}
}

package walker

import (
	gomath "math"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/avoid-balls/internal/engine/character"
	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// ramp is the ground z = 0.01x over a square.
type ramp struct{ half float32 }

func (r ramp) Height(x, y float32) (float32, bool) {
	if x < -r.half || x > r.half || y < -r.half || y > r.half {
		return 0, false
	}
	return 0.01 * x, true
}

func (r ramp) Extent() (lo, hi math.Vec3) {
	return math.Vec3{X: -r.half, Y: -r.half, Z: -0.01 * r.half}, math.Vec3{X: r.half, Y: r.half, Z: 0.01 * r.half}
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-2
}

func newWalker(t *testing.T) (*Walker, *physics.Space) {
	t.Helper()
	space := physics.NewSpace()
	space.Attach(physics.NewBody("terrain", physics.Static, physics.MaskTerrain,
		physics.Heightfield{Sampler: ramp{half: 100}}, math.Vec3{}))
	w := New(space, DefaultConfig(), nil)
	w.SetPosition(math.Vec3{Z: 1.5})
	return w, space
}

// run applies the same motion for n frames of dt.
func run(w *Walker, m Motion, n int, dt float32) {
	for i := 0; i < n; i++ {
		w.Update(dt, m)
	}
}

func TestTurn(t *testing.T) {
	w, _ := newWalker(t)
	run(w, Left, 10, 0.1)
	if !near(w.Heading(), 100) {
		t.Errorf("heading = %v, want 100", w.Heading())
	}
	run(w, Right, 5, 0.1)
	if !near(w.Heading(), 50) {
		t.Errorf("heading = %v, want 50", w.Heading())
	}
	if w.Position() != (math.Vec3{Z: 1.5}) {
		t.Errorf("turning moved the walker to %v", w.Position())
	}
}

func TestForwardFollowsGround(t *testing.T) {
	w, _ := newWalker(t)
	w.SetHeading(-90) // facing +X
	run(w, Forward, 10, 0.1)

	p := w.Position()
	if !near(p.X, 10) || !near(p.Y, 0) {
		t.Errorf("position = %v, want x=10", p)
	}
	if !near(p.Z, 0.1+1.5) {
		t.Errorf("z = %v, want ground + stand height", p.Z)
	}
}

func TestBackwardIsSlower(t *testing.T) {
	w, _ := newWalker(t)
	run(w, Backward, 10, 0.1)
	if p := w.Position(); !near(p.Y, -5) {
		t.Errorf("y = %v, want -5", p.Y)
	}
}

func TestOffTerrainStops(t *testing.T) {
	w, _ := newWalker(t)
	w.SetPosition(math.Vec3{Y: 99.5, Z: 1.5})
	run(w, Forward, 10, 0.1)
	if p := w.Position(); p.Y > 100 {
		t.Errorf("walked off the terrain to %v", p)
	}
}

func TestNatureBlocks(t *testing.T) {
	w, space := newWalker(t)
	space.Attach(physics.NewBody("tree", physics.Static, physics.MaskNature,
		physics.Capsule{Radius: 1, HalfHeight: 9}, math.Vec3{Y: 3.3, Z: 10}))

	run(w, Forward, 20, 0.1)
	if p := w.Position(); p.Y > 1.5 {
		t.Errorf("walked through the tree to %v", p)
	}
}

func TestCameraOffsetBehind(t *testing.T) {
	w, _ := newWalker(t)
	off := w.CameraOffset()
	if !near(off.Y, -10) || !near(off.Z, 2) {
		t.Errorf("offset = %v, want behind and above", off)
	}
	if f := w.Facing(); !near(f.Y, 1) {
		t.Errorf("facing = %v", f)
	}
}

func TestAnimation(t *testing.T) {
	tests := []struct {
		motion  Motion
		anim    string
		rate    float32
		playing bool
	}{
		{Forward, AnimRun, 1, true},
		{Backward, AnimWalk, -1, true},
		{Left, AnimWalk, 1, true},
		{Standing, AnimWalk, 1, false},
	}
	w, _ := newWalker(t)
	for _, tt := range tests {
		t.Run(tt.motion.String(), func(t *testing.T) {
			w.Update(0.016, tt.motion)
			a := w.Actor()
			if a.CurrentAnim() != tt.anim || a.Playing() != tt.playing {
				t.Errorf("anim = %s playing=%v, want %s playing=%v", a.CurrentAnim(), a.Playing(), tt.anim, tt.playing)
			}
			if tt.playing && a.PlayRate() != tt.rate {
				t.Errorf("rate = %v, want %v", a.PlayRate(), tt.rate)
			}
		})
	}
	if w.Actor().Frame() != standFrame {
		t.Errorf("standing frame = %d, want %d", w.Actor().Frame(), standFrame)
	}
}

func TestMotionFrom(t *testing.T) {
	tests := []struct {
		forward, backward, left, right bool
		want                           Motion
	}{
		{false, false, false, false, Standing},
		{true, false, false, false, Forward},
		{false, true, false, false, Backward},
		{false, false, true, false, Left},
		{false, false, false, true, Right},
		{true, true, false, false, Backward},
		{true, false, true, false, Forward},
		{false, false, true, true, Right},
	}
	for _, tt := range tests {
		if got := MotionFrom(tt.forward, tt.backward, tt.left, tt.right); got != tt.want {
			t.Errorf("MotionFrom(%v, %v, %v, %v) = %s, want %s",
				tt.forward, tt.backward, tt.left, tt.right, got, tt.want)
		}
	}
}

func TestAnimationErrorsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	space := physics.NewSpace()
	space.Attach(physics.NewBody("terrain", physics.Static, physics.MaskTerrain,
		physics.Heightfield{Sampler: ramp{half: 100}}, math.Vec3{}))
	w := New(space, DefaultConfig(), zap.New(core))
	w.SetPosition(math.Vec3{Z: 1.5})
	w.actor = character.NewActor()

	w.Update(0.016, Forward)
	if n := logs.FilterMessage("animation failed").Len(); n != 1 {
		t.Errorf("expected 1 animation failure log, got %d", n)
	}
}

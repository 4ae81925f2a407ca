package character

import "testing"

func newTestActor() *Actor {
	return NewActor(
		Animation{Name: "walk", Frames: 4, Interval: 100},
		Animation{Name: "run", Frames: 8},
	)
}

func TestLoopAdvancesFrames(t *testing.T) {
	a := newTestActor()
	if err := a.Loop("walk"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		delta float32
		want  int
	}{
		{50, 0},
		{50, 1},
		{200, 3},
		{100, 0}, // wraps
	}
	for i, tt := range tests {
		a.Update(tt.delta)
		if got := a.Frame(); got != tt.want {
			t.Errorf("step %d: frame = %d, want %d", i, got, tt.want)
		}
	}
}

func TestLoopUnknown(t *testing.T) {
	a := newTestActor()
	if err := a.Loop("swim"); err == nil {
		t.Error("expected error for unknown animation")
	}
	if a.CurrentAnim() != "" {
		t.Errorf("current = %q", a.CurrentAnim())
	}
}

func TestNegativeRatePlaysBackward(t *testing.T) {
	a := newTestActor()
	a.SetPlayRate(-1)
	a.Loop("walk")
	if got := a.Frame(); got != 3 {
		t.Fatalf("start frame = %d, want 3", got)
	}
	a.Update(100)
	if got := a.Frame(); got != 2 {
		t.Errorf("frame = %d, want 2", got)
	}
	a.Update(300)
	if got := a.Frame(); got != 3 {
		t.Errorf("frame after wrap = %d, want 3", got)
	}
}

func TestReloopKeepsFrame(t *testing.T) {
	a := newTestActor()
	a.Loop("walk")
	a.Update(150)
	a.Loop("walk")
	if got := a.Frame(); got != 1 {
		t.Errorf("frame = %d, want 1", got)
	}
	a.Loop("run")
	if got, anim := a.Frame(), a.CurrentAnim(); got != 0 || anim != "run" {
		t.Errorf("switch: %s frame %d", anim, got)
	}
}

func TestStopAndPose(t *testing.T) {
	a := newTestActor()
	a.Loop("run")
	a.Update(DefaultAnimInterval * 2)
	a.Stop()
	a.Update(1000)
	if got := a.Frame(); got != 2 {
		t.Errorf("stopped frame = %d, want 2", got)
	}

	if err := a.Pose("walk", 9); err != nil {
		t.Fatal(err)
	}
	if a.Playing() || a.Frame() != 3 || a.CurrentAnim() != "walk" {
		t.Errorf("pose: playing=%v frame=%d anim=%s", a.Playing(), a.Frame(), a.CurrentAnim())
	}
}

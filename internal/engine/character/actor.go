// Package character provides keyframe animation playback for actors.
package character

import "fmt"

// DefaultAnimInterval is the default frame interval in milliseconds.
const DefaultAnimInterval = 40.0

// MinAnimInterval is the minimum frame interval in milliseconds.
const MinAnimInterval = 10.0

// Animation is a named frame sequence.
type Animation struct {
	Name     string
	Frames   int
	Interval float32 // Milliseconds per frame, DefaultAnimInterval when 0
}

// Actor plays one animation at a time.
type Actor struct {
	anims map[string]Animation

	current   string
	frame     int
	frameTime float32
	rate      float32
	looping   bool
}

// NewActor creates an actor with the given animations.
func NewActor(anims ...Animation) *Actor {
	a := &Actor{anims: make(map[string]Animation, len(anims)), rate: 1}
	for _, anim := range anims {
		a.anims[anim.Name] = anim
	}
	return a
}

// Has reports whether the actor knows the animation.
func (a *Actor) Has(name string) bool {
	_, ok := a.anims[name]
	return ok
}

// Loop starts looping the animation. Looping the current animation again
// keeps its frame.
func (a *Actor) Loop(name string) error {
	if _, ok := a.anims[name]; !ok {
		return fmt.Errorf("unknown animation %q", name)
	}
	if a.looping && a.current == name {
		return nil
	}
	a.current = name
	a.frame = 0
	if a.rate < 0 {
		a.frame = a.anims[name].Frames - 1
	}
	a.frameTime = 0
	a.looping = true
	return nil
}

// SetPlayRate sets the playback speed. Negative rates play backward.
func (a *Actor) SetPlayRate(rate float32) {
	a.rate = rate
}

// PlayRate returns the playback speed.
func (a *Actor) PlayRate() float32 {
	return a.rate
}

// Stop halts playback on the current frame.
func (a *Actor) Stop() {
	a.looping = false
}

// Pose stops playback and holds the given frame.
func (a *Actor) Pose(name string, frame int) error {
	anim, ok := a.anims[name]
	if !ok {
		return fmt.Errorf("unknown animation %q", name)
	}
	a.current = name
	a.frame = clampFrame(frame, anim.Frames)
	a.frameTime = 0
	a.looping = false
	return nil
}

// CurrentAnim returns the current animation name, empty before the first
// Loop or Pose.
func (a *Actor) CurrentAnim() string {
	return a.current
}

// Frame returns the current frame index.
func (a *Actor) Frame() int {
	return a.frame
}

// Playing reports whether an animation is looping.
func (a *Actor) Playing() bool {
	return a.looping
}

// Update advances the current animation. deltaMs is the time since the last
// update in milliseconds.
func (a *Actor) Update(deltaMs float32) {
	if !a.looping || a.rate == 0 {
		return
	}
	anim := a.anims[a.current]
	if anim.Frames <= 0 {
		return
	}

	interval := anim.Interval
	if interval <= 0 {
		interval = DefaultAnimInterval
	}
	if interval < MinAnimInterval {
		interval = MinAnimInterval
	}

	step := 1
	if a.rate < 0 {
		step = -1
	}
	a.frameTime += deltaMs * abs(a.rate)
	for a.frameTime >= interval {
		a.frameTime -= interval
		a.frame = (a.frame + step + anim.Frames) % anim.Frames
	}
}

func clampFrame(frame, frames int) int {
	if frame < 0 || frames <= 0 {
		return 0
	}
	if frame >= frames {
		return frames - 1
	}
	return frame
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

package states

// Fade animates the switching screen alpha between 0 (hidden) and 1 (fully
// shown) over a fixed duration.
type Fade struct {
	duration float64
	alpha    float64
	target   float64
}

// NewFade creates a hidden fade.
func NewFade(seconds float64) *Fade {
	return &Fade{duration: seconds}
}

// In starts covering the screen.
func (f *Fade) In() {
	f.target = 1
}

// Out starts uncovering the screen.
func (f *Fade) Out() {
	f.target = 0
}

// Update moves alpha toward the target.
func (f *Fade) Update(dt float64) {
	if f.duration <= 0 {
		f.alpha = f.target
		return
	}
	step := dt / f.duration
	switch {
	case f.alpha < f.target:
		f.alpha = min(f.alpha+step, f.target)
	case f.alpha > f.target:
		f.alpha = max(f.alpha-step, f.target)
	}
}

// Alpha returns the current coverage.
func (f *Fade) Alpha() float32 {
	return float32(f.alpha)
}

// Shown reports whether the screen is fully covered.
func (f *Fade) Shown() bool {
	return f.alpha >= 1
}

// Hidden reports whether the screen is fully uncovered.
func (f *Fade) Hidden() bool {
	return f.alpha <= 0
}

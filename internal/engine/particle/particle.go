// Package particle runs short cosmetic effects such as ball splashes.
// Particles never touch physics or game state.
package particle

import (
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Gravity pulls projectile particles down.
var Gravity = math.Vec3{Z: -9.81}

// MaxParticles is the default system capacity.
const MaxParticles = 512

// Splash settings.
const (
	SplashCount    = 10
	SplashLife     = 0.5 // Seconds
	SplashEndScale = 0.01
)

// Particle is a projectile that lands on End after Life seconds while its
// scale shrinks from StartScale to EndScale.
type Particle struct {
	Start, End math.Vec3
	Velocity   math.Vec3 // Initial velocity reaching End under Gravity

	Age, Life  float32
	StartScale float32
	EndScale   float32
	Color      [4]float32
}

// NewProjectile builds a particle flying from start to end in life seconds.
func NewProjectile(start, end math.Vec3, life float32) Particle {
	p := Particle{Start: start, End: end, Life: life}
	if life > 0 {
		// end = start + v*T + g*T²/2
		p.Velocity = end.Sub(start).Sub(Gravity.Scale(0.5 * life * life)).Scale(1 / life)
	}
	return p
}

// Position returns where the particle is now.
func (p *Particle) Position() math.Vec3 {
	if p.Age >= p.Life {
		return p.End
	}
	t := p.Age
	return p.Start.Add(p.Velocity.Scale(t)).Add(Gravity.Scale(0.5 * t * t))
}

// Scale returns the current uniform scale.
func (p *Particle) Scale() float32 {
	if p.Life <= 0 {
		return p.EndScale
	}
	t := min(p.Age/p.Life, 1)
	return p.StartScale + (p.EndScale-p.StartScale)*t
}

// Alive reports whether the particle still plays.
func (p *Particle) Alive() bool {
	return p.Age < p.Life
}

// System owns a bounded set of particles.
type System struct {
	Max    int
	P      []Particle
	ovrIdx int // circular overwrite index when full
}

// NewSystem creates a system holding at most maxParticles.
func NewSystem(maxParticles int) *System {
	if maxParticles <= 0 {
		maxParticles = MaxParticles
	}
	return &System{Max: maxParticles, P: make([]Particle, 0, maxParticles)}
}

// Clear drops every particle.
func (s *System) Clear() {
	s.P = s.P[:0]
	s.ovrIdx = 0
}

// Add inserts p, overwriting the oldest slots when full.
func (s *System) Add(p Particle) {
	if len(s.P) < s.Max {
		s.P = append(s.P, p)
		return
	}
	if s.ovrIdx >= s.Max {
		s.ovrIdx = 0
	}
	s.P[s.ovrIdx] = p
	s.ovrIdx++
}

// Len returns the live particle count.
func (s *System) Len() int {
	return len(s.P)
}

// Update ages every particle and drops finished ones.
func (s *System) Update(dt float32) {
	alive := s.P[:0]
	for _, p := range s.P {
		p.Age += dt
		if p.Alive() {
			alive = append(alive, p)
		}
	}
	s.P = alive
	if s.ovrIdx > len(s.P) {
		s.ovrIdx = 0
	}
}

// Splash bursts SplashCount droplets up and out of pos.
func (s *System) Splash(r *rng.RNG, pos math.Vec3, color [4]float32) {
	for i := 0; i < SplashCount; i++ {
		end := pos.Add(math.Vec3{
			X: r.Range(-2, 2),
			Y: r.Range(-2, 2),
			Z: r.Range(1, 4),
		})
		p := NewProjectile(pos, end, SplashLife)
		p.StartScale = r.Range(0.2, 0.4)
		p.EndScale = SplashEndScale
		p.Color = color
		s.Add(p)
	}
}

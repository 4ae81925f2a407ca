// Package ball implements the projectiles: quadratic Bézier flights from a
// launch point to a spot near the player, continuous collision against the
// player and the environment, and the score they produce.
package ball

import (
	"fmt"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// State is a ball's flight phase.
type State int

const (
	Flying State = iota
	Landed
)

func (s State) String() string {
	switch s {
	case Flying:
		return "flying"
	case Landed:
		return "landed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Outcome is how a flight ended.
type Outcome int

const (
	None    Outcome = iota // Still flying, or finished without touching anything
	Avoided                // Hit the environment
	Hit                    // Hit the player
)

func (o Outcome) String() string {
	switch o {
	case None:
		return "none"
	case Avoided:
		return "avoided"
	case Hit:
		return "hit"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Radius of a ball body.
const Radius = 0.5

// Ball is one projectile.
type Ball struct {
	ID       int
	Points   [3]math.Vec3 // Launch, elevated midpoint, destination
	T        float32
	Position math.Vec3
	State    State
	Outcome  Outcome
	Body     *physics.Body
}

// NewBall creates a ball at launch heading for dest. The control point sits
// arc units above the midpoint of the two.
func NewBall(launch, dest math.Vec3, arc float32) *Ball {
	mid := launch.Add(dest).Scale(0.5)
	mid.Z += arc
	return &Ball{
		Points:   [3]math.Vec3{launch, mid, dest},
		Position: launch,
		Body:     physics.NewBody("ball", physics.Kinematic, physics.MaskBall, physics.Sphere{Radius: Radius}, launch),
	}
}

// Launch returns the first control point.
func (b *Ball) Launch() math.Vec3 {
	return b.Points[0]
}

// Mid returns the elevated control point.
func (b *Ball) Mid() math.Vec3 {
	return b.Points[1]
}

// Destination returns the last control point.
func (b *Ball) Destination() math.Vec3 {
	return b.Points[2]
}

// At returns the curve position at t without moving the ball.
func (b *Ball) At(t float32) math.Vec3 {
	if t >= 1 {
		return b.Points[2]
	}
	return Bezier(b.Points[:], t)
}

// Advance moves T forward by dt/duration, clamped to 1, and returns the new
// curve position. Landed balls do not move.
func (b *Ball) Advance(dt, duration float32) math.Vec3 {
	if b.State == Landed {
		return b.Position
	}
	if duration <= 0 {
		b.T = 1
	} else {
		b.T += dt / duration
	}
	if b.T > 1 {
		b.T = 1
	}
	return b.At(b.T)
}

// MoveTo places the ball and its body.
func (b *Ball) MoveTo(p math.Vec3) {
	b.Position = p
	b.Body.Position = p
}

// Done reports whether the flight reached its end.
func (b *Ball) Done() bool {
	return b.T >= 1
}

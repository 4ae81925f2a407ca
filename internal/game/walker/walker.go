// Package walker implements the player character: keyboard driven turning
// and walking over the terrain with collision against nature.
package walker

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/character"
	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Motion is the movement requested for one frame.
type Motion int

const (
	Standing Motion = iota
	Forward
	Backward
	Left
	Right
)

func (m Motion) String() string {
	switch m {
	case Standing:
		return "standing"
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Motion(%d)", int(m))
	}
}

// Animation names.
const (
	AnimRun  = "run"
	AnimWalk = "walk"

	standFrame = 5
)

// MotionFrom picks one motion from the held direction keys. Moving wins
// over turning and backward wins over forward.
func MotionFrom(forward, backward, left, right bool) Motion {
	switch {
	case backward:
		return Backward
	case forward:
		return Forward
	case right:
		return Right
	case left:
		return Left
	default:
		return Standing
	}
}

// Config holds walker tuning.
type Config struct {
	TurnRate      float32 `yaml:"turn_rate"`      // Degrees per second
	ForwardSpeed  float32 `yaml:"forward_speed"`  // Units per second
	BackwardSpeed float32 `yaml:"backward_speed"` // Units per second
	StandHeight   float32 `yaml:"stand_height"`   // Body center above ground contact
	ProbeDepth    float32 `yaml:"probe_depth"`    // Ground ray length
	SweepRadius   float32 `yaml:"sweep_radius"`
	CameraDist    float32 `yaml:"camera_distance"`
	CameraHeight  float32 `yaml:"camera_height"`
	LookHeight    float32 `yaml:"look_height"`
}

// DefaultConfig returns the default walker tuning.
func DefaultConfig() Config {
	return Config{
		TurnRate:      100,
		ForwardSpeed:  10,
		BackwardSpeed: 5,
		StandHeight:   1.5,
		ProbeDepth:    30,
		SweepRadius:   0.5,
		CameraDist:    10,
		CameraHeight:  2,
		LookHeight:    3,
	}
}

// Body dimensions.
const (
	BodyRadius     = 0.6
	BodyHalfHeight = 0.9
)

// Walker is the player.
type Walker struct {
	world physics.World
	cfg   Config
	log   *zap.Logger

	body    *physics.Body
	heading float32
	motion  Motion
	actor   *character.Actor
}

// New creates a walker and attaches its body at pos.
func New(w physics.World, cfg Config, log *zap.Logger) *Walker {
	if log == nil {
		log = zap.NewNop()
	}
	wk := &Walker{
		world: w,
		cfg:   cfg,
		log:   log,
		body: physics.NewBody("walker", physics.Kinematic, physics.MaskPlayer|physics.MaskSensor,
			physics.Capsule{Radius: BodyRadius, HalfHeight: BodyHalfHeight}, math.Vec3{}),
		actor: character.NewActor(
			character.Animation{Name: AnimRun, Frames: 22},
			character.Animation{Name: AnimWalk, Frames: 35},
		),
	}
	w.Attach(wk.body)
	return wk
}

// Config returns the tuning.
func (w *Walker) Config() Config {
	return w.cfg
}

// Body returns the collision body.
func (w *Walker) Body() *physics.Body {
	return w.body
}

// Actor returns the animation state.
func (w *Walker) Actor() *character.Actor {
	return w.actor
}

// Position returns the body center.
func (w *Walker) Position() math.Vec3 {
	return w.body.Position
}

// SetPosition teleports the walker.
func (w *Walker) SetPosition(p math.Vec3) {
	w.body.Position = p
}

// Heading returns the heading in degrees.
func (w *Walker) Heading() float32 {
	return w.heading
}

// SetHeading sets the heading in degrees.
func (w *Walker) SetHeading(deg float32) {
	w.heading = deg
	w.body.Heading = deg
}

// Motion returns the motion applied by the last Update.
func (w *Walker) Motion() Motion {
	return w.motion
}

// Facing returns the unit forward direction on the ground plane.
func (w *Walker) Facing() math.Vec3 {
	return math.Vec2{Y: 1}.Rotate(math.Radians(w.heading)).Vec3(0)
}

// CameraOffset returns where a following camera sits relative to the walker.
func (w *Walker) CameraOffset() math.Vec3 {
	return w.Facing().Scale(-w.cfg.CameraDist).Add(math.Vec3{Z: w.cfg.CameraHeight})
}

// LookAt returns the point a following camera looks at.
func (w *Walker) LookAt() math.Vec3 {
	return w.body.Position.Add(math.Vec3{Z: w.cfg.LookHeight})
}

// Update applies one frame of motion.
func (w *Walker) Update(dt float32, m Motion) {
	w.motion = m

	switch m {
	case Left:
		w.SetHeading(w.heading + w.cfg.TurnRate*dt)
	case Right:
		w.SetHeading(w.heading - w.cfg.TurnRate*dt)
	case Forward:
		w.move(w.cfg.ForwardSpeed * dt)
	case Backward:
		w.move(-w.cfg.BackwardSpeed * dt)
	}

	w.animate()
	w.actor.Update(dt * 1000)
}

// Contact returns the ground below p.
func (w *Walker) Contact(p math.Vec3) (math.Vec3, bool) {
	below := p.Sub(math.Vec3{Z: w.cfg.ProbeDepth})
	hit, ok := w.world.RayTestClosest(p, below, physics.MaskTerrain|physics.MaskNature)
	if !ok {
		return math.Vec3{}, false
	}
	return hit.Position, true
}

func (w *Walker) move(distance float32) {
	temp := w.body.Position.Add(w.Facing().Scale(distance))
	contact, ok := w.Contact(temp)
	if !ok {
		return
	}
	next := contact.Add(math.Vec3{Z: w.cfg.StandHeight})
	if w.blocked(next) {
		return
	}
	w.body.Position = next
}

func (w *Walker) blocked(next math.Vec3) bool {
	sphere := physics.Sphere{Radius: w.cfg.SweepRadius}
	_, hit := w.world.SweepTestClosest(sphere, w.body.Position, next, physics.MaskNature, 0)
	return hit
}

func (w *Walker) animate() {
	var anim string
	var rate float32
	switch w.motion {
	case Forward:
		anim, rate = AnimRun, 1
	case Backward:
		anim, rate = AnimWalk, -1
	case Left, Right:
		anim, rate = AnimWalk, 1
	default:
		if w.actor.Playing() {
			w.actor.Stop()
			if err := w.actor.Pose(AnimWalk, standFrame); err != nil {
				w.log.Debug("stand pose failed", zap.Error(err))
			}
		}
		return
	}

	if !w.actor.Playing() || w.actor.CurrentAnim() != anim || w.actor.PlayRate() != rate {
		w.actor.SetPlayRate(rate)
		if w.actor.CurrentAnim() == anim {
			// Restart so the direction change takes effect from the first frame.
			w.actor.Stop()
		}
		if err := w.actor.Loop(anim); err != nil {
			w.log.Debug("animation failed", zap.String("anim", anim), zap.Error(err))
		}
	}
}

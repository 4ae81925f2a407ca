package goal

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// SensorState is the phase of one pass through the sensor.
type SensorState int

const (
	Idle SensorState = iota
	Entered
	Exited
)

func (s SensorState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Entered:
		return "entered"
	case Exited:
		return "exited"
	default:
		return fmt.Sprintf("SensorState(%d)", int(s))
	}
}

// SensorHalfExtents is the size of the trigger strip between the posts.
var SensorHalfExtents = math.Vec3{X: 3, Y: 0.125, Z: 0.125}

// Sensor watches its ghost volume and records where a body entered and left.
type Sensor struct {
	world physics.World
	body  *physics.Body
	log   *zap.Logger

	left, right math.Vec2
	state       SensorState
	in, out     math.Vec3
	finished    bool
}

// NewSensor creates a detached sensor.
func NewSensor(w physics.World, log *zap.Logger) *Sensor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sensor{
		world: w,
		body:  physics.NewBody("sensor", physics.Ghost, physics.MaskSensor, physics.Box{Half: SensorHalfExtents}, math.Vec3{}),
		log:   log,
	}
}

// Body returns the ghost body.
func (s *Sensor) Body() *physics.Body {
	return s.body
}

// Setup places the sensor and sets the posts it judges against.
func (s *Sensor) Setup(pos math.Vec3, heading float32, left, right math.Vec2) {
	s.body.Position = pos
	s.body.Heading = heading
	s.left, s.right = left, right
	s.Reset()
	s.world.Attach(s.body)
}

// Remove detaches the sensor.
func (s *Sensor) Remove() {
	s.world.Remove(s.body)
	s.Reset()
}

// Reset clears the current pass and the finish flag.
func (s *Sensor) Reset() {
	s.state = Idle
	s.in, s.out = math.Vec3{}, math.Vec3{}
	s.finished = false
}

// State returns the current phase.
func (s *Sensor) State() SensorState {
	return s.state
}

// InPoint returns where the current pass entered.
func (s *Sensor) InPoint() math.Vec3 {
	return s.in
}

// OutPoint returns the latest position of the current pass.
func (s *Sensor) OutPoint() math.Vec3 {
	return s.out
}

// Finished reports whether a pass went through the gate.
func (s *Sensor) Finished() bool {
	return s.finished
}

// Check polls the sensor once. It returns true on the tick a pass through the
// gate is confirmed. Every completed pass clears the in and out points.
func (s *Sensor) Check() bool {
	if s.finished {
		return false
	}

	if bodies := s.world.OverlappingBodies(s.body); len(bodies) > 0 {
		pos := bodies[0].Position
		if s.state == Idle {
			s.state = Entered
			s.in = pos
			s.log.Debug("gate entered", zap.Float32("x", pos.X), zap.Float32("y", pos.Y))
		}
		s.out = pos
		return false
	}

	if s.state != Entered {
		return false
	}

	s.state = Exited
	through := Crosses(s.left, s.right, s.in.XY(), s.out.XY())
	s.log.Info("gate exited",
		zap.Float32("x", s.out.X), zap.Float32("y", s.out.Y),
		zap.Bool("through", through))

	s.state = Idle
	s.in, s.out = math.Vec3{}, math.Vec3{}
	if through {
		s.finished = true
	}
	return through
}

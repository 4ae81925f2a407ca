package goal

import (
	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Gate geometry.
const (
	PostOffset   = 3    // Posts sit at local (±PostOffset, 0, 0)
	PostRadius   = 0.15 // Post thickness
	PostHeight   = 6
	SensorHeight = 1.5 // Sensor center above the gate position
)

// FoundationHalfExtents is the pad under the gate that keeps nature away.
var FoundationHalfExtents = math.Vec3{X: 3, Y: 3, Z: 0.25}

// Spot is a gate placement.
type Spot struct {
	X, Y    float32
	Heading float32
}

// Corners are the diagonal spots a gate can be put on, each facing the
// terrain center.
var Corners = [4]Spot{
	{X: 230, Y: 230, Heading: -45},
	{X: -230, Y: -230, Heading: 135},
	{X: 230, Y: -230, Heading: -135},
	{X: -230, Y: 230, Heading: 45},
}

// PickCorner returns a random corner.
func PickCorner(r *rng.RNG) Spot {
	return Corners[r.IntN(len(Corners))]
}

// Gate is the level finish.
type Gate struct {
	world physics.World
	log   *zap.Logger

	posts      [2]*physics.Body
	foundation *physics.Body
	sensor     *Sensor

	pos     math.Vec3
	heading float32
	active  bool
}

// NewGate creates a detached gate.
func NewGate(w physics.World, log *zap.Logger) *Gate {
	if log == nil {
		log = zap.NewNop()
	}
	post := physics.Capsule{Radius: PostRadius, HalfHeight: PostHeight/2 - PostRadius}
	g := &Gate{
		world:      w,
		log:        log,
		foundation: physics.NewBody("foundation", physics.Static, physics.MaskFoundation, physics.Box{Half: FoundationHalfExtents}, math.Vec3{}),
		sensor:     NewSensor(w, log),
	}
	g.posts[0] = physics.NewBody("post_left", physics.Static, physics.MaskNature, post, math.Vec3{})
	g.posts[1] = physics.NewBody("post_right", physics.Static, physics.MaskNature, post, math.Vec3{})
	return g
}

// Setup moves the gate to pos facing heading degrees and attaches its bodies.
func (g *Gate) Setup(pos math.Vec3, heading float32) {
	if g.active {
		g.Cleanup()
	}
	g.pos, g.heading = pos, heading

	left, right := g.Posts()
	for i, p := range [2]math.Vec2{left, right} {
		g.posts[i].Position = p.Vec3(pos.Z + PostHeight/2)
		g.world.Attach(g.posts[i])
	}

	g.foundation.Position = pos.Add(math.Vec3{Z: FoundationHalfExtents.Z})
	g.foundation.Heading = heading
	g.world.Attach(g.foundation)

	g.sensor.Setup(pos.Add(math.Vec3{Z: SensorHeight}), heading, left, right)
	g.active = true

	g.log.Info("gate placed",
		zap.Float32("x", pos.X), zap.Float32("y", pos.Y), zap.Float32("z", pos.Z),
		zap.Float32("heading", heading))
}

// Cleanup detaches every gate body.
func (g *Gate) Cleanup() {
	for _, p := range g.posts {
		g.world.Remove(p)
	}
	g.world.Remove(g.foundation)
	g.sensor.Remove()
	g.active = false
}

// Posts returns the world XY of the left and right posts.
func (g *Gate) Posts() (left, right math.Vec2) {
	rad := math.Radians(g.heading)
	center := g.pos.XY()
	left = center.Add(math.Vec2{X: -PostOffset}.Rotate(rad))
	right = center.Add(math.Vec2{X: PostOffset}.Rotate(rad))
	return left, right
}

// Position returns the gate position.
func (g *Gate) Position() math.Vec3 {
	return g.pos
}

// Heading returns the gate heading in degrees.
func (g *Gate) Heading() float32 {
	return g.heading
}

// Active reports whether the gate is set up.
func (g *Gate) Active() bool {
	return g.active
}

// Sensor returns the gate sensor.
func (g *Gate) Sensor() *Sensor {
	return g.sensor
}

// Check polls the sensor; true on the tick the player goes through.
func (g *Gate) Check() bool {
	if !g.active {
		return false
	}
	return g.sensor.Check()
}

// Finished reports whether the player went through since Setup.
func (g *Gate) Finished() bool {
	return g.sensor.Finished()
}

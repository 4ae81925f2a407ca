// Package physics is the collision query service used by the game: ray casts,
// sphere sweeps and ghost overlap tests against a flat list of bodies.
package physics

import (
	"fmt"

	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Mask is a collision filter bit set. A query only sees bodies whose mask
// shares at least one bit with the query mask.
type Mask uint32

// Collision layers.
const (
	MaskTerrain    Mask = 1 << 1
	MaskNature     Mask = 1 << 2
	MaskBall       Mask = 1 << 3
	MaskSensor     Mask = 1 << 4
	MaskFoundation Mask = 1 << 5
	MaskPlayer     Mask = 1 << 6

	MaskEnvironment = MaskTerrain | MaskNature
	MaskAll         = Mask(0xFFFFFFFF)
)

// Has reports whether m shares a bit with other.
func (m Mask) Has(other Mask) bool {
	return m&other != 0
}

// Kind tells how a body takes part in queries.
type Kind int

const (
	// Static bodies never move once attached.
	Static Kind = iota
	// Kinematic bodies are moved by game code.
	Kinematic
	// Ghost bodies only report overlaps and never block rays or sweeps.
	Ghost
)

func (k Kind) String() string {
	switch k {
	case Static:
		return "static"
	case Kinematic:
		return "kinematic"
	case Ghost:
		return "ghost"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Body is one collision object.
type Body struct {
	ID       int
	Name     string
	Kind     Kind
	Mask     Mask
	Shape    Shape
	Position math.Vec3
	Heading  float32 // Degrees about +Z
}

// NewBody creates a detached body.
func NewBody(name string, kind Kind, mask Mask, shape Shape, pos math.Vec3) *Body {
	return &Body{Name: name, Kind: kind, Mask: mask, Shape: shape, Position: pos}
}

// IsGhost reports whether the body is a trigger volume.
func (b *Body) IsGhost() bool {
	return b.Kind == Ghost
}

// toLocal maps a world point into the body frame.
func (b *Body) toLocal(p math.Vec3) math.Vec3 {
	d := p.Sub(b.Position)
	if b.Heading == 0 {
		return d
	}
	xy := d.XY().Rotate(-math.Radians(b.Heading))
	return math.Vec3{X: xy.X, Y: xy.Y, Z: d.Z}
}

// Distance returns the signed distance from world point p to the body surface.
func (b *Body) Distance(p math.Vec3) float32 {
	return b.Shape.Distance(b.toLocal(p))
}

// Bounds returns the world space bounding box.
func (b *Body) Bounds() AABB {
	return b.Shape.Bounds(b.Position, b.Heading)
}

func (b *Body) String() string {
	return fmt.Sprintf("%s#%d", b.Name, b.ID)
}

// Hit is the closest contact reported by a ray or sweep query.
type Hit struct {
	Body     *Body
	Position math.Vec3 // Contact point for rays, sphere center for sweeps
	Fraction float32   // 0 at from, 1 at to
}

// World is the query service the game depends on.
type World interface {
	RayTestClosest(from, to math.Vec3, mask Mask) (Hit, bool)
	SweepTestClosest(shape Sphere, from, to math.Vec3, mask Mask, margin float32) (Hit, bool)
	OverlappingBodies(ghost *Body) []*Body
	Attach(b *Body)
	Remove(b *Body)
}

package physics

import (
	gomath "math"

	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Shape is a collision shape in its body frame.
type Shape interface {
	// Distance is the signed distance from a body-local point to the surface.
	// It never overestimates, so it can drive sphere tracing.
	Distance(p math.Vec3) float32
	// Bounds returns the world box for the given placement.
	Bounds(pos math.Vec3, heading float32) AABB
}

// Sphere is centered on the body position.
type Sphere struct {
	Radius float32
}

func (s Sphere) Distance(p math.Vec3) float32 {
	return p.Length() - s.Radius
}

func (s Sphere) Bounds(pos math.Vec3, _ float32) AABB {
	return AABB{Min: pos, Max: pos}.Expand(s.Radius)
}

// Box is given by its half extents.
type Box struct {
	Half math.Vec3
}

func (b Box) Distance(p math.Vec3) float32 {
	qx := abs(p.X) - b.Half.X
	qy := abs(p.Y) - b.Half.Y
	qz := abs(p.Z) - b.Half.Z
	outside := math.Vec3{X: max(qx, 0), Y: max(qy, 0), Z: max(qz, 0)}.Length()
	inside := min(max(qx, qy, qz), 0)
	return outside + inside
}

func (b Box) Bounds(pos math.Vec3, heading float32) AABB {
	rad := float64(math.Radians(heading))
	c := float32(gomath.Abs(gomath.Cos(rad)))
	s := float32(gomath.Abs(gomath.Sin(rad)))
	ext := math.Vec3{
		X: c*b.Half.X + s*b.Half.Y,
		Y: s*b.Half.X + c*b.Half.Y,
		Z: b.Half.Z,
	}
	return AABB{Min: pos.Sub(ext), Max: pos.Add(ext)}
}

// Capsule is aligned with +Z. HalfHeight is the half length of the inner
// segment, so the full height is 2*(HalfHeight+Radius).
type Capsule struct {
	Radius     float32
	HalfHeight float32
}

func (c Capsule) Distance(p math.Vec3) float32 {
	z := max(-c.HalfHeight, min(c.HalfHeight, p.Z))
	return math.Vec3{X: p.X, Y: p.Y, Z: p.Z - z}.Length() - c.Radius
}

func (c Capsule) Bounds(pos math.Vec3, _ float32) AABB {
	ext := math.Vec3{X: c.Radius, Y: c.Radius, Z: c.HalfHeight + c.Radius}
	return AABB{Min: pos.Sub(ext), Max: pos.Add(ext)}
}

// HeightSampler gives terrain elevation in world coordinates.
type HeightSampler interface {
	Height(x, y float32) (float32, bool)
	Extent() (lo, hi math.Vec3)
}

// Heightfield is terrain collision. Its sampler works in world space, so the
// owning body sits at the origin with no heading.
type Heightfield struct {
	Sampler HeightSampler
}

// Distance is the vertical clearance above the surface. It is not a true
// distance on slopes, so heightfields are marched rather than traced.
func (h Heightfield) Distance(p math.Vec3) float32 {
	z, ok := h.Sampler.Height(p.X, p.Y)
	if !ok {
		return float32(gomath.MaxFloat32)
	}
	return p.Z - z
}

func (h Heightfield) Bounds(pos math.Vec3, _ float32) AABB {
	lo, hi := h.Sampler.Extent()
	return AABB{Min: lo.Add(pos), Max: hi.Add(pos)}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

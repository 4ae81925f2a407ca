package physics

import (
	gomath "math"
	"slices"

	"github.com/Faultbox/avoid-balls/pkg/math"
)

const (
	traceEpsilon    = 1e-4
	traceMaxSteps   = 128
	marchStep       = 0.25
	marchMaxSteps   = 4096
	bisectIteration = 12
)

// Space is an in-process implementation of World. Static bodies are hashed
// on a uniform grid; kinematic and ghost bodies are tested every query since
// game code moves them freely.
type Space struct {
	nextID  int
	bodies  map[*Body]struct{}
	static  *grid
	dynamic []*Body
}

// NewSpace creates an empty space.
func NewSpace() *Space {
	return &Space{
		bodies: make(map[*Body]struct{}),
		static: newGrid(),
	}
}

// Attach adds b to the space. Attaching twice is a no-op.
func (s *Space) Attach(b *Body) {
	if _, ok := s.bodies[b]; ok {
		return
	}
	if b.ID == 0 {
		s.nextID++
		b.ID = s.nextID
	}
	s.bodies[b] = struct{}{}
	if b.Kind == Static {
		s.static.insert(b)
	} else {
		s.dynamic = append(s.dynamic, b)
	}
}

// Remove detaches b. Unknown bodies are ignored.
func (s *Space) Remove(b *Body) {
	if _, ok := s.bodies[b]; !ok {
		return
	}
	delete(s.bodies, b)
	if b.Kind == Static {
		s.static.remove(b)
	} else {
		s.dynamic = removeBody(s.dynamic, b)
	}
}

// Contains reports whether b is attached.
func (s *Space) Contains(b *Body) bool {
	_, ok := s.bodies[b]
	return ok
}

// Len returns the number of attached bodies.
func (s *Space) Len() int {
	return len(s.bodies)
}

// Count returns the number of attached bodies matching mask.
func (s *Space) Count(mask Mask) int {
	n := 0
	for b := range s.bodies {
		if b.Mask.Has(mask) {
			n++
		}
	}
	return n
}

// Bodies returns the attached bodies matching mask ordered by ID.
func (s *Space) Bodies(mask Mask) []*Body {
	var out []*Body
	for b := range s.bodies {
		if b.Mask.Has(mask) {
			out = append(out, b)
		}
	}
	slices.SortFunc(out, func(a, b *Body) int { return a.ID - b.ID })
	return out
}

func (s *Space) candidates(box AABB, fn func(*Body)) {
	s.static.query(box, fn)
	for _, b := range s.dynamic {
		fn(b)
	}
}

// RayTestClosest returns the first non-ghost body matching mask along the
// segment from -> to.
func (s *Space) RayTestClosest(from, to math.Vec3, mask Mask) (Hit, bool) {
	return s.closest(from, to, 0, mask)
}

// SweepTestClosest moves a sphere from -> to and returns the first contact.
// margin inflates the sphere.
func (s *Space) SweepTestClosest(shape Sphere, from, to math.Vec3, mask Mask, margin float32) (Hit, bool) {
	return s.closest(from, to, shape.Radius+margin, mask)
}

func (s *Space) closest(from, to math.Vec3, radius float32, mask Mask) (Hit, bool) {
	sweep := NewAABB(from, to).Expand(radius)
	ray := Ray{Origin: from, Direction: to.Sub(from)}

	var best Hit
	found := false
	s.candidates(sweep, func(b *Body) {
		if b.IsGhost() || !b.Mask.Has(mask) {
			return
		}
		bounds := b.Bounds().Expand(radius)
		if !bounds.Overlaps(sweep) {
			return
		}
		t0, t1, ok := ray.IntersectAABB(bounds)
		if !ok || t0 > 1 {
			return
		}
		t0 = max(t0, 0)
		t1 = min(t1, 1)

		var t float32
		if _, isField := b.Shape.(Heightfield); isField {
			t, ok = march(b, ray, t0, t1, radius)
		} else {
			t, ok = trace(b, ray, t0, t1, radius)
		}
		if !ok {
			return
		}
		if !found || t < best.Fraction || (t == best.Fraction && b.ID < best.Body.ID) {
			best = Hit{Body: b, Position: ray.At(t), Fraction: t}
			found = true
		}
	})
	return best, found
}

// trace sphere-traces an analytic shape over [t0, t1] of the segment.
func trace(b *Body, ray Ray, t0, t1, radius float32) (float32, bool) {
	length := ray.Direction.Length()
	if length == 0 {
		return 0, b.Distance(ray.Origin) <= radius
	}
	t := t0
	for i := 0; i < traceMaxSteps && t <= t1; i++ {
		d := b.Distance(ray.At(t)) - radius
		if d <= traceEpsilon {
			return t, true
		}
		t += d / length
	}
	return 0, false
}

// clearance is how far a sphere at p sits above the heightfield.
func clearance(b *Body, p math.Vec3, radius float32) float32 {
	return b.Distance(p) - radius
}

// march samples a heightfield at fixed steps and refines the first crossing
// by bisection.
func march(b *Body, ray Ray, t0, t1, radius float32) (float32, bool) {
	if clearance(b, ray.At(t0), radius) <= 0 {
		return t0, true
	}

	dir := ray.Direction
	if dir.X == 0 && dir.Y == 0 {
		if dir.Z >= 0 {
			return 0, false
		}
		// Vertical segments hit where z reaches the ground plus the radius.
		t := t0 + clearance(b, ray.At(t0), radius)/-dir.Z
		return t, t <= t1
	}

	length := dir.Length() * (t1 - t0)
	steps := int(gomath.Ceil(float64(length / marchStep)))
	steps = max(1, min(steps, marchMaxSteps))
	dt := (t1 - t0) / float32(steps)

	prev := t0
	for i := 1; i <= steps; i++ {
		t := t0 + dt*float32(i)
		if clearance(b, ray.At(t), radius) > 0 {
			prev = t
			continue
		}
		lo, hi := prev, t
		for j := 0; j < bisectIteration; j++ {
			mid := (lo + hi) / 2
			if clearance(b, ray.At(mid), radius) > 0 {
				lo = mid
			} else {
				hi = mid
			}
		}
		return hi, true
	}
	return 0, false
}

// OverlappingBodies returns the non-ghost bodies matching the ghost's mask
// that intersect its volume. Round shapes are tested exactly against the
// ghost shape; boxes and heightfields by bounds.
func (s *Space) OverlappingBodies(ghost *Body) []*Body {
	box := ghost.Bounds()
	var out []*Body
	s.candidates(box, func(b *Body) {
		if b == ghost || b.IsGhost() || !b.Mask.Has(ghost.Mask) {
			return
		}
		if !b.Bounds().Overlaps(box) {
			return
		}
		if overlaps(ghost, b) {
			out = append(out, b)
		}
	})
	return out
}

func overlaps(ghost, b *Body) bool {
	var a, c math.Vec3
	var radius float32
	switch sh := b.Shape.(type) {
	case Sphere:
		a, c, radius = b.Position, b.Position, sh.Radius
	case Capsule:
		off := math.Vec3{Z: sh.HalfHeight}
		a, c, radius = b.Position.Sub(off), b.Position.Add(off), sh.Radius
	default:
		return true
	}

	// The distance to a convex shape is convex along a segment.
	lo, hi := float32(0), float32(1)
	for i := 0; i < 32; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		if ghost.Distance(a.Lerp(c, m1)) < ghost.Distance(a.Lerp(c, m2)) {
			hi = m2
		} else {
			lo = m1
		}
	}
	return ghost.Distance(a.Lerp(c, (lo+hi)/2)) <= radius
}

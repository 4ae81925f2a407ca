package physics

import (
	gomath "math"

	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// AABB represents an axis-aligned bounding box.
type AABB struct {
	Min math.Vec3
	Max math.Vec3
}

// NewAABB creates an AABB from two corners in any order.
func NewAABB(a, b math.Vec3) AABB {
	return AABB{
		Min: math.Vec3{X: min(a.X, b.X), Y: min(a.Y, b.Y), Z: min(a.Z, b.Z)},
		Max: math.Vec3{X: max(a.X, b.X), Y: max(a.Y, b.Y), Z: max(a.Z, b.Z)},
	}
}

// Expand grows the box by r on every side.
func (a AABB) Expand(r float32) AABB {
	d := math.Vec3{X: r, Y: r, Z: r}
	return AABB{Min: a.Min.Sub(d), Max: a.Max.Add(d)}
}

// Overlaps reports whether two boxes intersect.
func (a AABB) Overlaps(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Contains reports whether p lies inside the box.
func (a AABB) Contains(p math.Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// slab clips one axis of the ray against [lo, hi].
func slab(origin, dir, lo, hi float32, tmin, tmax *float32) bool {
	if dir == 0 {
		return origin >= lo && origin <= hi
	}
	t1 := (lo - origin) / dir
	t2 := (hi - origin) / dir
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	if t1 > *tmin {
		*tmin = t1
	}
	if t2 < *tmax {
		*tmax = t2
	}
	return true
}

// IntersectAABB returns the entry and exit distances of the ray through the
// box. Direction need not be normalized; distances are in its units.
func (r Ray) IntersectAABB(box AABB) (tmin, tmax float32, hit bool) {
	tmin = float32(-gomath.MaxFloat32)
	tmax = float32(gomath.MaxFloat32)

	if !slab(r.Origin.X, r.Direction.X, box.Min.X, box.Max.X, &tmin, &tmax) ||
		!slab(r.Origin.Y, r.Direction.Y, box.Min.Y, box.Max.Y, &tmin, &tmax) ||
		!slab(r.Origin.Z, r.Direction.Z, box.Min.Z, box.Max.Z, &tmin, &tmax) {
		return 0, 0, false
	}

	if tmax < tmin || tmax < 0 {
		return 0, 0, false
	}
	return tmin, tmax, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) math.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

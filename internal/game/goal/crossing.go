// Package goal implements the level finish: a gate of two posts, the sensor
// strip between them and the test that decides whether the player walked
// through.
package goal

import "github.com/Faultbox/avoid-balls/pkg/math"

// extentsOverlap reports whether [min(a,b), max(a,b)] meets [min(c,d), max(c,d)].
func extentsOverlap(a, b, c, d float32) bool {
	return min(a, b) <= max(c, d) && max(a, b) >= min(c, d)
}

// Crosses reports whether the segment in->out crosses the segment l->r.
// Touching counts as crossing. Only X and Y are considered.
func Crosses(l, r, in, out math.Vec2) bool {
	if !extentsOverlap(l.X, r.X, in.X, out.X) {
		return false
	}
	if !extentsOverlap(l.Y, r.Y, in.Y, out.Y) {
		return false
	}

	gate := l.Sub(r)
	tc1 := gate.X*(in.Y-l.Y) + gate.Y*(l.X-in.X)
	tc2 := gate.X*(out.Y-l.Y) + gate.Y*(l.X-out.X)

	path := in.Sub(out)
	td1 := path.X*(l.Y-in.Y) + path.Y*(in.X-l.X)
	td2 := path.X*(r.Y-in.Y) + path.Y*(in.X-r.X)

	return tc1*tc2 <= 0 && td1*td2 <= 0
}

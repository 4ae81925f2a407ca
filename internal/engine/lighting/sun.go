// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	gomath "math"

	"github.com/Faultbox/avoid-balls/pkg/math"
)

// SunDirection converts sun angles in degrees to the direction its light
// travels. Azimuth turns counterclockwise from +X about +Z, elevation is the
// height above the horizon (0-90).
func SunDirection(azimuth, elevation float32) math.Vec3 {
	az := float64(math.Radians(azimuth))
	el := float64(math.Radians(elevation))

	// Spherical to Cartesian, pointing at the sun
	toSun := math.Vec3{
		X: float32(gomath.Cos(el) * gomath.Cos(az)),
		Y: float32(gomath.Cos(el) * gomath.Sin(az)),
		Z: float32(gomath.Sin(el)),
	}
	return toSun.Scale(-1)
}

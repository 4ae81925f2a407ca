// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

var up = math.Vec3{Z: 1}

// OrbitCamera orbits around a center point. World is Z-up.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float32 // Distance from center
	Pitch    float32 // Elevation above the XY plane (radians)
	Yaw      float32 // Rotation about +Z (radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        400.0,
		Pitch:           0.8,
		MinDistance:     20.0,
		MaxDistance:     2000.0,
		MinPitch:        0.1,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	horiz := c.Distance * float32(gomath.Cos(float64(c.Pitch)))
	return c.Center.Add(math.Vec3{
		X: horiz * float32(gomath.Sin(float64(c.Yaw))),
		Y: -horiz * float32(gomath.Cos(float64(c.Yaw))),
		Z: c.Distance * float32(gomath.Sin(float64(c.Pitch))),
	})
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.DragSensitivity
	c.Pitch += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.Pitch < c.MinPitch {
		c.Pitch = c.MinPitch
	}
	if c.Pitch > c.MaxPitch {
		c.Pitch = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FitToBounds adjusts camera to view the given bounding box.
func (c *OrbitCamera) FitToBounds(lo, hi math.Vec3) {
	c.Center = lo.Add(hi).Scale(0.5)
	size := max(hi.X-lo.X, hi.Y-lo.Y)
	c.Distance = max(size*0.9, c.MinDistance)
	c.Pitch = 0.8
	c.Yaw = 0
}

// Raycaster answers line of sight queries.
type Raycaster interface {
	RayTestClosest(from, to math.Vec3, mask physics.Mask) (physics.Hit, bool)
}

// Follow camera tuning.
const (
	SearchSteps = 36 // Attempts to find a clear view
	SearchAngle = 10 // Degrees between attempts
)

// SightMask is what can block the view of the target.
const SightMask = physics.MaskTerrain | physics.MaskNature | physics.MaskPlayer

// FollowCamera keeps a fixed offset from its target and swings around it
// when terrain or nature blocks the view.
type FollowCamera struct {
	Offset math.Vec3 // Eye relative to the target
	Target math.Vec3
	LookAt math.Vec3
	FOV    float32 // Vertical field of view (degrees)
	Near   float32
	Far    float32
}

// NewFollowCamera creates a follow camera.
func NewFollowCamera(offset math.Vec3) *FollowCamera {
	return &FollowCamera{Offset: offset, FOV: 90, Near: 0.1, Far: 2000}
}

// Eye returns the camera position in world space.
func (c *FollowCamera) Eye() math.Vec3 {
	return c.Target.Add(c.Offset)
}

// Forward returns the unit view direction.
func (c *FollowCamera) Forward() math.Vec3 {
	return c.LookAt.Sub(c.Eye()).Normalize()
}

// ViewMatrix returns the view matrix.
func (c *FollowCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Eye(), c.LookAt, up)
}

// Projection returns the projection matrix for the given aspect ratio.
func (c *FollowCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.FOV), aspect, c.Near, c.Far)
}

// Update moves the camera with the target. When the target is hidden the
// camera tries preferred first and then swings the current offset around
// the target in growing steps either side until the view is clear. It
// returns false when no clear spot was found and the camera is left as is.
func (c *FollowCamera) Update(rc Raycaster, target *physics.Body, lookAt, preferred math.Vec3) bool {
	c.Target = target.Position
	c.LookAt = lookAt

	if c.visible(rc, target, c.Offset) {
		return true
	}

	start := c.Offset
	next := preferred
	for i := 0; i < SearchSteps; i++ {
		if c.visible(rc, target, next) {
			c.Offset = next
			return true
		}
		times := float32(i/2 + 1)
		angle := SearchAngle * times
		if i%2 == 1 {
			angle = -angle
		}
		q := math.QuatFromAxisAngle(up, math.Radians(angle))
		next = q.Rotate(start)
	}
	return false
}

func (c *FollowCamera) visible(rc Raycaster, target *physics.Body, offset math.Vec3) bool {
	eye := c.Target.Add(offset)
	hit, ok := rc.RayTestClosest(eye, c.Target, SightMask)
	return ok && hit.Body == target
}

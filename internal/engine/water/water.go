// Package water provides water plane geometry and animation utilities.
package water

// Plane holds water plane geometry ready for GPU upload.
type Plane struct {
	Vertices []float32 // Flat array: x,y,z for each vertex (4 vertices)
	Level    float32   // Water Z level in world coordinates
	MinX     float32
	MaxX     float32
	MinY     float32
	MaxY     float32
}

// BuildPlane creates a horizontal quad covering the bounds at the given level.
func BuildPlane(minX, maxX, minY, maxY, level float32) *Plane {
	// Order: SW, SE, NE, NW for TRIANGLE_FAN rendering
	vertices := []float32{
		minX, minY, level,
		maxX, minY, level,
		maxX, maxY, level,
		minX, maxY, level,
	}

	return &Plane{
		Vertices: vertices,
		Level:    level,
		MinX:     minX,
		MaxX:     maxX,
		MinY:     minY,
		MaxY:     maxY,
	}
}

// BuildCentered creates a size x size plane centered on (cx, cy).
func BuildCentered(cx, cy, size, level float32) *Plane {
	half := size / 2
	return BuildPlane(cx-half, cx+half, cy-half, cy+half, level)
}

// Contains reports whether (x, y) lies over the plane.
func (p *Plane) Contains(x, y float32) bool {
	return x >= p.MinX && x <= p.MaxX && y >= p.MinY && y <= p.MaxY
}

// CalculateAnimFrame returns the current animation frame index for water texture animation.
// time is the elapsed time, speed is the animation speed multiplier, numFrames is total frames.
func CalculateAnimFrame(time, speed float32, numFrames int) int {
	if numFrames <= 0 {
		return 0
	}
	frameTime := time * speed * 0.5
	return int(frameTime) % numFrames
}

// DefaultAnimSpeed is the default ripple animation speed.
const DefaultAnimSpeed = 4.0

// DefaultFrames is the number of ripple phases cycled by the renderer.
const DefaultFrames = 32

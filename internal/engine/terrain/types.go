// Package terrain builds render meshes and height samplers for heightfield
// tiles.
package terrain

// Vertex represents a terrain mesh vertex with all attributes.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
	Blend    [4]float32 // Weights of the four palette layers, summing to 1
}

// Mesh holds the complete terrain mesh data ready for GPU upload.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Stride   int
	Bounds   Bounds
}

// Bounds holds the axis-aligned bounding box of the terrain.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the middle of the box.
func (b Bounds) Center() [3]float32 {
	return [3]float32{
		(b.Min[0] + b.Max[0]) / 2,
		(b.Min[1] + b.Max[1]) / 2,
		(b.Min[2] + b.Max[2]) / 2,
	}
}

// Palette is one set of four ground layers, ordered from the lowest elevation
// to the highest. Bands are the normalized elevations where one layer hands
// over to the next.
type Palette struct {
	Name   string
	Colors [4][3]float32
	Bands  [3]float32
	Width  float32 // Transition width around each band
}

// Weights returns the layer blend for a normalized elevation in [0, 1].
func (p Palette) Weights(e float32) [4]float32 {
	width := p.Width
	if width <= 0 {
		width = 0.05
	}

	var w [4]float32
	w[0] = 1
	for i, band := range p.Bands {
		t := clampf((e-band)/width+0.5, 0, 1)
		// Hand the current weight over to the next layer.
		for j := 0; j <= i; j++ {
			moved := w[j] * t
			w[j] -= moved
			w[i+1] += moved
		}
	}
	return w
}

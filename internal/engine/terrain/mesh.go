package terrain

import "math"

// TexRepeat is the world size of one ground texture repeat.
const TexRepeat = 16

// BuildMesh creates a grid mesh sampling every stride-th pixel of the field.
// The last row and column are always included so neighbouring tiles meet.
func BuildMesh(f *Field, stride int, palette Palette) *Mesh {
	if stride < 1 {
		stride = 1
	}
	coords := gridCoords(f.Image.Size, stride)
	n := len(coords)

	vertices := make([]Vertex, 0, n*n)
	bounds := Bounds{
		Min: [3]float32{1e10, 1e10, 1e10},
		Max: [3]float32{-1e10, -1e10, -1e10},
	}

	for _, py := range coords {
		for _, px := range coords {
			p := f.PixelPosition(px, py)
			pos := [3]float32{p.X, p.Y, p.Z}
			updateBounds(&bounds, pos)
			vertices = append(vertices, Vertex{
				Position: pos,
				Normal:   f.Normal(px, py, stride),
				TexCoord: [2]float32{p.X / TexRepeat, p.Y / TexRepeat},
				Blend:    palette.Weights(f.Normalized(px, py)),
			})
		}
	}

	indices := make([]uint32, 0, (n-1)*(n-1)*6)
	for row := 0; row < n-1; row++ {
		for col := 0; col < n-1; col++ {
			i := uint32(row*n + col)
			below := i + uint32(n)
			// Counter-clockwise seen from above: rows run toward -Y.
			indices = append(indices,
				i, below, i+1,
				i+1, below, below+1,
			)
		}
	}

	return &Mesh{
		Vertices: vertices,
		Indices:  indices,
		Stride:   stride,
		Bounds:   bounds,
	}
}

// gridCoords lists the sampled pixel indices 0, stride, 2*stride, ... and the
// last pixel.
func gridCoords(size, stride int) []int {
	last := size - 1
	coords := make([]int, 0, last/stride+2)
	for i := 0; i < last; i += stride {
		coords = append(coords, i)
	}
	return append(coords, last)
}

// Helper functions

func updateBounds(b *Bounds, p [3]float32) {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
}

func normalize(v [3]float32) [3]float32 {
	l := float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
	if l < 0.0001 {
		return [3]float32{0, 0, 1}
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}

// Package geometry generates unit primitive meshes for the shape renderer.
// Every mesh is centered on the origin with Z up; the draw call scales it.
package geometry

import gomath "math"

// Mesh is an indexed triangle list. Vertices are interleaved
// position (3) + normal (3).
type Mesh struct {
	Vertices []float32
	Indices  []uint32
}

// FloatsPerVertex is the interleaved vertex width.
const FloatsPerVertex = 6

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

func (m *Mesh) add(px, py, pz, nx, ny, nz float32) uint32 {
	i := uint32(m.VertexCount())
	m.Vertices = append(m.Vertices, px, py, pz, nx, ny, nz)
	return i
}

func (m *Mesh) quad(a, b, c, d uint32) {
	m.Indices = append(m.Indices, a, b, c, a, c, d)
}

// Sphere returns a unit radius UV sphere.
func Sphere(stacks, slices int) *Mesh {
	stacks = max(stacks, 2)
	slices = max(slices, 3)
	m := &Mesh{}
	for i := 0; i <= stacks; i++ {
		phi := gomath.Pi * float64(i) / float64(stacks)
		z := float32(gomath.Cos(phi))
		r := float32(gomath.Sin(phi))
		for j := 0; j <= slices; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(slices)
			x := r * float32(gomath.Cos(theta))
			y := r * float32(gomath.Sin(theta))
			m.add(x, y, z, x, y, z)
		}
	}
	row := uint32(slices + 1)
	for i := uint32(0); i < uint32(stacks); i++ {
		for j := uint32(0); j < uint32(slices); j++ {
			a := i*row + j
			m.quad(a, a+row, a+row+1, a+1)
		}
	}
	return m
}

// Cylinder returns a capped cylinder of radius 1 spanning z in [-1, 1].
func Cylinder(slices int) *Mesh {
	slices = max(slices, 3)
	m := &Mesh{}
	for j := 0; j <= slices; j++ {
		theta := 2 * gomath.Pi * float64(j) / float64(slices)
		x := float32(gomath.Cos(theta))
		y := float32(gomath.Sin(theta))
		m.add(x, y, -1, x, y, 0)
		m.add(x, y, 1, x, y, 0)
	}
	for j := uint32(0); j < uint32(slices); j++ {
		a := j * 2
		m.quad(a, a+2, a+3, a+1)
	}

	for _, z := range []float32{-1, 1} {
		center := m.add(0, 0, z, 0, 0, z)
		first := uint32(m.VertexCount())
		for j := 0; j <= slices; j++ {
			theta := 2 * gomath.Pi * float64(j) / float64(slices)
			m.add(float32(gomath.Cos(theta)), float32(gomath.Sin(theta)), z, 0, 0, z)
		}
		for j := uint32(0); j < uint32(slices); j++ {
			if z > 0 {
				m.Indices = append(m.Indices, center, first+j, first+j+1)
			} else {
				m.Indices = append(m.Indices, center, first+j+1, first+j)
			}
		}
	}
	return m
}

// boxFaces lists each face normal with two in-plane axes whose cross
// product is the normal.
var boxFaces = [6][3][3]float32{
	{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
	{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
	{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
	{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
	{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
	{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
}

// Box returns a cube spanning [-1, 1] on every axis.
func Box() *Mesh {
	m := &Mesh{}
	for _, f := range boxFaces {
		n, u, v := f[0], f[1], f[2]
		var idx [4]uint32
		for k, s := range [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}} {
			p := [3]float32{
				n[0] + u[0]*s[0] + v[0]*s[1],
				n[1] + u[1]*s[0] + v[1]*s[1],
				n[2] + u[2]*s[0] + v[2]*s[1],
			}
			idx[k] = m.add(p[0], p[1], p[2], n[0], n[1], n[2])
		}
		m.quad(idx[0], idx[1], idx[2], idx[3])
	}
	return m
}

// Quad returns a unit square in the XY plane facing +Z.
func Quad() *Mesh {
	m := &Mesh{}
	a := m.add(-1, -1, 0, 0, 0, 1)
	b := m.add(1, -1, 0, 0, 0, 1)
	c := m.add(1, 1, 0, 0, 0, 1)
	d := m.add(-1, 1, 0, 0, 0, 1)
	m.quad(a, b, c, d)
	return m
}

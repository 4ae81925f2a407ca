// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/avoid-balls/internal/engine/physics"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the gap drawn around body bounds.
const DefaultBBoxPadding = 0.05

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, minX, maxY, minZ,
		minX, maxY, minZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, minY, maxZ, maxX, minY, maxZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, minY, maxZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, minY, maxZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		minX, maxY, minZ, minX, maxY, maxZ,
	}
}

// Wireframe returns the edges of box grown by padding on every side.
func Wireframe(box physics.AABB, padding float32) []float32 {
	box = box.Expand(padding)
	return GenerateBBoxWireframeVertices(box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
}

// BodyWireframes appends the bounds of every body into one line list.
// Heightfield bodies are skipped, their bounds cover a whole tile.
func BodyWireframes(bodies []*physics.Body, padding float32) []float32 {
	out := make([]float32, 0, len(bodies)*BBoxWireframeVertexCount*3)
	for _, b := range bodies {
		if _, ok := b.Shape.(physics.Heightfield); ok {
			continue
		}
		out = append(out, Wireframe(b.Bounds(), padding)...)
	}
	return out
}

package terrain

// LOD is a chain of meshes of one tile, finest first.
type LOD struct {
	Levels []*Mesh
	Near   float32 // Full detail below this camera distance
	Far    float32 // Coarsest level beyond this distance
}

// BuildLOD builds levels meshes with strides 1, 2, 4, ...
func BuildLOD(f *Field, levels int, palette Palette, near, far float32) *LOD {
	if levels < 1 {
		levels = 1
	}
	lod := &LOD{Near: near, Far: far}
	for i := 0; i < levels; i++ {
		lod.Levels = append(lod.Levels, BuildMesh(f, 1<<i, palette))
	}
	return lod
}

// Select returns the level index for a camera at distance d from the tile.
func (l *LOD) Select(d float32) int {
	last := len(l.Levels) - 1
	if last <= 0 || d <= l.Near {
		return 0
	}
	if d >= l.Far {
		return last
	}
	return 1 + int((d-l.Near)/(l.Far-l.Near)*float32(last-1)+0.5)
}

// Mesh returns the mesh for a camera at distance d.
func (l *LOD) Mesh(d float32) *Mesh {
	return l.Levels[l.Select(d)]
}

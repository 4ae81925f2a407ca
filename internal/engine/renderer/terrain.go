package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/terrain"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

var terrainAttribs = []attrib{
	{3, int(unsafe.Offsetof(terrain.Vertex{}.Position))},
	{3, int(unsafe.Offsetof(terrain.Vertex{}.Normal))},
	{2, int(unsafe.Offsetof(terrain.Vertex{}.TexCoord))},
	{4, int(unsafe.Offsetof(terrain.Vertex{}.Blend))},
}

// UseTerrain uploads every level of lods and frees meshes of any terrain
// used before.
func (r *Renderer) UseTerrain(lods []*terrain.LOD) {
	r.ReleaseTerrain()
	stride := int32(unsafe.Sizeof(terrain.Vertex{}))
	vertices := 0
	for _, lod := range lods {
		for _, mesh := range lod.Levels {
			if len(mesh.Vertices) == 0 {
				continue
			}
			r.terrain[mesh] = uploadMesh(
				unsafe.Pointer(&mesh.Vertices[0]),
				len(mesh.Vertices)*int(stride),
				stride, terrainAttribs, mesh.Indices)
			vertices += len(mesh.Vertices)
		}
	}
	r.log.Debug("terrain uploaded", zap.Int("meshes", len(r.terrain)), zap.Int("vertices", vertices))
}

// ReleaseTerrain frees all uploaded terrain meshes.
func (r *Renderer) ReleaseTerrain() {
	for key, m := range r.terrain {
		m.delete()
		delete(r.terrain, key)
	}
}

// DrawTerrain draws the level of lod matching the eye distance.
func (r *Renderer) DrawTerrain(lod *terrain.LOD, palette terrain.Palette) {
	if lod == nil || len(lod.Levels) == 0 {
		return
	}
	c := lod.Levels[0].Bounds.Center()
	d := r.eye.XY().Distance(math.Vec2{X: c[0], Y: c[1]})
	m, ok := r.terrain[lod.Mesh(d)]
	if !ok {
		return
	}

	p := r.terrainProg
	p.Use()
	p.SetMat4("uViewProj", r.viewProj)
	p.SetVec3Array("uColors", palette.Colors[:])
	p.SetVec3("uLightDir", r.config.LightDir.Array())
	p.SetVec3("uEye", r.eye.Array())
	p.SetVec3("uFogColor", r.config.ClearColor)
	p.SetFloat("uFogFar", r.config.FogFar)
	gl.Disable(gl.CULL_FACE)
	m.draw()
	gl.Enable(gl.CULL_FACE)
}

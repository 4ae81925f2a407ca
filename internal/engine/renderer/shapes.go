package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/avoid-balls/internal/engine/geometry"
	"github.com/Faultbox/avoid-balls/internal/engine/water"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Primitive selects a unit mesh.
type Primitive int

const (
	PrimSphere Primitive = iota
	PrimCylinder
	PrimBox
	PrimQuad
	primitiveCount
)

var shapeAttribs = []attrib{{3, 0}, {3, 3 * 4}}

// WaterColor is the base tint of water planes.
var WaterColor = [4]float32{0.15, 0.35, 0.6, 0.65}

func (r *Renderer) createShapes() {
	meshes := [primitiveCount]*geometry.Mesh{
		PrimSphere:   geometry.Sphere(12, 16),
		PrimCylinder: geometry.Cylinder(16),
		PrimBox:      geometry.Box(),
		PrimQuad:     geometry.Quad(),
	}
	for i, m := range meshes {
		r.shapes[i] = uploadMesh(
			unsafe.Pointer(&m.Vertices[0]),
			len(m.Vertices)*4,
			geometry.FloatsPerVertex*4, shapeAttribs, m.Indices)
	}
}

// DrawShape draws a unit primitive transformed by model.
func (r *Renderer) DrawShape(prim Primitive, model math.Mat4, color [4]float32) {
	p := r.shapeProg
	p.Use()
	p.SetMat4("uViewProj", r.viewProj)
	p.SetMat4("uModel", model)
	p.SetVec4("uColor", color)
	p.SetVec3("uLightDir", r.config.LightDir.Array())

	if color[3] < 1 {
		gl.Enable(gl.BLEND)
		gl.DepthMask(false)
		defer func() {
			gl.DepthMask(true)
			gl.Disable(gl.BLEND)
		}()
	}
	r.shapes[prim].draw()
}

// DrawSphere draws a sphere of radius at pos.
func (r *Renderer) DrawSphere(pos math.Vec3, radius float32, color [4]float32) {
	r.DrawShape(PrimSphere, math.Translate(pos.X, pos.Y, pos.Z).Mul(math.Scale(radius, radius, radius)), color)
}

// DrawCylinder draws an upright cylinder centered on pos.
func (r *Renderer) DrawCylinder(pos math.Vec3, radius, halfHeight float32, color [4]float32) {
	r.DrawShape(PrimCylinder, math.Translate(pos.X, pos.Y, pos.Z).Mul(math.Scale(radius, radius, halfHeight)), color)
}

// DrawBox draws a box of half extents rotated by heading degrees about Z.
func (r *Renderer) DrawBox(pos, half math.Vec3, heading float32, color [4]float32) {
	model := math.Translate(pos.X, pos.Y, pos.Z).
		Mul(math.RotateZ(math.Radians(heading))).
		Mul(math.Scale(half.X, half.Y, half.Z))
	r.DrawShape(PrimBox, model, color)
}

// DrawWater draws a translucent plane whose tint ripples with t seconds.
func (r *Renderer) DrawWater(p *water.Plane, t float32) {
	frame := water.CalculateAnimFrame(t, water.DefaultAnimSpeed, water.DefaultFrames)
	ripple := float32(frame) / water.DefaultFrames * 0.08
	color := WaterColor
	color[0] += ripple
	color[1] += ripple
	color[2] += ripple

	cx, cy := (p.MinX+p.MaxX)/2, (p.MinY+p.MaxY)/2
	model := math.Translate(cx, cy, p.Level).Mul(math.Scale((p.MaxX-p.MinX)/2, (p.MaxY-p.MinY)/2, 1))
	gl.Disable(gl.CULL_FACE)
	r.DrawShape(PrimQuad, model, color)
	gl.Enable(gl.CULL_FACE)
}

// DrawLines draws a line list of x,y,z vertices.
func (r *Renderer) DrawLines(vertices []float32, color [4]float32) {
	if len(vertices) < 6 {
		return
	}
	r.lines.upload(vertices)

	p := r.lineProg
	p.Use()
	p.SetMat4("uViewProj", r.viewProj)
	p.SetVec4("uColor", color)
	gl.BindVertexArray(r.lines.vao)
	gl.DrawArrays(gl.LINES, 0, int32(len(vertices)/3))
}

// DrawOverlay covers the screen with black at alpha.
func (r *Renderer) DrawOverlay(alpha float32) {
	if alpha <= 0 {
		return
	}
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)

	p := r.overlayProg
	p.Use()
	p.SetVec4("uColor", [4]float32{0, 0, 0, min(alpha, 1)})
	gl.BindVertexArray(r.empty)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
}

// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/lighting"
	"github.com/Faultbox/avoid-balls/internal/engine/shader"
	"github.com/Faultbox/avoid-balls/internal/engine/terrain"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	ClearColor [3]float32
	LightDir   math.Vec3
	FogFar     float32
}

// DefaultConfig returns a sky blue clear color and a low morning sun.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		ClearColor: [3]float32{0.55, 0.7, 0.85},
		LightDir:   lighting.SunDirection(37, 60),
		FogFar:     600,
	}
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config
	log    *zap.Logger

	terrainProg *shader.Program
	shapeProg   *shader.Program
	lineProg    *shader.Program
	overlayProg *shader.Program

	shapes  [primitiveCount]*gpuMesh
	terrain map[*terrain.Mesh]*gpuMesh
	lines   lineBuffer
	empty   uint32

	viewProj math.Mat4
	eye      math.Vec3
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Renderer{
		config:  cfg,
		log:     log,
		terrain: make(map[*terrain.Mesh]*gpuMesh),
	}
	r.config.LightDir = cfg.LightDir.Normalize()
	if r.config.FogFar <= 0 {
		r.config.FogFar = 600
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	c := cfg.ClearColor
	gl.ClearColor(c[0], c[1], c[2], 1.0)

	programs := []struct {
		dst    **shader.Program
		name   string
		vs, fs string
	}{
		{&r.terrainProg, "terrain", terrainVertex, terrainFragment},
		{&r.shapeProg, "shape", shapeVertex, shapeFragment},
		{&r.lineProg, "line", lineVertex, lineFragment},
		{&r.overlayProg, "overlay", overlayVertex, overlayFragment},
	}
	for _, p := range programs {
		prog, err := shader.NewProgram(p.vs, p.fs)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to create %s program: %w", p.name, err)
		}
		*p.dst = prog
	}

	r.createShapes()
	r.lines.init()
	gl.GenVertexArrays(1, &r.empty)

	r.Resize(cfg.Width, cfg.Height)
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	r.ReleaseTerrain()
	for i, m := range r.shapes {
		if m != nil {
			m.delete()
			r.shapes[i] = nil
		}
	}
	r.lines.delete()
	if r.empty != 0 {
		gl.DeleteVertexArrays(1, &r.empty)
		r.empty = 0
	}
	for _, p := range []*shader.Program{r.terrainProg, r.shapeProg, r.lineProg, r.overlayProg} {
		if p != nil {
			p.Delete()
		}
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Begin starts a new frame seen from eye.
func (r *Renderer) Begin(view, projection math.Mat4, eye math.Vec3) {
	r.viewProj = projection.Mul(view)
	r.eye = eye
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// ReadPixels returns the RGBA contents of the back buffer.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	if len(pixels) == 0 {
		return pixels, w, h
	}
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	return pixels, w, h
}

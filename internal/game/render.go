package game

import (
	"github.com/Faultbox/avoid-balls/internal/engine/debug"
	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/engine/renderer"
	"github.com/Faultbox/avoid-balls/internal/game/ball"
	"github.com/Faultbox/avoid-balls/internal/game/goal"
	"github.com/Faultbox/avoid-balls/internal/game/nature"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

var (
	rockColor    = [4]float32{0.45, 0.43, 0.4, 1}
	trunkColor   = [4]float32{0.35, 0.22, 0.12, 1}
	pineColor    = [4]float32{0.1, 0.4, 0.15, 1}
	firColor     = [4]float32{0.05, 0.3, 0.2, 1}
	flowerColor  = [4]float32{0.9, 0.8, 0.2, 1}
	grassColor   = [4]float32{0.3, 0.6, 0.2, 1}
	postColor    = [4]float32{0.95, 0.95, 0.95, 1}
	padColor     = [4]float32{0.55, 0.5, 0.45, 1}
	playerColor  = [4]float32{0.2, 0.4, 0.9, 1}
	ballColor    = [4]float32{0.85, 0.15, 0.1, 1}
	debugColor   = [4]float32{0, 1, 0, 1}
	sensorColor  = [4]float32{1, 0.8, 0, 1}
	flowerRadius = float32(0.2)
	grassHeight  = float32(0.3)
)

func (g *Game) render() {
	cam := g.scene.Camera()
	g.renderer.Begin(cam.ViewMatrix(), cam.Projection(g.renderer.Aspect()), cam.Eye())

	layout := g.scene.Assembly().Layout()
	if layout != nil {
		if layout != g.uploaded {
			g.renderer.UseTerrain(layout.LODs[:])
			g.uploaded = layout
		}
		for _, lod := range layout.LODs {
			g.renderer.DrawTerrain(lod, layout.Palette)
		}
	}

	for _, inst := range g.scene.Placer().All() {
		g.drawNature(inst)
	}
	g.drawGate(g.scene.Gate())
	g.drawBody(g.scene.Walker().Body(), playerColor)

	for _, b := range g.scene.Balls().Active() {
		g.renderer.DrawSphere(b.Position, ball.Radius, ballColor)
	}
	ps := g.scene.Particles()
	for i := range ps.P {
		p := &ps.P[i]
		g.renderer.DrawSphere(p.Position(), p.Scale(), p.Color)
	}

	for _, w := range g.scene.Placer().Waters() {
		g.renderer.DrawWater(w, g.elapsed)
	}

	if g.debug {
		bodies := g.scene.Space().Bodies(physics.MaskAll &^ physics.MaskSensor)
		g.renderer.DrawLines(debug.BodyWireframes(bodies, debug.DefaultBBoxPadding), debugColor)
		if s := g.scene.Gate().Sensor(); g.scene.Gate().Active() {
			g.renderer.DrawLines(debug.BodyWireframes([]*physics.Body{s.Body()}, 0), sensorColor)
		}
	}

	g.renderer.DrawOverlay(g.cycle.Fade().Alpha())
	g.renderer.End()
}

func (g *Game) drawNature(inst nature.Instance) {
	switch inst.Kind {
	case nature.Rock:
		model := math.Translate(inst.Position.X, inst.Position.Y, inst.Position.Z).
			Mul(math.RotateZ(math.Radians(inst.Heading))).
			Mul(math.Scale(inst.Scale.X, inst.Scale.Y, inst.Scale.Z))
		g.renderer.DrawShape(renderer.PrimSphere, model, rockColor)
	case nature.Pine, nature.Fir:
		c, ok := inst.Body.Shape.(physics.Capsule)
		if !ok {
			return
		}
		crown := pineColor
		if inst.Kind == nature.Fir {
			crown = firColor
		}
		center := inst.Body.Position
		g.renderer.DrawCylinder(center, c.Radius*0.5, c.HalfHeight+c.Radius, trunkColor)
		top := center.Add(math.Vec3{Z: c.HalfHeight})
		g.renderer.DrawSphere(top, c.Radius*3, crown)
	case nature.Flower:
		g.renderer.DrawSphere(inst.Position.Add(math.Vec3{Z: flowerRadius}), flowerRadius, flowerColor)
	case nature.Grass:
		g.renderer.DrawCylinder(inst.Position.Add(math.Vec3{Z: grassHeight / 2}), 0.05, grassHeight/2, grassColor)
	}
}

func (g *Game) drawGate(gate *goal.Gate) {
	if !gate.Active() {
		return
	}
	pos := gate.Position()
	left, right := gate.Posts()
	for _, p := range [2]math.Vec2{left, right} {
		g.renderer.DrawCylinder(p.Vec3(pos.Z+goal.PostHeight/2), goal.PostRadius, goal.PostHeight/2, postColor)
	}
	g.renderer.DrawBox(pos.Add(math.Vec3{Z: goal.FoundationHalfExtents.Z}), goal.FoundationHalfExtents, gate.Heading(), padColor)
}

// drawBody draws a body from its collision shape.
func (g *Game) drawBody(b *physics.Body, color [4]float32) {
	switch s := b.Shape.(type) {
	case physics.Sphere:
		g.renderer.DrawSphere(b.Position, s.Radius, color)
	case physics.Box:
		g.renderer.DrawBox(b.Position, s.Half, b.Heading, color)
	case physics.Capsule:
		g.renderer.DrawCylinder(b.Position, s.Radius, s.HalfHeight, color)
		g.renderer.DrawSphere(b.Position.Add(math.Vec3{Z: s.HalfHeight}), s.Radius, color)
		g.renderer.DrawSphere(b.Position.Sub(math.Vec3{Z: s.HalfHeight}), s.Radius, color)
	}
}

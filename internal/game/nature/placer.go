package nature

import (
	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/engine/water"
	"github.com/Faultbox/avoid-balls/internal/game/world"
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Terrain is what the placer needs from the terrain assembly.
type Terrain interface {
	CheckPosition(x, y float32, sweep bool) (math.Vec3, bool)
	LowestPoint(q heightfield.Quadrant) float32
}

// Config holds placement settings.
type Config struct {
	Jitter         float32   `yaml:"jitter"`          // Random offset applied to each marker, in world units
	WaterIntensity int       `yaml:"water_intensity"` // Pixels at or below this intensity count as low ground
	WaterPixels    int       `yaml:"water_pixels"`    // Low ground pixels needed for a water plane
	WaterOffset    float32   `yaml:"water_offset"`    // Water height above the lowest point of the tile
	RockScaleMin   math.Vec3 `yaml:"rock_scale_min"`
	RockScaleMax   math.Vec3 `yaml:"rock_scale_max"`
	TreeRadius     float32   `yaml:"tree_radius"`
	PineHeight     float32   `yaml:"pine_height"`
	FirHeight      float32   `yaml:"fir_height"`
}

// DefaultConfig returns the standard placement settings.
func DefaultConfig() Config {
	return Config{
		Jitter:         10,
		WaterIntensity: 20,
		WaterPixels:    1000,
		WaterOffset:    0.5,
		RockScaleMin:   math.Vec3{X: 3, Y: 2, Z: 3},
		RockScaleMax:   math.Vec3{X: 6, Y: 4, Z: 6},
		TreeRadius:     1,
		PineHeight:     8,
		FirHeight:      10,
	}
}

// Placer populates tiles with nature and owns every instance it creates.
type Placer struct {
	world   physics.World
	terrain Terrain
	rng     *rng.RNG
	cfg     Config
	log     *zap.Logger

	nextID    int
	instances map[heightfield.Quadrant][]Instance
	waters    map[heightfield.Quadrant]*water.Plane
}

// NewPlacer creates a placer.
func NewPlacer(w physics.World, t Terrain, r *rng.RNG, cfg Config, log *zap.Logger) *Placer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Placer{
		world:     w,
		terrain:   t,
		rng:       r,
		cfg:       cfg,
		log:       log,
		instances: make(map[heightfield.Quadrant][]Instance),
		waters:    make(map[heightfield.Quadrant]*water.Plane),
	}
}

// Populate places nature on every marker pixel of the tile whose jittered
// position has clearance, and a water plane if the tile is low enough.
// Blocked positions are skipped.
func (p *Placer) Populate(tile *world.Tile) []Instance {
	var placed []Instance
	for _, m := range tile.Markers() {
		xy := tile.PixelToCartesian(m.Px, m.Py)
		x := xy.X + p.rng.Range(-p.cfg.Jitter, p.cfg.Jitter)
		y := xy.Y + p.rng.Range(-p.cfg.Jitter, p.cfg.Jitter)

		pos, ok := p.terrain.CheckPosition(x, y, true)
		if !ok {
			continue
		}
		inst := p.spawn(KindOf(m.Area), tile.Quadrant, pos)
		placed = append(placed, inst)
	}
	p.instances[tile.Quadrant] = append(p.instances[tile.Quadrant], placed...)

	if low := tile.CountPixels(0, p.cfg.WaterIntensity); low > p.cfg.WaterPixels {
		level := p.terrain.LowestPoint(tile.Quadrant) + p.cfg.WaterOffset
		p.waters[tile.Quadrant] = water.BuildCentered(tile.Center.X, tile.Center.Y, float32(tile.Size), level)
	}

	p.log.Debug("nature placed",
		zap.Stringer("tile", tile.Quadrant),
		zap.Int("instances", len(placed)),
		zap.Bool("water", p.waters[tile.Quadrant] != nil))
	return placed
}

func (p *Placer) spawn(kind Kind, q heightfield.Quadrant, pos math.Vec3) Instance {
	p.nextID++
	inst := Instance{
		ID:       p.nextID,
		Kind:     kind,
		Tile:     q,
		Position: pos,
		Heading:  p.rng.Range(0, 360),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}

	switch kind {
	case Rock:
		inst.Scale = math.Vec3{
			X: p.rng.Range(p.cfg.RockScaleMin.X, p.cfg.RockScaleMax.X),
			Y: p.rng.Range(p.cfg.RockScaleMin.Y, p.cfg.RockScaleMax.Y),
			Z: p.rng.Range(p.cfg.RockScaleMin.Z, p.cfg.RockScaleMax.Z),
		}
		inst.Body = physics.NewBody("rock", physics.Static, physics.MaskNature,
			physics.Sphere{Radius: max(inst.Scale.X, inst.Scale.Y, inst.Scale.Z)}, pos)
	case Pine, Fir:
		height := p.cfg.PineHeight
		if kind == Fir {
			height = p.cfg.FirHeight
		}
		half := height / 2
		inst.Body = physics.NewBody(kind.String(), physics.Static, physics.MaskNature,
			physics.Capsule{Radius: p.cfg.TreeRadius, HalfHeight: max(half-p.cfg.TreeRadius, 0)},
			pos.Add(math.Vec3{Z: half}))
	}

	if inst.Body != nil {
		inst.Body.Heading = inst.Heading
		p.world.Attach(inst.Body)
	}
	return inst
}

// Clear removes every instance and the water of quadrant q.
func (p *Placer) Clear(q heightfield.Quadrant) {
	for _, inst := range p.instances[q] {
		if inst.Body != nil {
			p.world.Remove(inst.Body)
		}
	}
	delete(p.instances, q)
	delete(p.waters, q)
}

// ClearAll removes all nature.
func (p *Placer) ClearAll() {
	for _, q := range heightfield.Quadrants {
		p.Clear(q)
	}
}

// Instances returns the instances of quadrant q.
func (p *Placer) Instances(q heightfield.Quadrant) []Instance {
	return p.instances[q]
}

// All returns every instance in quadrant order.
func (p *Placer) All() []Instance {
	var out []Instance
	for _, q := range heightfield.Quadrants {
		out = append(out, p.instances[q]...)
	}
	return out
}

// Count returns the number of instances.
func (p *Placer) Count() int {
	n := 0
	for _, list := range p.instances {
		n += len(list)
	}
	return n
}

// Water returns the water plane of quadrant q, if any.
func (p *Placer) Water(q heightfield.Quadrant) *water.Plane {
	return p.waters[q]
}

// Waters returns every water plane in quadrant order.
func (p *Placer) Waters() []*water.Plane {
	var out []*water.Plane
	for _, q := range heightfield.Quadrants {
		if w := p.waters[q]; w != nil {
			out = append(out, w)
		}
	}
	return out
}

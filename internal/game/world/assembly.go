package world

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/engine/terrain"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// ErrIncompleteTiles is returned when a terrain update is missing a quadrant
// or mixes tile sizes.
var ErrIncompleteTiles = errors.New("incomplete terrain tiles")

// AssemblyConfig holds terrain placement settings.
type AssemblyConfig struct {
	Height          float32 `yaml:"height_scale"`     // Vertical range of the heightfield in world units
	ClearanceRadius float32 `yaml:"clearance_radius"` // Radius of the placement clearance sweep
	LODLevels       int     `yaml:"lod_levels"`
	LODNear         float32 `yaml:"lod_near"`
	LODFar          float32 `yaml:"lod_far"`
}

// DefaultAssemblyConfig returns the standard terrain settings.
func DefaultAssemblyConfig() AssemblyConfig {
	return AssemblyConfig{
		Height:          50,
		ClearanceRadius: 4,
		LODLevels:       3,
		LODNear:         120,
		LODFar:          400,
	}
}

// Layout is one complete terrain: every per-quadrant structure built from the
// same heightfield. It is never modified after construction.
type Layout struct {
	Name    string
	Tiles   [4]*Tile
	Fields  [4]*terrain.Field
	LODs    [4]*terrain.LOD
	Bodies  [4]*physics.Body
	Palette terrain.Palette
	White   float64
}

// Tile returns the tile of quadrant q.
func (l *Layout) Tile(q heightfield.Quadrant) *Tile {
	return l.Tiles[q-1]
}

// Field returns the height sampler of quadrant q.
func (l *Layout) Field(q heightfield.Quadrant) *terrain.Field {
	return l.Fields[q-1]
}

// Assembly owns the terrain tiles and answers elevation queries.
type Assembly struct {
	world  physics.World
	cfg    AssemblyConfig
	log    *zap.Logger
	layout *Layout
}

// NewAssembly creates an empty assembly.
func NewAssembly(world physics.World, cfg AssemblyConfig, log *zap.Logger) *Assembly {
	if log == nil {
		log = zap.NewNop()
	}
	return &Assembly{world: world, cfg: cfg, log: log}
}

// Config returns the assembly settings.
func (a *Assembly) Config() AssemblyConfig {
	return a.cfg
}

// Layout returns the current terrain, nil before the first Replace.
func (a *Assembly) Layout() *Layout {
	return a.layout
}

// Tiles returns the current tiles in quadrant order.
func (a *Assembly) Tiles() []*Tile {
	if a.layout == nil {
		return nil
	}
	return a.layout.Tiles[:]
}

// Palette returns the texturing of the current terrain.
func (a *Assembly) Palette() terrain.Palette {
	if a.layout == nil {
		return Palettes[0]
	}
	return a.layout.Palette
}

// Replace swaps the whole terrain for a new build result. The new layout is
// built completely before the old one is detached, so queries never see a
// mix of both.
func (a *Assembly) Replace(name string, res *heightfield.Result) error {
	next, err := a.build(name, res)
	if err != nil {
		return err
	}

	prev := a.layout
	if prev != nil {
		for _, b := range prev.Bodies {
			a.world.Remove(b)
		}
	}
	for _, b := range next.Bodies {
		a.world.Attach(b)
	}
	a.layout = next

	a.log.Info("terrain replaced",
		zap.String("name", name),
		zap.String("palette", next.Palette.Name),
		zap.Float64("white", next.White))
	return nil
}

func (a *Assembly) build(name string, res *heightfield.Result) (*Layout, error) {
	if res == nil {
		return nil, fmt.Errorf("%w: no build result", ErrIncompleteTiles)
	}

	size := -1
	for _, q := range heightfield.Quadrants {
		img := res.Tiles.Get(q)
		if img == nil {
			return nil, fmt.Errorf("%w: missing %s", ErrIncompleteTiles, q)
		}
		if size >= 0 && img.Size != size {
			return nil, fmt.Errorf("%w: %s is %d pixels, want %d", ErrIncompleteTiles, q, img.Size, size)
		}
		size = img.Size
	}
	if size < 2 {
		return nil, fmt.Errorf("%w: tiles are %d pixels", heightfield.ErrInvalidTileSize, size)
	}

	binary := res.Combined
	if binary == nil {
		binary = res.Tiles.Get(heightfield.TopLeft)
	}
	white, _ := Binarize(binary)

	l := &Layout{
		Name:    name,
		Palette: SelectPalette(white),
		White:   white,
	}
	for i, q := range heightfield.Quadrants {
		tile := NewTile(q, res.Tiles.Get(q))
		field := terrain.NewField(tile.Image, tile.Center, a.cfg.Height)
		l.Tiles[i] = tile
		l.Fields[i] = field
		l.LODs[i] = terrain.BuildLOD(field, a.cfg.LODLevels, l.Palette, a.cfg.LODNear, a.cfg.LODFar)
		l.Bodies[i] = physics.NewBody("terrain_"+q.String(), physics.Static, physics.MaskTerrain,
			physics.Heightfield{Sampler: field}, math.Vec3{})
	}
	return l, nil
}

// Elevation returns the terrain height at world (x, y). The tile is chosen by
// the signs of x and y; points past the outer edge take the edge height.
func (a *Assembly) Elevation(x, y float32) float32 {
	if a.layout == nil {
		return 0
	}
	f := a.layout.Field(heightfield.QuadrantAt(x, y))
	lo, hi := f.Extent()
	x = max(lo.X, min(hi.X, x))
	y = max(lo.Y, min(hi.Y, y))
	z, _ := f.Height(x, y)
	return z
}

// CheckPosition finds the ground under (x, y). With sweep set, a clearance
// sphere is first dropped through the column and any nature or foundation in
// the way rejects the spot.
func (a *Assembly) CheckPosition(x, y float32, sweep bool) (math.Vec3, bool) {
	from := math.Vec3{X: x, Y: y, Z: a.cfg.Height}
	to := math.Vec3{X: x, Y: y, Z: -a.cfg.Height}

	if sweep {
		shape := physics.Sphere{Radius: a.cfg.ClearanceRadius}
		if _, blocked := a.world.SweepTestClosest(shape, from, to, physics.MaskNature|physics.MaskFoundation, 0); blocked {
			return math.Vec3{}, false
		}
	}

	hit, ok := a.world.RayTestClosest(from, to, physics.MaskTerrain)
	if !ok {
		return math.Vec3{}, false
	}
	return hit.Position, true
}

// Bounds returns the world XY extent covered by the terrain.
func (a *Assembly) Bounds() (lo, hi math.Vec2) {
	if a.layout == nil {
		return math.Vec2{}, math.Vec2{}
	}
	bl, _ := a.layout.Field(heightfield.BottomLeft).Extent()
	_, tr := a.layout.Field(heightfield.TopRight).Extent()
	return bl.XY(), tr.XY()
}

// LowestPoint returns the minimum elevation of quadrant q.
func (a *Assembly) LowestPoint(q heightfield.Quadrant) float32 {
	if a.layout == nil {
		return 0
	}
	return a.layout.Field(q).MinHeight()
}

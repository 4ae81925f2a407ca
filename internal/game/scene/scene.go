// Package scene owns one playable level: the physics space, the terrain, its
// nature, the goal gate, the player and the balls shot at them.
package scene

import (
	"context"
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/camera"
	"github.com/Faultbox/avoid-balls/internal/engine/particle"
	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/game/ball"
	"github.com/Faultbox/avoid-balls/internal/game/goal"
	"github.com/Faultbox/avoid-balls/internal/game/nature"
	"github.com/Faultbox/avoid-balls/internal/game/walker"
	"github.com/Faultbox/avoid-balls/internal/game/world"
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// SpawnDistance is how far inside the gate the player starts.
const SpawnDistance = 6

// EdgeMargin keeps the gate this far inside a terrain smaller than the
// corner spots.
const EdgeMargin = 10

// Splash colors by outcome.
var (
	SplashColor = [4]float32{0.85, 0.9, 1, 1}
	HitColor    = [4]float32{1, 0.3, 0.2, 1}
)

// Catalog supplies terrains in play order.
type Catalog interface {
	LoadNext(ctx context.Context) (string, *heightfield.Result, error)
}

// Events is told about things worth a sound.
type Events interface {
	BallResolved(b *ball.Ball)
	GateFinished()
}

// Config collects the tuning of every component.
type Config struct {
	Assembly world.AssemblyConfig
	Nature   nature.Config
	Ball     ball.Config
	Walker   walker.Config
	FOV      float32
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		Assembly: world.DefaultAssemblyConfig(),
		Nature:   nature.DefaultConfig(),
		Ball:     ball.DefaultConfig(),
		Walker:   walker.DefaultConfig(),
		FOV:      90,
	}
}

// Scene wires the level components together. Every component gets its
// collaborators here; none of them reach for shared state.
type Scene struct {
	space     *physics.Space
	catalog   Catalog
	assembly  *world.Assembly
	placer    *nature.Placer
	gate      *goal.Gate
	walker    *walker.Walker
	camera    *camera.FollowCamera
	balls     *ball.Controller
	particles *particle.System
	events    Events
	rng       *rng.RNG
	log       *zap.Logger

	terrain  string
	natureUp bool
}

// New creates an empty scene. Build loads the first terrain.
func New(cat Catalog, r *rng.RNG, cfg Config, log *zap.Logger) *Scene {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Scene{
		space:     physics.NewSpace(),
		catalog:   cat,
		particles: particle.NewSystem(particle.MaxParticles),
		rng:       r,
		log:       log,
	}
	s.assembly = world.NewAssembly(s.space, cfg.Assembly, log.Named("terrain"))
	s.placer = nature.NewPlacer(s.space, s.assembly, r, cfg.Nature, log.Named("nature"))
	s.gate = goal.NewGate(s.space, log.Named("goal"))
	s.walker = walker.New(s.space, cfg.Walker, log.Named("walker"))
	s.camera = camera.NewFollowCamera(s.walker.CameraOffset())
	if cfg.FOV > 0 {
		s.camera.FOV = cfg.FOV
	}
	s.balls = ball.NewController(s.space, s.walker, s.assembly, r, cfg.Ball, log.Named("ball"))
	s.balls.SetViewer(s.camera)
	s.balls.SetEffects(s)
	return s
}

// SetEvents sets the listener for sounds.
func (s *Scene) SetEvents(e Events) {
	s.events = e
}

// Build loads the first terrain and places the gate and the player.
func (s *Scene) Build(ctx context.Context) error {
	if err := s.loadTerrain(ctx); err != nil {
		return err
	}
	s.placeGate()
	return nil
}

// ChangeTerrains replaces the terrain with the next one of the catalog and
// moves the gate and the player onto it. On failure the previous terrain
// stays in place.
func (s *Scene) ChangeTerrains(ctx context.Context) error {
	if err := s.loadTerrain(ctx); err != nil {
		s.log.Error("terrain change failed, keeping the current one", zap.Error(err))
		if s.assembly.Layout() != nil {
			s.placeGate()
		}
		return err
	}
	s.placeGate()
	return nil
}

func (s *Scene) loadTerrain(ctx context.Context) error {
	name, res, err := s.catalog.LoadNext(ctx)
	if err != nil {
		return fmt.Errorf("next terrain: %w", err)
	}
	if err := s.assembly.Replace(name, res); err != nil {
		return fmt.Errorf("replace terrain %s: %w", name, err)
	}
	s.terrain = name
	return nil
}

// placeGate puts the gate on a random corner and the player just inside it,
// facing the middle of the terrain.
func (s *Scene) placeGate() {
	spot := goal.PickCorner(s.rng)
	lo, hi := s.assembly.Bounds()
	spot.X = clampInside(spot.X, lo.X, hi.X)
	spot.Y = clampInside(spot.Y, lo.Y, hi.Y)
	pos := s.ground(spot.X, spot.Y)
	s.gate.Setup(pos, spot.Heading)

	heading := spot.Heading + 180
	inward := math.Vec2{Y: 1}.Rotate(math.Radians(heading))
	xy := pos.XY().Add(inward.Scale(SpawnDistance))

	s.walker.SetPosition(s.ground(xy.X, xy.Y).Add(math.Vec3{Z: s.walker.Config().StandHeight}))
	s.walker.SetHeading(heading)
	s.camera.Offset = s.walker.CameraOffset()
	s.camera.Target = s.walker.Position()
	s.camera.LookAt = s.walker.LookAt()

	s.log.Info("player placed",
		zap.String("terrain", s.terrain),
		zap.Float32("x", xy.X), zap.Float32("y", xy.Y),
		zap.Float32("heading", heading))
}

// ground returns the terrain surface under (x, y), taking the clamped edge
// height when the ray misses.
func (s *Scene) ground(x, y float32) math.Vec3 {
	if pos, ok := s.assembly.CheckPosition(x, y, false); ok {
		return pos
	}
	return math.Vec3{X: x, Y: y, Z: s.assembly.Elevation(x, y)}
}

func clampInside(v, lo, hi float32) float32 {
	if hi-lo <= 2*EdgeMargin {
		return (lo + hi) / 2
	}
	return max(lo+EdgeMargin, min(hi-EdgeMargin, v))
}

// SetupNature populates every tile. Calling it twice without CleanUp is a
// no-op.
func (s *Scene) SetupNature() {
	if s.natureUp {
		return
	}
	for _, tile := range s.assembly.Tiles() {
		s.placer.Populate(tile)
	}
	s.natureUp = true
	s.log.Info("nature set up", zap.Int("instances", s.placer.Count()))
}

// CleanUp removes everything placed for the level: balls, particles,
// nature and the gate. The terrain and the player stay.
func (s *Scene) CleanUp() {
	s.balls.Clear()
	s.particles.Clear()
	s.placer.ClearAll()
	s.gate.Cleanup()
	s.natureUp = false
	s.log.Info("level cleaned up", zap.Int("bodies", s.space.Len()))
}

// Update advances one frame: the player moves first so the camera and the
// balls see its current position, then the gate sensor is polled.
func (s *Scene) Update(dt float32, m walker.Motion) {
	s.walker.Update(dt, m)
	s.camera.Update(s.space, s.walker.Body(), s.walker.LookAt(), s.walker.CameraOffset())
	s.balls.Update(dt)
	if s.gate.Check() {
		s.log.Info("gate passed",
			zap.Int("avoided", s.Score().Avoided),
			zap.Int("hit", s.Score().Hit))
		if s.events != nil {
			s.events.GateFinished()
		}
	}
	s.particles.Update(dt)
}

// Shoot launches one ball at the player.
func (s *Scene) Shoot() *ball.Ball {
	return s.balls.Shoot()
}

// Splash bursts droplets where a ball left play.
func (s *Scene) Splash(b *ball.Ball) {
	color := SplashColor
	if b.Outcome == ball.Hit {
		color = HitColor
	}
	s.particles.Splash(s.rng, b.Position, color)
	if s.events != nil {
		s.events.BallResolved(b)
	}
}

// Score returns the counters of the level.
func (s *Scene) Score() ball.Score {
	return s.balls.Score()
}

// Finished reports whether the player went through the gate.
func (s *Scene) Finished() bool {
	return s.gate.Finished()
}

// TerrainName returns the name of the current terrain.
func (s *Scene) TerrainName() string {
	return s.terrain
}

// Bounds returns the XY extent of the terrain.
func (s *Scene) Bounds() (lo, hi math.Vec2) {
	return s.assembly.Bounds()
}

// DistanceToGate returns the planar distance from the player to the gate.
func (s *Scene) DistanceToGate() float32 {
	if !s.gate.Active() {
		return float32(gomath.Inf(1))
	}
	return s.walker.Position().XY().Distance(s.gate.Position().XY())
}

// Component access for the renderer and the debug overlay.

func (s *Scene) Space() *physics.Space { return s.space }
func (s *Scene) Assembly() *world.Assembly { return s.assembly }
func (s *Scene) Placer() *nature.Placer { return s.placer }
func (s *Scene) Gate() *goal.Gate { return s.gate }
func (s *Scene) Walker() *walker.Walker { return s.walker }
func (s *Scene) Camera() *camera.FollowCamera { return s.camera }
func (s *Scene) Balls() *ball.Controller { return s.balls }
func (s *Scene) Particles() *particle.System { return s.particles }

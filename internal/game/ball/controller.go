package ball

import (
	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/engine/physics"
	"github.com/Faultbox/avoid-balls/internal/game/walker"
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/math"
)

// Config holds ball tuning.
type Config struct {
	LaunchRadius float32 `yaml:"launch_radius"` // Distance of the launch circle from the player
	LaunchSpread float32 `yaml:"launch_spread"` // Degrees either side of camera forward
	LaunchHeight float32 `yaml:"launch_height"` // Height above the ground at the launch spot
	Arc          float32 `yaml:"arc"`           // Control point lift above the midpoint
	Duration     float32 `yaml:"duration"`      // Seconds from launch to landing
	ForwardLead  float32 `yaml:"forward_lead"`
	BackwardLead float32 `yaml:"backward_lead"`
	StandJitter  float32 `yaml:"stand_jitter"`
	SweepRadius  float32 `yaml:"sweep_radius"`
}

// DefaultConfig returns the default ball tuning.
func DefaultConfig() Config {
	return Config{
		LaunchRadius: 100,
		LaunchSpread: 60,
		LaunchHeight: 30,
		Arc:          20,
		Duration:     2,
		ForwardLead:  20,
		BackwardLead: 10,
		StandJitter:  1,
		SweepRadius:  Radius,
	}
}

// Score counts resolved balls.
type Score struct {
	Avoided int
	Hit     int
}

// Target is the player the balls are aimed at.
type Target interface {
	Position() math.Vec3
	Facing() math.Vec3
	Motion() walker.Motion
}

// Viewer gives the direction balls are launched around.
type Viewer interface {
	Forward() math.Vec3
}

// Ground locates the terrain surface.
type Ground interface {
	CheckPosition(x, y float32, sweep bool) (math.Vec3, bool)
}

// Effects is told about every ball removed from play.
type Effects interface {
	Splash(b *Ball)
}

// Controller spawns, moves and resolves balls.
type Controller struct {
	world   physics.World
	target  Target
	view    Viewer
	ground  Ground
	effects Effects
	rng     *rng.RNG
	cfg     Config
	log     *zap.Logger

	active  []*Ball
	pending []*Ball
	nextID  int
	score   Score
}

// NewController creates a controller. view and effects may be nil.
func NewController(w physics.World, target Target, ground Ground, r *rng.RNG, cfg Config, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		world:  w,
		target: target,
		ground: ground,
		rng:    r,
		cfg:    cfg,
		log:    log,
	}
}

// SetViewer sets the launch reference direction. Without one the target
// facing is used.
func (c *Controller) SetViewer(v Viewer) {
	c.view = v
}

// SetEffects sets the removal listener.
func (c *Controller) SetEffects(e Effects) {
	c.effects = e
}

// Config returns the tuning.
func (c *Controller) Config() Config {
	return c.cfg
}

// Shoot launches a ball at the target.
func (c *Controller) Shoot() *Ball {
	player := c.target.Position()
	return c.Launch(c.launchPoint(player), c.destination(player))
}

func (c *Controller) launchPoint(player math.Vec3) math.Vec3 {
	forward := c.target.Facing()
	if c.view != nil {
		forward = c.view.Forward()
	}
	dir := forward.XY().Normalize()
	if dir.Length() == 0 {
		dir = math.Vec2{Y: 1}
	}

	angle := c.rng.Range(-c.cfg.LaunchSpread, c.cfg.LaunchSpread)
	xy := player.XY().Add(dir.Rotate(math.Radians(angle)).Scale(c.cfg.LaunchRadius))
	return c.onGround(xy, player.Z).Add(math.Vec3{Z: c.cfg.LaunchHeight})
}

// destination leads a moving target and jitters around a still one.
func (c *Controller) destination(player math.Vec3) math.Vec3 {
	facing := c.target.Facing().XY()
	xy := player.XY()
	switch c.target.Motion() {
	case walker.Forward:
		xy = xy.Add(facing.Scale(c.cfg.ForwardLead))
	case walker.Backward:
		xy = xy.Add(facing.Scale(-c.cfg.BackwardLead))
	default:
		j := c.cfg.StandJitter
		xy = xy.Add(math.Vec2{X: c.rng.Range(-j, j), Y: c.rng.Range(-j, j)})
	}
	return c.onGround(xy, player.Z)
}

func (c *Controller) onGround(xy math.Vec2, fallback float32) math.Vec3 {
	if c.ground != nil {
		if p, ok := c.ground.CheckPosition(xy.X, xy.Y, false); ok {
			return p
		}
	}
	return xy.Vec3(fallback)
}

// Launch spawns a ball flying from launch to dest.
func (c *Controller) Launch(launch, dest math.Vec3) *Ball {
	b := NewBall(launch, dest, c.cfg.Arc)
	c.nextID++
	b.ID = c.nextID
	c.world.Attach(b.Body)
	c.active = append(c.active, b)
	return b
}

// Update removes the balls resolved by the previous call, then advances
// the rest and resolves collisions.
func (c *Controller) Update(dt float32) {
	for _, b := range c.pending {
		if c.effects != nil {
			c.effects.Splash(b)
		}
		c.world.Remove(b.Body)
	}
	c.pending = c.pending[:0]

	sphere := physics.Sphere{Radius: c.cfg.SweepRadius}
	flying := c.active[:0]
	for _, b := range c.active {
		next := b.Advance(dt, c.cfg.Duration)

		if hit, ok := c.world.SweepTestClosest(sphere, b.Position, next, physics.MaskEnvironment|physics.MaskPlayer, 0); ok {
			if hit.Body.Mask.Has(physics.MaskPlayer) {
				b.Outcome = Hit
				c.score.Hit++
			} else {
				b.Outcome = Avoided
				c.score.Avoided++
			}
			b.State = Landed
			b.MoveTo(hit.Position)
			c.pending = append(c.pending, b)
			c.log.Debug("ball resolved",
				zap.Int("id", b.ID),
				zap.Stringer("outcome", b.Outcome),
				zap.Stringer("body", hit.Body),
				zap.Int("avoided", c.score.Avoided),
				zap.Int("hit", c.score.Hit))
			continue
		}

		b.MoveTo(next)
		if b.Done() {
			b.State = Landed
			c.pending = append(c.pending, b)
			c.log.Debug("ball landed clean", zap.Int("id", b.ID))
			continue
		}
		flying = append(flying, b)
	}
	clear(c.active[len(flying):])
	c.active = flying
}

// Clear drops every ball without effects.
func (c *Controller) Clear() {
	for _, b := range c.active {
		c.world.Remove(b.Body)
	}
	for _, b := range c.pending {
		c.world.Remove(b.Body)
	}
	c.active = nil
	c.pending = nil
}

// Active returns the balls in flight.
func (c *Controller) Active() []*Ball {
	return c.active
}

// Pending returns the balls waiting for removal.
func (c *Controller) Pending() []*Ball {
	return c.pending
}

// Score returns the counters.
func (c *Controller) Score() Score {
	return c.score
}

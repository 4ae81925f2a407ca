package states

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/game/ball"
	"github.com/Faultbox/avoid-balls/internal/rng"
)

// Level is the scene as seen by the level cycle.
type Level interface {
	SetupNature()
	CleanUp()
	ChangeTerrains(ctx context.Context) error
	Shoot() *ball.Ball
	Finished() bool
}

// Config holds the level cycle timing.
type Config struct {
	StartDelay   time.Duration // Wait before balls start
	FadeDuration time.Duration // Switching screen fade
	ShootMin     time.Duration // Shortest gap between balls
	ShootMax     time.Duration // Longest gap between balls
}

// DefaultConfig returns the standard timing.
func DefaultConfig() Config {
	return Config{
		StartDelay:   2 * time.Second,
		FadeDuration: 2 * time.Second,
		ShootMin:     100 * time.Millisecond,
		ShootMax:     time.Second,
	}
}

// Cycle runs levels forever: Wait, Play until the gate is passed, Cleanup
// once the switching screen covers everything, Setup the next terrain and
// Wait again.
type Cycle struct {
	*Manager

	ctx   context.Context
	level Level
	fade  *Fade
	cfg   Config
	rng   *rng.RNG
	log   *zap.Logger

	Wait    *WaitState
	Play    *PlayState
	Cleanup *CleanupState
	Setup   *SetupState

	levels int
}

// NewCycle creates a cycle that starts in Wait.
func NewCycle(ctx context.Context, level Level, r *rng.RNG, cfg Config, log *zap.Logger) *Cycle {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Cycle{
		Manager: NewManager(log),
		ctx:     ctx,
		level:   level,
		fade:    NewFade(cfg.FadeDuration.Seconds()),
		cfg:     cfg,
		rng:     r,
		log:     log,
	}
	c.Wait = &WaitState{c: c}
	c.Play = &PlayState{c: c}
	c.Cleanup = &CleanupState{c: c}
	c.Setup = &SetupState{c: c}
	c.Change(c.Wait)
	return c
}

// Update advances the fade and the current state.
func (c *Cycle) Update(dt float64) error {
	c.fade.Update(dt)
	return c.Manager.Update(dt)
}

// Fade returns the switching screen.
func (c *Cycle) Fade() *Fade {
	return c.fade
}

// Levels returns the number of levels completed.
func (c *Cycle) Levels() int {
	return c.levels
}

// WaitState gives the player a moment before the balls start.
type WaitState struct {
	c       *Cycle
	elapsed float64
}

func (s *WaitState) Name() string { return "wait" }

func (s *WaitState) Enter() error {
	s.elapsed = 0
	return nil
}

func (s *WaitState) Exit() error { return nil }

func (s *WaitState) Update(dt float64) error {
	s.elapsed += dt
	if s.elapsed >= s.c.cfg.StartDelay.Seconds() {
		s.c.Change(s.c.Play)
	}
	return nil
}

// PlayState shoots balls at random intervals until the gate is passed.
type PlayState struct {
	c     *Cycle
	timer float64
	shots int
}

func (s *PlayState) Name() string { return "play" }

func (s *PlayState) Enter() error {
	s.c.level.SetupNature()
	s.timer = 0
	s.shots = 0
	return nil
}

func (s *PlayState) Exit() error {
	s.c.log.Info("level finished", zap.Int("shots", s.shots))
	return nil
}

func (s *PlayState) Update(dt float64) error {
	if s.c.level.Finished() {
		s.c.levels++
		s.c.fade.In()
		s.c.Change(s.c.Cleanup)
		return nil
	}

	s.timer -= dt
	if s.timer <= 0 {
		s.c.level.Shoot()
		s.shots++
		s.timer = s.interval()
	}
	return nil
}

// Shots returns the number of balls shot this level.
func (s *PlayState) Shots() int {
	return s.shots
}

func (s *PlayState) interval() float64 {
	lo, hi := s.c.cfg.ShootMin.Seconds(), s.c.cfg.ShootMax.Seconds()
	if s.c.rng == nil || hi <= lo {
		return lo
	}
	return float64(s.c.rng.Range(float32(lo), float32(hi)))
}

// CleanupState waits for the switching screen and clears the level behind it.
type CleanupState struct {
	c *Cycle
}

func (s *CleanupState) Name() string { return "cleanup" }

func (s *CleanupState) Enter() error { return nil }

func (s *CleanupState) Exit() error { return nil }

func (s *CleanupState) Update(float64) error {
	if s.c.fade.Shown() {
		s.c.level.CleanUp()
		s.c.Change(s.c.Setup)
	}
	return nil
}

// SetupState loads the next terrain and uncovers the screen. A failed load
// keeps the current terrain and the cycle goes on.
type SetupState struct {
	c *Cycle
}

func (s *SetupState) Name() string { return "setup" }

func (s *SetupState) Enter() error {
	if err := s.c.level.ChangeTerrains(s.c.ctx); err != nil {
		s.c.log.Warn("playing the same terrain again", zap.Error(err))
	}
	s.c.fade.Out()
	return nil
}

func (s *SetupState) Exit() error { return nil }

func (s *SetupState) Update(float64) error {
	s.c.Change(s.c.Wait)
	return nil
}

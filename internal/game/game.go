// Package game implements the main game loop.
package game

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/avoid-balls/internal/assets"
	"github.com/Faultbox/avoid-balls/internal/config"
	"github.com/Faultbox/avoid-balls/internal/engine/audio"
	"github.com/Faultbox/avoid-balls/internal/engine/debug"
	"github.com/Faultbox/avoid-balls/internal/engine/input"
	"github.com/Faultbox/avoid-balls/internal/engine/renderer"
	"github.com/Faultbox/avoid-balls/internal/engine/window"
	"github.com/Faultbox/avoid-balls/internal/game/ball"
	"github.com/Faultbox/avoid-balls/internal/game/scene"
	"github.com/Faultbox/avoid-balls/internal/game/states"
	"github.com/Faultbox/avoid-balls/internal/game/walker"
	"github.com/Faultbox/avoid-balls/internal/game/world"
	"github.com/Faultbox/avoid-balls/internal/rng"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
)

// Title is the window title prefix.
const Title = "Avoid Balls"

// maxFrameTime caps dt after a stall so balls do not tunnel.
const maxFrameTime = 0.1

// Game is the main game instance.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool
	debug   bool
	elapsed float32

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	shots    *debug.ScreenshotCapture

	scene *scene.Scene
	cycle *states.Cycle

	uploaded *world.Layout
	score    ball.Score
}

// New creates the window, loads the first terrain and prepares the level
// cycle. A terrain that cannot be loaded is fatal here.
func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int64("seed", cfg.Game.Seed),
	)

	g := &Game{
		cfg:   cfg,
		log:   log,
		debug: cfg.Game.Debug,
		input: input.New(),
		audio: audio.New(),
		shots: debug.NewScreenshotCapture("screenshots", "avoidballs"),
	}

	r := rng.New(cfg.Game.Seed)
	g.scene = scene.New(newCatalog(cfg, r, log.Named("assets")), r, sceneConfig(cfg), log.Named("scene"))
	g.scene.SetEvents(g)
	if err := g.scene.Build(ctx); err != nil {
		return nil, fmt.Errorf("failed to build the first terrain: %w", err)
	}
	g.cycle = states.NewCycle(ctx, g.scene, r, cycleConfig(cfg), log.Named("states"))

	var err error
	g.window, err = window.New(window.Config{
		Title:      Title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		MSAA:       cfg.Graphics.MSAA,
	}, log.Named("window"))
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.DefaultConfig(w, h), log.Named("renderer"))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.initAudio()
	g.updateTitle()

	log.Info("game initialized", zap.String("terrain", g.scene.TerrainName()))
	return g, nil
}

func newCatalog(cfg *config.Config, r *rng.RNG, log *zap.Logger) *assets.Catalog {
	cat := assets.NewCatalog(cfg.Terrain.Dir, cfg.Terrain.TileSize, r, log)
	if cfg.Terrain.Output != "" {
		cat.SetOutput(cfg.Terrain.Output)
	}
	if rc := cfg.Terrain.Remote; rc.Enabled {
		src := heightfield.NewRemoteSource(rc.Z, rc.X, rc.Y, cfg.Terrain.TileSize)
		src.URL = rc.URL
		src.Client = &http.Client{Timeout: rc.Timeout}
		cat.SetRemote(src)
	}
	if err := cat.Scan(); err != nil {
		log.Warn("terrain catalog scan failed", zap.Error(err))
	}
	return cat
}

func sceneConfig(cfg *config.Config) scene.Config {
	return scene.Config{
		Assembly: cfg.Terrain.AssemblyConfig,
		Nature:   cfg.Nature,
		Ball:     cfg.Ball,
		Walker:   cfg.Walker,
		FOV:      cfg.Graphics.FOV,
	}
}

func cycleConfig(cfg *config.Config) states.Config {
	return states.Config{
		StartDelay:   cfg.Game.StartDelay,
		FadeDuration: cfg.Game.FadeDuration,
		ShootMin:     cfg.Game.ShootMin,
		ShootMax:     cfg.Game.ShootMax,
	}
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := min(now.Sub(lastTime).Seconds(), maxFrameTime)
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		g.render()
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.cfg.Game.ShowFPS {
				g.log.Debug("fps", zap.Int("count", frameCount), zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			g.renderer.Resize(event.Width, event.Height)
		case input.EventKeyDown:
			switch event.Key {
			case sdl.SCANCODE_ESCAPE:
				g.running = false
			case sdl.SCANCODE_D:
				g.debug = !g.debug
				g.log.Info("debug draw toggled", zap.Bool("on", g.debug))
			case sdl.SCANCODE_P:
				g.logPosition()
			case sdl.SCANCODE_F12:
				g.screenshot()
			}
		}
	}
}

func (g *Game) motion() walker.Motion {
	return walker.MotionFrom(
		g.input.IsKeyHeld(sdl.SCANCODE_UP),
		g.input.IsKeyHeld(sdl.SCANCODE_DOWN),
		g.input.IsKeyHeld(sdl.SCANCODE_LEFT),
		g.input.IsKeyHeld(sdl.SCANCODE_RIGHT),
	)
}

// update runs the scene first so the cycle sees this frame's gate state.
func (g *Game) update(dt float64) error {
	g.elapsed += float32(dt)
	g.scene.Update(float32(dt), g.motion())
	if err := g.cycle.Update(dt); err != nil {
		return err
	}

	if score := g.scene.Score(); score != g.score {
		g.score = score
		g.updateTitle()
	}
	return nil
}

func (g *Game) updateTitle() {
	s := g.scene.Score()
	g.window.SetTitle(fmt.Sprintf("%s | avoid: %d  hit: %d | %s", Title, s.Avoided, s.Hit, g.scene.TerrainName()))
}

func (g *Game) logPosition() {
	w := g.scene.Walker()
	cam := g.scene.Camera()
	g.log.Info("position",
		zap.Float32("x", w.Position().X),
		zap.Float32("y", w.Position().Y),
		zap.Float32("z", w.Position().Z),
		zap.Float32("heading", w.Heading()),
		zap.Float32("camera_x", cam.Eye().X),
		zap.Float32("camera_y", cam.Eye().Y),
		zap.Float32("camera_z", cam.Eye().Z),
		zap.Float32("gate_distance", g.scene.DistanceToGate()),
	)
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	name, err := g.shots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("file", name))
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) initAudio() {
	ac := g.cfg.Audio
	if ac.Muted {
		return
	}
	if err := g.audio.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	g.audio.SetMasterVolume(float64(ac.MasterVolume))
	g.audio.SetMusicVolume(float64(ac.MusicVolume))
	g.audio.SetSFXVolume(float64(ac.SFXVolume))

	for e, path := range map[audio.Effect]string{
		audio.Splash: ac.SplashSound,
		audio.Hit:    ac.HitSound,
		audio.Finish: ac.FinishSound,
	} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err == nil {
			err = g.audio.LoadEffect(e, data)
		}
		if err != nil {
			g.log.Warn("sound not loaded, using a tone", zap.String("file", path), zap.Error(err))
		}
	}

	if ac.MusicFile != "" {
		data, err := os.ReadFile(ac.MusicFile)
		if err == nil {
			err = g.audio.PlayMusic(data)
		}
		if err != nil {
			g.log.Warn("music not started", zap.String("file", ac.MusicFile), zap.Error(err))
		}
	}
}

// BallResolved plays the sound of a ball leaving play.
func (g *Game) BallResolved(b *ball.Ball) {
	e := audio.Splash
	if b.Outcome == ball.Hit {
		e = audio.Hit
	}
	g.play(e)
}

// GateFinished plays the level complete sound.
func (g *Game) GateFinished() {
	g.play(audio.Finish)
}

func (g *Game) play(e audio.Effect) {
	if !g.audio.IsInitialized() {
		return
	}
	if err := g.audio.Play(e); err != nil {
		g.log.Debug("sound failed", zap.Error(err))
	}
}

// Package config handles game configuration loading and management.
package config

import (
	"time"

	"github.com/Faultbox/avoid-balls/internal/game/ball"
	"github.com/Faultbox/avoid-balls/internal/game/nature"
	"github.com/Faultbox/avoid-balls/internal/game/walker"
	"github.com/Faultbox/avoid-balls/internal/game/world"
	"github.com/Faultbox/avoid-balls/pkg/heightfield"
)

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
	Terrain  TerrainConfig  `yaml:"terrain"`
	Nature   nature.Config  `yaml:"nature"`
	Ball     ball.Config    `yaml:"ball"`
	Walker   walker.Config  `yaml:"walker"`
	Game     GameConfig     `yaml:"game"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FPSLimit   int     `yaml:"fps_limit"`
	FOV        float32 `yaml:"fov"`
	MSAA       int     `yaml:"msaa"`
}

// AudioConfig holds audio settings. Sound files are WAV; effects without
// one are synthesized.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	MusicVolume  float32 `yaml:"music_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	MusicFile    string  `yaml:"music_file"`
	SplashSound  string  `yaml:"splash_sound"`
	HitSound     string  `yaml:"hit_sound"`
	FinishSound  string  `yaml:"finish_sound"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

// TerrainConfig holds heightfield sources and terrain geometry.
type TerrainConfig struct {
	Dir      string `yaml:"dir"`       // Catalog of x_y tile directories
	TileSize int    `yaml:"tile_size"` // Samples per grid side
	Output   string `yaml:"output"`    // Where built heightfields are written

	world.AssemblyConfig `yaml:",inline"`

	Remote RemoteConfig `yaml:"remote"`
}

// RemoteConfig selects an elevation tile service block used when the
// catalog is empty.
type RemoteConfig struct {
	Enabled bool          `yaml:"enabled"`
	URL     string        `yaml:"url"`
	Z       int           `yaml:"z"`
	X       int           `yaml:"x"`
	Y       int           `yaml:"y"`
	Timeout time.Duration `yaml:"timeout"`
}

// GameConfig holds gameplay timing.
type GameConfig struct {
	Seed         int64         `yaml:"seed"` // 0 seeds from the clock
	StartDelay   time.Duration `yaml:"start_delay"`
	FadeDuration time.Duration `yaml:"fade_duration"`
	ShootMin     time.Duration `yaml:"shoot_min"`
	ShootMax     time.Duration `yaml:"shoot_max"`
	ShowFPS      bool          `yaml:"show_fps"`
	Debug        bool          `yaml:"debug"` // Draw collision bodies
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FPSLimit:   0,
			FOV:        90,
			MSAA:       4,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			MusicVolume:  0.7,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Logging: LoggingConfig{
			Level:      "info",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
		Terrain: TerrainConfig{
			Dir:            "terrains",
			TileSize:       heightfield.DefaultTileSize,
			Output:         "",
			AssemblyConfig: world.DefaultAssemblyConfig(),
			Remote: RemoteConfig{
				URL:     heightfield.DefaultTileURL,
				Z:       14,
				X:       14515,
				Y:       6463,
				Timeout: 30 * time.Second,
			},
		},
		Nature: nature.DefaultConfig(),
		Ball:   ball.DefaultConfig(),
		Walker: walker.DefaultConfig(),
		Game: GameConfig{
			Seed:         0,
			StartDelay:   2 * time.Second,
			FadeDuration: 2 * time.Second,
			ShootMin:     100 * time.Millisecond,
			ShootMax:     time.Second,
		},
	}
}

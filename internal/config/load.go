package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a setting outside its allowed range.
var ErrInvalid = errors.New("invalid setting")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the game cannot run with.
func (c *Config) Validate() error {
	if c.Terrain.TileSize < 2 {
		return fmt.Errorf("terrain.tile_size %d: %w", c.Terrain.TileSize, ErrInvalid)
	}
	if c.Terrain.Height <= 0 {
		return fmt.Errorf("terrain.height_scale %v: %w", c.Terrain.Height, ErrInvalid)
	}
	if c.Game.ShootMin <= 0 || c.Game.ShootMax < c.Game.ShootMin {
		return fmt.Errorf("game.shoot_min %v / shoot_max %v: %w", c.Game.ShootMin, c.Game.ShootMax, ErrInvalid)
	}
	if c.Ball.Duration <= 0 {
		return fmt.Errorf("ball.duration %v: %w", c.Ball.Duration, ErrInvalid)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "AvoidBalls")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "AvoidBalls")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "avoid-balls")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "avoid-balls")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

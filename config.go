package arena

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds the world and executable settings.
type Config struct {
	World   WorldConfig   `toml:"world"`
	Pickups PickupConfig  `toml:"pickups"`
	Window  WindowConfig  `toml:"window"`
	Audio   AudioConfig   `toml:"audio"`
	Logging LoggingConfig `toml:"logging"`
}

// WorldConfig sizes the battlefield and the view scrolling over it.
type WorldConfig struct {
	Width          float64 `toml:"width"`
	Height         float64 `toml:"height"` // total scrolling height of the battlefield
	ViewWidth      float64 `toml:"view_width"`
	ViewHeight     float64 `toml:"view_height"`
	SpawnMargin    float64 `toml:"spawn_margin"`    // extra height above the view where enemies spawn
	BorderDistance float64 `toml:"border_distance"` // avatars stay this far inside the view
	AvatarScale    float64 `toml:"avatar_scale"`
	ScrollSpeed    float64 `toml:"scroll_speed"` // camera y velocity while the game runs
	TablesPath     string  `toml:"tables_path"`  // empty uses the embedded tables
}

// PickupConfig sets the number of pickup slots and how often empty slots
// are refilled.
type PickupConfig struct {
	Slots           int           `toml:"slots"`
	RespawnInterval time.Duration `toml:"respawn_interval"`
}

// WindowConfig is the executable's window and tick rate.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	TPS    int    `toml:"tps"`
}

// AudioConfig controls the speaker output of sound effects.
type AudioConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate int     `toml:"sample_rate"`
	Volume     float64 `toml:"volume"`  // base-2 exponent, 0 = unchanged
	Falloff    float64 `toml:"falloff"` // distance at which sounds drop by one volume step
}

// LoggingConfig selects the executable's log level and encoding.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// LoadConfig reads a TOML file over the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		World: WorldConfig{
			Width:          1920,
			Height:         1088,
			ViewWidth:      1920,
			ViewHeight:     1088,
			SpawnMargin:    100,
			BorderDistance: 40,
			AvatarScale:    3,
		},
		Pickups: PickupConfig{
			Slots:           5,
			RespawnInterval: 3 * time.Second,
		},
		Window: WindowConfig{
			Title:  "Arena",
			Width:  960,
			Height: 544,
			TPS:    60,
		},
		Audio: AudioConfig{
			Enabled:    true,
			SampleRate: 44100,
			Volume:     0,
			Falloff:    400,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func (c *Config) validate() error {
	w := c.World
	if w.Width <= 0 || w.Height <= 0 || w.ViewWidth <= 0 || w.ViewHeight <= 0 {
		return fmt.Errorf("world dimensions must be positive")
	}
	if c.Pickups.Slots < 0 {
		return fmt.Errorf("pickup slots must not be negative")
	}
	if c.Pickups.RespawnInterval < 0 {
		return fmt.Errorf("pickup respawn interval must not be negative")
	}
	return nil
}

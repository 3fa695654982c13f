package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/toolbox/engine/core"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Application ApplicationConfig `toml:"application"`
	Log         LogConfig         `toml:"log"`
	Timers      []TimerPreset     `toml:"timers"`
	Stopwatches []StopwatchPreset `toml:"stopwatches"`
}

type ApplicationConfig struct {
	// The application name used in windowing, if applicable.
	Name string `toml:"name"`
	// Window starting width, if applicable.
	Width uint32 `toml:"width"`
	// Window starting height, if applicable.
	Height uint32 `toml:"height"`
	// Frames per second the loop is limited to. 0 disables limiting.
	FrameRate int `toml:"frame_rate"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// TimerPreset describes a timer created when the config is applied.
type TimerPreset struct {
	ID               string  `toml:"id"`
	Duration         float64 `toml:"duration"`
	StartImmediately bool    `toml:"start_immediately"`
}

// StopwatchPreset describes a stopwatch created when the config is applied.
type StopwatchPreset struct {
	ID               string `toml:"id"`
	StartImmediately bool   `toml:"start_immediately"`
}

func Default() *Config {
	return &Config{
		Application: ApplicationConfig{
			Name:      "Toolbox",
			Width:     1280,
			Height:    720,
			FrameRate: 60,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes TOML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Application.FrameRate < 0 {
		return fmt.Errorf("%w: frame_rate must not be negative", ErrInvalidConfig)
	}
	if _, err := core.ParseLogLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	seen := make(map[string]bool, len(c.Timers))
	for _, t := range c.Timers {
		if t.ID == "" {
			return fmt.Errorf("%w: timer without id", ErrInvalidConfig)
		}
		if t.Duration < 0 {
			return fmt.Errorf("%w: timer %q has a negative duration", ErrInvalidConfig, t.ID)
		}
		if seen[t.ID] {
			return fmt.Errorf("%w: timer %q declared twice", ErrInvalidConfig, t.ID)
		}
		seen[t.ID] = true
	}

	seen = make(map[string]bool, len(c.Stopwatches))
	for _, s := range c.Stopwatches {
		if s.ID == "" {
			return fmt.Errorf("%w: stopwatch without id", ErrInvalidConfig)
		}
		if seen[s.ID] {
			return fmt.Errorf("%w: stopwatch %q declared twice", ErrInvalidConfig, s.ID)
		}
		seen[s.ID] = true
	}
	return nil
}

// LogLevel returns the parsed log level. Validate has already checked it.
func (c *Config) LogLevel() core.LogLevel {
	level, _ := core.ParseLogLevel(c.Log.Level)
	return level
}

// FrameSeconds is the target frame length, 0 when frames are not limited.
func (c *Config) FrameSeconds() float64 {
	if c.Application.FrameRate <= 0 {
		return 0
	}
	return 1.0 / float64(c.Application.FrameRate)
}

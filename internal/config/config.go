package config

import (
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	AllowedOrigins string `envconfig:"ALLOWED_ORIGINS" default:"localhost:5173,localhost:3000"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	Editor         Editor `envconfig:"EDITOR"`
}

// Editor holds the interaction tunables of the linear point editor and the
// binding resolver. Distances are in screen pixels unless noted.
type Editor struct {
	GridSize             float64 `envconfig:"GRID_SIZE" default:"0"`
	PointHandleSize      float64 `envconfig:"POINT_HANDLE_SIZE" default:"10"`
	LineConfirmThreshold float64 `envconfig:"LINE_CONFIRM_THRESHOLD" default:"8"`
	DragThreshold        float64 `envconfig:"DRAG_THRESHOLD" default:"10"`
	ShiftLockingAngle    float64 `envconfig:"SHIFT_LOCKING_ANGLE" default:"15"` // degrees
	DuplicateNudge       float64 `envconfig:"DUPLICATE_NUDGE" default:"30"`     // scene units
	BindingEnabled       bool    `envconfig:"BINDING_ENABLED" default:"true"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into websocket origin patterns.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Level maps LogLevel onto a slog level, falling back to info.
func (c *Config) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// Package config loads simulator settings from a JSON config file with
// sensible defaults for a standard 3000×2000 mm competition table.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Run modes.
const (
	ModeLive    = "live"    // wall-clock paced ticking
	ModeInstant = "instant" // synchronous run to completion
)

// Config holds all simulator settings.
type Config struct {
	LogLevel string `json:"logLevel" mapstructure:"logLevel"`
	LogsDir  string `json:"logsDir" mapstructure:"logsDir"`

	Mode            string  `json:"mode" mapstructure:"mode"`
	SpeedMultiplier float64 `json:"speedMultiplier" mapstructure:"speedMultiplier"`
	FPS             int     `json:"fps" mapstructure:"fps"`

	Robot  RobotConfig  `json:"robot" mapstructure:"robot"`
	Table  TableConfig  `json:"table" mapstructure:"table"`
	Output OutputConfig `json:"output" mapstructure:"output"`
}

// RobotConfig holds movement parameters and completion thresholds.
type RobotConfig struct {
	LinearSpeed     float64 `json:"linearSpeed" mapstructure:"linearSpeed"`         // mm/s
	AngularSpeed    float64 `json:"angularSpeed" mapstructure:"angularSpeed"`       // deg/s
	PositionEpsilon float64 `json:"positionEpsilon" mapstructure:"positionEpsilon"` // mm
	AngleEpsilon    float64 `json:"angleEpsilon" mapstructure:"angleEpsilon"`       // deg
}

// TableConfig describes the playing field and its render scale.
type TableConfig struct {
	Width  float64 `json:"width" mapstructure:"width"`   // mm
	Height float64 `json:"height" mapstructure:"height"` // mm
	Scale  float64 `json:"scale" mapstructure:"scale"`   // pixels per mm
}

// OutputConfig holds run-artifact settings.
type OutputConfig struct {
	Dir      string `json:"dir" mapstructure:"dir"`
	Compress bool   `json:"compress" mapstructure:"compress"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("logsDir", "./logs")

	v.SetDefault("mode", ModeLive)
	v.SetDefault("speedMultiplier", 1.0)
	v.SetDefault("fps", 60)

	v.SetDefault("robot.linearSpeed", 500.0)
	v.SetDefault("robot.angularSpeed", 90.0)
	v.SetDefault("robot.positionEpsilon", 1.0)
	v.SetDefault("robot.angleEpsilon", 0.5)

	v.SetDefault("table.width", 3000.0)
	v.SetDefault("table.height", 2000.0)
	v.SetDefault("table.scale", 0.4)

	v.SetDefault("output.dir", "./out")
	v.SetDefault("output.compress", false)
}

// Load reads tablesim.cfg.json from configDir, falling back to defaults
// for every missing key. A missing file is fine; a malformed one is not.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("tablesim.cfg.json")
	v.SetConfigType("json")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// Validate rejects non-positive speeds, epsilons, multiplier, FPS and
// table dimensions, and unknown modes. Zero speeds would make the motion
// engine loop forever, so they fail here rather than at run time.
func (c *Config) Validate() error {
	positives := []struct {
		name  string
		value float64
	}{
		{"speedMultiplier", c.SpeedMultiplier},
		{"robot.linearSpeed", c.Robot.LinearSpeed},
		{"robot.angularSpeed", c.Robot.AngularSpeed},
		{"robot.positionEpsilon", c.Robot.PositionEpsilon},
		{"robot.angleEpsilon", c.Robot.AngleEpsilon},
		{"table.width", c.Table.Width},
		{"table.height", c.Table.Height},
		{"table.scale", c.Table.Scale},
	}
	for _, p := range positives {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) || p.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidConfig, p.name, p.value)
		}
	}
	if c.FPS <= 0 {
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalidConfig, c.FPS)
	}
	switch strings.ToLower(c.Mode) {
	case ModeLive, ModeInstant:
	default:
		return fmt.Errorf("%w: mode must be %q or %q, got %q", ErrInvalidConfig, ModeLive, ModeInstant, c.Mode)
	}
	return nil
}

package engine

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/plus3/zyra/internal/logging"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid engine config")

// Config tunes the simulation loop
type Config struct {
	Gravity GravityConfig `yaml:"gravity"`

	// MaxDelta caps a single Step's dt in seconds
	MaxDelta float64 `yaml:"max_delta"`
	// FixedStep switches Step to fixed updates of this many seconds; 0 disables it
	FixedStep float64 `yaml:"fixed_step"`
	// MaxSubsteps bounds the fixed updates run by one Step
	MaxSubsteps int `yaml:"max_substeps"`
	// TickRate is the number of Steps per second driven by Run
	TickRate int `yaml:"tick_rate"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	Inspector InspectorConfig `yaml:"inspector"`
}

// GravityConfig is the world acceleration in units per second squared. +Y is down.
type GravityConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// InspectorConfig controls the websocket state inspector
type InspectorConfig struct {
	// Addr is the listen address; empty disables the inspector
	Addr string `yaml:"addr"`
	// PublishEvery publishes a snapshot every N frames
	PublishEvery int `yaml:"publish_every"`
}

// DefaultConfig returns the settings used when no file is given
func DefaultConfig() Config {
	return Config{
		Gravity:     GravityConfig{X: 0, Y: 800},
		MaxDelta:    0.1,
		FixedStep:   0,
		MaxSubsteps: 5,
		TickRate:    60,
		LogLevel:    "info",
		LogFormat:   "console",
		Inspector: InspectorConfig{
			PublishEvery: 6,
		},
	}
}

// MaxTickRate keeps TickInterval at one nanosecond or more
const MaxTickRate = int(time.Second)

// TickInterval returns the wall-clock interval between Run ticks
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// Validate reports the first invalid setting, wrapping ErrInvalidConfig
func (c Config) Validate() error {
	if !finite(c.Gravity.X) || !finite(c.Gravity.Y) {
		return fmt.Errorf("%w: gravity must be finite", ErrInvalidConfig)
	}
	if !finite(c.MaxDelta) || c.MaxDelta <= 0 {
		return fmt.Errorf("%w: max_delta must be positive, got %v", ErrInvalidConfig, c.MaxDelta)
	}
	if !finite(c.FixedStep) || c.FixedStep < 0 {
		return fmt.Errorf("%w: fixed_step must not be negative, got %v", ErrInvalidConfig, c.FixedStep)
	}
	if c.FixedStep > 0 && c.MaxSubsteps < 1 {
		return fmt.Errorf("%w: max_substeps must be at least 1 with a fixed step", ErrInvalidConfig)
	}
	if c.TickRate <= 0 {
		return fmt.Errorf("%w: tick_rate must be positive, got %d", ErrInvalidConfig, c.TickRate)
	}
	if c.TickRate > MaxTickRate {
		return fmt.Errorf("%w: tick_rate must be at most %d, got %d", ErrInvalidConfig, MaxTickRate, c.TickRate)
	}
	if c.Inspector.PublishEvery < 0 {
		return fmt.Errorf("%w: inspector.publish_every must not be negative", ErrInvalidConfig)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// ParseConfig reads YAML over the defaults and validates the result.
// An empty document yields DefaultConfig.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("engine: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig reads a YAML config file
func LoadConfig(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("engine: open config: %w", err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return Config{}, fmt.Errorf("engine: %s: %w", path, err)
	}
	return cfg, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Package config provides configuration loading and access for audit runs.
package config

import (
	_ "embed"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/radian/unit"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all audit configuration parameters.
type Config struct {
	Sweep     SweepConfig     `yaml:"sweep"`
	Scale     ScaleConfig     `yaml:"scale"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// SweepConfig holds the input generation parameters.
type SweepConfig struct {
	Min         float64     `yaml:"min"`          // Grid lower bound (radians)
	Max         float64     `yaml:"max"`          // Grid upper bound (radians)
	Steps       int         `yaml:"steps"`        // Grid points including both ends
	Random      int         `yaml:"random"`       // Number of random inputs
	RandomScale float64     `yaml:"random_scale"` // Random inputs are drawn from [-RandomScale, RandomScale)
	Offset      unit.Radian `yaml:"offset"`       // Added to every grid point before normalization
}

// ScaleConfig holds the factors applied with Radian.Scale.
type ScaleConfig struct {
	Factors []float64 `yaml:"factors"`
}

// TelemetryConfig holds reporting parameters.
type TelemetryConfig struct {
	LogSamples  bool      `yaml:"log_samples"` // Log every sample via slog
	Percentiles []float64 `yaml:"percentiles"` // Quantiles reported in the summary, each in [0, 1]
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	GridStep     float64 // (Max - Min) / (Steps - 1)
	TotalSamples int     // Grid + random inputs, before boundary values
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	cfg.computeDerived()

	return cfg, nil
}

// Validate checks parameter ranges.
func (c *Config) Validate() error {
	s := c.Sweep
	finite := []struct {
		name string
		v    float64
	}{
		{"sweep.min", s.Min},
		{"sweep.max", s.Max},
		{"sweep.random_scale", s.RandomScale},
	}
	for _, f := range finite {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%s must be finite, got %v", f.name, f.v)
		}
	}
	if s.Steps < 2 {
		return fmt.Errorf("sweep.steps must be at least 2, got %d", s.Steps)
	}
	if s.Max <= s.Min {
		return fmt.Errorf("sweep.max (%v) must be greater than sweep.min (%v)", s.Max, s.Min)
	}
	if s.Random < 0 {
		return fmt.Errorf("sweep.random must not be negative, got %d", s.Random)
	}
	for _, p := range c.Telemetry.Percentiles {
		if !(p >= 0 && p <= 1) {
			return fmt.Errorf("telemetry.percentiles: %v is outside [0, 1]", p)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.GridStep = (c.Sweep.Max - c.Sweep.Min) / float64(c.Sweep.Steps-1)
	c.Derived.TotalSamples = c.Sweep.Steps + c.Sweep.Random
}

// WriteYAML saves the config to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

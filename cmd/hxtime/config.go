package main

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm/hxtime/components/timepicker"
	"github.com/pthm/hxtime/timerange"
)

// Config is the serve command configuration.
type Config struct {
	Addr     string `yaml:"addr"`
	Key      string `yaml:"key"`
	LogLevel string `yaml:"log_level"`
	Metrics  bool   `yaml:"metrics"`
	Tracing  bool   `yaml:"tracing"`

	Demo DemoConfig `yaml:"demo"`

	// Ranges overrides bounds per kind, keyed by kind name ("hour12", ...).
	Ranges map[string]RangeConfig `yaml:"ranges"`
}

// DemoConfig shapes the picker on the demo page.
type DemoConfig struct {
	Clock   string `yaml:"clock"`
	Seconds bool   `yaml:"seconds"`
	Value   string `yaml:"value"`
}

// RangeConfig is a min/max override for one kind.
type RangeConfig struct {
	Min string `yaml:"min"`
	Max string `yaml:"max"`
}

func defaultConfig() Config {
	return Config{
		Addr:     ":8080",
		LogLevel: "info",
		Metrics:  true,
		Demo: DemoConfig{
			Clock: string(timepicker.Clock24),
		},
	}
}

// loadConfig reads path over the defaults. An empty path yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %q: %w", path, err)
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.Addr == "" {
		return errors.New("config: addr is required")
	}
	switch timepicker.Clock(c.Demo.Clock) {
	case timepicker.Clock24, timepicker.Clock12:
	default:
		return fmt.Errorf("config: demo.clock must be %q or %q, got %q", timepicker.Clock24, timepicker.Clock12, c.Demo.Clock)
	}
	_, err := c.Table()
	return err
}

// Table builds the range table: the default bounds with Ranges applied.
func (c Config) Table() (*timerange.Table, error) {
	if len(c.Ranges) == 0 {
		return timerange.Default(), nil
	}

	bounds := make(map[timerange.Kind]timerange.Bounds)
	for _, k := range timerange.Kinds() {
		bounds[k] = timerange.BoundsFor(k)
	}
	for name, r := range c.Ranges {
		k, err := timerange.ParseKind(name)
		if err != nil {
			return nil, fmt.Errorf("config: ranges: %w", err)
		}
		if r.Min == "" || r.Max == "" {
			return nil, fmt.Errorf("config: ranges.%s: min and max are required", name)
		}
		b := timerange.Bounds{Min: r.Min, Max: r.Max}
		if err := b.Validate(k); err != nil {
			return nil, fmt.Errorf("config: ranges.%s: %w", name, err)
		}
		bounds[k] = b
	}
	return timerange.NewTable(bounds), nil
}

// Package config provides YAML-based configuration loading for the game:
// window, simulation pacing, tank setup and logging.
package config

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// Config is the complete configuration file.
type Config struct {
	Window     WindowConfig     `yaml:"window"`
	Simulation SimulationConfig `yaml:"simulation"`
	Tank       TankConfig       `yaml:"tank"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// WindowConfig defines the desktop window. Its size also bounds how far the
// simulation keeps driving the tank.
type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

// SimulationConfig defines tick pacing and the external driving force.
type SimulationConfig struct {
	TickRate    int   `yaml:"tick_rate"`    // Ticks per second
	DriveOffset Point `yaml:"drive_offset"` // Added to the position to form each tick's candidate
}

// Point is a pair of grid coordinates.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// TankConfig defines the tank's initial state and look.
type TankConfig struct {
	Start     Point  `yaml:"start"`
	Heading   string `yaml:"heading"`    // up, down, left, right
	BodyColor string `yaml:"body_color"` // see core.ParseColor
}

// LoggingConfig defines the log level and optional rotating file sink.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"` // Empty means stderr
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

var validHeadings = []string{"up", "down", "left", "right"}

// Validate checks every field a host or the game would otherwise trip over.
// All problems are reported together.
func (c Config) Validate() error {
	var errs []error

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Simulation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick_rate must be positive, got %d", c.Simulation.TickRate))
	}

	known := false
	for _, h := range validHeadings {
		if h == c.Tank.Heading {
			known = true
			break
		}
	}
	if !known {
		errs = append(errs, fmt.Errorf("unknown heading %q", c.Tank.Heading))
	}

	if _, err := core.ParseColor(c.Tank.BodyColor); err != nil {
		errs = append(errs, err)
	}

	if c.Logging.Level != "" {
		if _, err := log.ParseLevel(c.Logging.Level); err != nil {
			errs = append(errs, fmt.Errorf("logging level: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// RuntimeConfig derives the host-neutral runtime config for the window host.
func (c Config) RuntimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:  c.Window.Width,
		ScreenH:  c.Window.Height,
		TickRate: c.Simulation.TickRate,
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/tank.yaml
var defaultTankYAML []byte

// Default returns the built-in configuration. It matches defaults/tank.yaml
// and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "Pocket Tanks!",
			Width:  480,
			Height: 480,
		},
		Simulation: SimulationConfig{
			TickRate:    8,
			DriveOffset: Point{X: 10, Y: 10},
		},
		Tank: TankConfig{
			Start:     Point{X: 10, Y: 10},
			Heading:   "right",
			BodyColor: "orange",
		},
		Logging: LoggingConfig{
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTankYAML
}

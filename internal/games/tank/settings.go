package tank

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/pocket-tanks/internal/config"
	"github.com/vovakirdan/pocket-tanks/internal/core"
)

// Settings is everything that shapes a session's simulation. It is stored
// with each recording so a replay does not depend on the config in effect
// at replay time.
type Settings struct {
	Start       Position   `yaml:"start"`
	Heading     Direction  `yaml:"heading"`
	DriveOffset Position   `yaml:"drive_offset"`
	ArenaW      int        `yaml:"arena_w"` // Driving stops once X reaches this
	ArenaH      int        `yaml:"arena_h"` // Driving stops once Y reaches this
	BodyColor   core.Color `yaml:"body_color"`
}

// DefaultSettings mirrors config.Default().
func DefaultSettings() Settings {
	s, err := SettingsFrom(config.Default())
	if err != nil {
		panic(fmt.Sprintf("tank: default config is invalid: %v", err))
	}
	return s
}

// SettingsFrom extracts the simulation settings from a loaded config.
func SettingsFrom(cfg config.Config) (Settings, error) {
	heading, err := ParseDirection(cfg.Tank.Heading)
	if err != nil {
		return Settings{}, err
	}
	body, err := core.ParseColor(cfg.Tank.BodyColor)
	if err != nil {
		return Settings{}, fmt.Errorf("tank: body color: %w", err)
	}
	return Settings{
		Start:       Position{X: cfg.Tank.Start.X, Y: cfg.Tank.Start.Y},
		Heading:     heading,
		DriveOffset: Position{X: cfg.Simulation.DriveOffset.X, Y: cfg.Simulation.DriveOffset.Y},
		ArenaW:      cfg.Window.Width,
		ArenaH:      cfg.Window.Height,
		BodyColor:   body,
	}, nil
}

// Encode serializes the settings for a recording.
func (s Settings) Encode() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("tank: encode settings: %w", err)
	}
	return string(data), nil
}

// DecodeSettings parses settings written by Encode.
func DecodeSettings(setup string) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal([]byte(setup), &s); err != nil {
		return Settings{}, fmt.Errorf("tank: decode settings: %w", err)
	}
	return s, nil
}

// Package-level settings used by the registry factory, set by the CLI
// before games are created.
var (
	settingsMu      sync.RWMutex
	currentSettings = DefaultSettings()
)

// Configure sets the settings used by games created through the registry.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	currentSettings = s
}

// CurrentSettings returns the settings new registry games will use.
func CurrentSettings() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return currentSettings
}

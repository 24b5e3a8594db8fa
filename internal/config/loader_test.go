package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

// isolate points HOME and the working directory at empty temp dirs so the
// search path only sees files the test creates.
func isolate(t *testing.T) (home, work string) {
	t.Helper()
	home = t.TempDir()
	work = t.TempDir()
	t.Setenv("HOME", home)
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(work); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, work
}

func TestLoadEmbeddedDefault(t *testing.T) {
	isolate(t)

	cfg, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("source = %q, expected %q", src, SourceEmbedded)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML and Default() disagree:\n%+v\n%+v", cfg, Default())
	}
}

func TestLoadCustomPartialOverride(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "mine.yaml")
	writeFile(t, path, "tank:\n  heading: up\nsimulation:\n  tick_rate: 30\n")

	cfg, src, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceCustom {
		t.Errorf("source = %q, expected %q", src, SourceCustom)
	}
	if cfg.Tank.Heading != "up" || cfg.Simulation.TickRate != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.Window.Width != 480 || cfg.Tank.Start != (Point{X: 10, Y: 10}) {
		t.Errorf("unset keys should keep defaults: %+v", cfg)
	}
}

func TestLoadCustomMissingIsError(t *testing.T) {
	isolate(t)

	if _, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "tank.yaml"), "window:\n  title: local\n")

	cfg, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceLocal || cfg.Window.Title != "local" {
		t.Errorf("expected local config, got %q from %q", cfg.Window.Title, src)
	}

	writeFile(t, filepath.Join(home, ".pockettanks", "configs", "tank.yaml"), "window:\n  title: user\n")

	cfg, src, err = Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceUser || cfg.Window.Title != "user" {
		t.Errorf("user config should win over local, got %q from %q", cfg.Window.Title, src)
	}
}

func TestLoadSkipsMalformedSearchPathFile(t *testing.T) {
	_, work := isolate(t)
	writeFile(t, filepath.Join(work, "configs", "tank.yaml"), "window: [unclosed\n")

	_, src, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if src != SourceEmbedded {
		t.Errorf("malformed local file should fall through, got source %q", src)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"bad heading", func(c *Config) { c.Tank.Heading = "north" }, "unknown heading"},
		{"bad color", func(c *Config) { c.Tank.BodyColor = "plaid" }, "unknown color"},
		{"zero tick rate", func(c *Config) { c.Simulation.TickRate = 0 }, "tick_rate"},
		{"negative window", func(c *Config) { c.Window.Width = -1 }, "window size"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "logging level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, expected nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() = %v, expected error containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/.pockettanks/recordings.db")
	if err != nil {
		t.Fatalf("ExpandHome failed: %v", err)
	}
	if want := filepath.Join(home, ".pockettanks", "recordings.db"); got != want {
		t.Errorf("ExpandHome = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("relative/path"); got != "relative/path" {
		t.Errorf("ExpandHome should leave relative paths alone, got %q", got)
	}
}

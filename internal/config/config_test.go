package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded YAML drifted from DefaultConfig:\n got %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.GroundY(); got != 511*0.8 {
		t.Errorf("GroundY() = %v, expected %v", got, 511*0.8)
	}
	if got := cfg.RestY(); got != 511*0.8-24 {
		t.Errorf("RestY() = %v, expected %v", got, 511*0.8-24)
	}
	// 2000ms at 45 ticks/s is exactly 90 ticks
	if got := cfg.DwellTicks(); got != 90 {
		t.Errorf("DwellTicks() = %d, expected 90", got)
	}

	cfg.Timing.TickRate = 60
	cfg.Timing.GameOverDwellMS = 1010
	// 60.6 ticks rounds up
	if got := cfg.DwellTicks(); got != 61 {
		t.Errorf("DwellTicks() = %d, expected 61", got)
	}
}

func TestParsePartialOverride(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 2\ncollision:\n  ceiling_fatal: false\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if cfg.Physics.Gravity != 2 {
		t.Errorf("gravity = %v, expected 2", cfg.Physics.Gravity)
	}
	if cfg.Collision.CeilingFatal {
		t.Error("ceiling_fatal should be overridden to false")
	}
	if cfg.Obstacles.PipeWidth != 52 {
		t.Errorf("untouched keys should keep defaults, pipe_width = %v", cfg.Obstacles.PipeWidth)
	}
}

func TestParseEmpty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse(nil) failed: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Error("empty input should yield defaults")
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	if _, err := Parse([]byte("physics:\n  gravitee: 2\n")); err == nil {
		t.Error("unknown key should be rejected")
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("timing:\n  tick_rate: 30\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, source, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if source != path {
		t.Errorf("source = %q, expected %q", source, path)
	}
	if cfg.Timing.TickRate != 30 {
		t.Errorf("tick_rate = %d, expected 30", cfg.Timing.TickRate)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("missing custom config should fail")
	}
	if !strings.Contains(err.Error(), "config: read") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoadCustomPathMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("screen: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(path); err == nil {
		t.Fatal("malformed config should fail")
	}
}

func TestOverridesApply(t *testing.T) {
	cfg := Overrides{TickRate: 120}.Apply(DefaultConfig())
	if cfg.Timing.TickRate != 120 {
		t.Errorf("tick_rate = %d, expected 120", cfg.Timing.TickRate)
	}

	cfg = Overrides{}.Apply(DefaultConfig())
	if cfg.Timing.TickRate != 45 {
		t.Errorf("zero override should keep 45, got %d", cfg.Timing.TickRate)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero tick rate", func(c *Config) { c.Timing.TickRate = 0 }, "tick_rate"},
		{"negative tick rate", func(c *Config) { c.Timing.TickRate = -5 }, "tick_rate"},
		{"gap taller than screen", func(c *Config) { c.Obstacles.GapHeight = 600 }, "exceeds screen.height"},
		{"gap does not fit margins", func(c *Config) { c.Obstacles.GapHeight = 380 }, "does not fit above the ground"},
		{"gap smaller than avatar", func(c *Config) { c.Obstacles.GapHeight = 20 }, "must exceed avatar.height"},
		{"spacing too small", func(c *Config) { c.Obstacles.Spacing = 100 }, "spacing"},
		{"pipes moving right", func(c *Config) { c.Obstacles.VelocityX = 4 }, "velocity_x"},
		{"ground ratio out of range", func(c *Config) { c.Screen.GroundRatio = 1.5 }, "ground_ratio"},
		{"upward gravity", func(c *Config) { c.Physics.Gravity = -1 }, "gravity"},
		{"downward flap", func(c *Config) { c.Physics.FlapImpulse = 3 }, "flap_impulse"},
		{"avatar off screen", func(c *Config) { c.Avatar.X = 280 }, "avatar.x"},
		{"negative dwell", func(c *Config) { c.Timing.GameOverDwellMS = -1 }, "game_over_dwell_ms"},
		{"avatar taller than ground margin", func(c *Config) { c.Avatar.Height = 30 }, "ground is reachable"},
		{"ground margin below avatar", func(c *Config) { c.Collision.GroundMargin = 24 }, "ground is reachable"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := Validate(cfg)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateReportsAllViolations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing.TickRate = 0
	cfg.Obstacles.PipeWidth = 0

	err := Validate(cfg)
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "tick_rate") || !strings.Contains(msg, "pipe_width") {
		t.Errorf("expected both violations in %q", msg)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	def := DefaultFlappyConfig()

	if cfg.Physics != def.Physics {
		t.Errorf("physics differ: yaml=%+v hardcoded=%+v", cfg.Physics, def.Physics)
	}
	if cfg.Obstacles != def.Obstacles {
		t.Errorf("obstacles differ: yaml=%+v hardcoded=%+v", cfg.Obstacles, def.Obstacles)
	}
	if cfg.Player != def.Player {
		t.Errorf("player differ: yaml=%+v hardcoded=%+v", cfg.Player, def.Player)
	}
	if cfg.Loop != def.Loop {
		t.Errorf("loop differ: yaml=%+v hardcoded=%+v", cfg.Loop, def.Loop)
	}
	if len(cfg.Scoring.Levels) != len(def.Scoring.Levels) {
		t.Errorf("levels differ: yaml=%d hardcoded=%d", len(cfg.Scoring.Levels), len(def.Scoring.Levels))
	}
}

func TestParsePartialOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte("physics:\n  gravity: 50\nscoring:\n  levels:\n    - number: 1\n      tier: 1\n      min_score: 0\n"))
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg.Physics.Gravity != 50 {
		t.Errorf("gravity = %f, expected 50", cfg.Physics.Gravity)
	}
	if cfg.Physics.TerminalVelocity != DefaultFlappyConfig().Physics.TerminalVelocity {
		t.Error("unset keys should keep their defaults")
	}
	if len(cfg.Scoring.Levels) != 1 {
		t.Errorf("levels should be replaced, got %d entries", len(cfg.Scoring.Levels))
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero tick rate", "loop:\n  tick_rate: 0\n"},
		{"upward gravity jump", "physics:\n  jump_velocity: 5\n"},
		{"zero obstacle width", "obstacles:\n  width: 0\n"},
		{"inverted gaps", "obstacles:\n  min_gap_size: 10\n  max_gap_size: 5\n"},
		{"malformed", "physics: ["},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.yaml)); err == nil {
				t.Error("Parse() should fail")
			}
		})
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("player:\n  x: 20\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Player.X != 20 {
		t.Errorf("player.x = %f, expected 20", cfg.Player.X)
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("Load(missing) error = %v, expected read failure", err)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := DefaultFlappyConfig()

	ApplyPreset(&cfg, DifficultyHard)
	if !cfg.Difficulty.Enabled || cfg.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset = %+v", cfg.Difficulty)
	}

	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}

	if _, err := ParsePreset("brutal"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
}

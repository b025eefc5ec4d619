// Package config provides YAML-based game configuration loading and
// difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all tunables of the game.
// Distances are in screen cells, times in seconds, speeds in cells/second.
type FlappyConfig struct {
	Loop       LoopConfig       `yaml:"loop"`
	Physics    FlappyPhysics    `yaml:"physics"`
	Player     FlappyPlayer     `yaml:"player"`
	Obstacles  FlappyObstacles  `yaml:"obstacles"`
	Scoring    ScoringConfig    `yaml:"scoring"`
	Effects    EffectsConfig    `yaml:"effects"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// LoopConfig defines the fixed update cadence.
type LoopConfig struct {
	TickRate      int `yaml:"tick_rate"`       // Fixed updates per second
	MaxFrameDelta int `yaml:"max_frame_delta"` // Cap on one frame's delta, milliseconds
}

// MaxFrame returns the frame delta cap as a duration.
func (l LoopConfig) MaxFrame() time.Duration {
	return time.Duration(l.MaxFrameDelta) * time.Millisecond
}

// FlappyPhysics defines physics parameters.
type FlappyPhysics struct {
	Gravity          float64 `yaml:"gravity"`           // Downward acceleration
	JumpVelocity     float64 `yaml:"jump_velocity"`     // Velocity set by a flap (negative = up)
	TerminalVelocity float64 `yaml:"terminal_velocity"` // Maximum fall speed
	ScrollSpeed      float64 `yaml:"scroll_speed"`      // Obstacle speed magnitude, moves leftward
	IdleThreshold    float64 `yaml:"idle_threshold"`    // |velocity| below this counts as idle
}

// FlappyPlayer defines player parameters.
type FlappyPlayer struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	StartY float64 `yaml:"start_y"` // Fraction of the play area height
}

// FlappyObstacles defines obstacle parameters.
type FlappyObstacles struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"` // Minimum half height
	MinGapSize    int     `yaml:"min_gap_size"`
	MaxGapSize    int     `yaml:"max_gap_size"`
	TopMargin     int     `yaml:"top_margin"`
	BottomMargin  int     `yaml:"bottom_margin"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	PoolSize      int     `yaml:"pool_size"` // Soft cap on pooled obstacles (halves, not pairs)
}

// ScoringConfig defines points and level progression.
type ScoringConfig struct {
	PointsPerPair int     `yaml:"points_per_pair"`
	Levels        []Level `yaml:"levels"`
}

// Level is one step of score-based progression.
type Level struct {
	Number   int `yaml:"number"`
	Tier     int `yaml:"tier"`      // Cosmetic tag stamped on newly spawned obstacles
	MinScore int `yaml:"min_score"` // Score at which this level starts
}

// EffectsConfig defines purely visual parameters.
type EffectsConfig struct {
	ParticlesPerScore int     `yaml:"particles_per_score"`
	ParticleLifetime  float64 `yaml:"particle_lifetime"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Multiplier added to speed at max difficulty
	GapReduction      int     `yaml:"gap_reduction"`      // Gap size reduction at max difficulty
	IntervalReduction float64 `yaml:"interval_reduction"` // Spawn interval reduction at max difficulty, seconds
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI value to a preset. Empty input keeps the config default.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *FlappyConfig, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}

// Validate rejects configurations the game cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error
	if c.Loop.TickRate <= 0 {
		errs = append(errs, errors.New("loop.tick_rate must be positive"))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, errors.New("player width and height must be positive"))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 {
		errs = append(errs, errors.New("obstacle width and height must be positive"))
	}
	if c.Obstacles.MinGapSize <= 0 || c.Obstacles.MaxGapSize < c.Obstacles.MinGapSize {
		errs = append(errs, errors.New("obstacle gap sizes must satisfy 0 < min_gap_size <= max_gap_size"))
	}
	if c.Obstacles.SpawnInterval <= 0 {
		errs = append(errs, errors.New("obstacles.spawn_interval must be positive"))
	}
	if c.Physics.TerminalVelocity <= 0 {
		errs = append(errs, errors.New("physics.terminal_velocity must be positive"))
	}
	if c.Physics.JumpVelocity >= 0 {
		errs = append(errs, errors.New("physics.jump_velocity must be negative (upward)"))
	}
	if c.Physics.ScrollSpeed <= 0 {
		errs = append(errs, errors.New("physics.scroll_speed must be positive"))
	}
	if c.Scoring.PointsPerPair <= 0 {
		errs = append(errs, errors.New("scoring.points_per_pair must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

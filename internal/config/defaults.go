package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the hardcoded default configuration.
// It mirrors defaults/flappy.yaml and is used when the embedded file fails to parse.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Loop: LoopConfig{
			TickRate:      60,
			MaxFrameDelta: 66,
		},
		Physics: FlappyPhysics{
			Gravity:          120,
			JumpVelocity:     -32,
			TerminalVelocity: 40,
			ScrollSpeed:      24,
			IdleThreshold:    2,
		},
		Player: FlappyPlayer{
			X:      10,
			Width:  2,
			Height: 2,
			StartY: 0.4,
		},
		Obstacles: FlappyObstacles{
			Width:         5,
			Height:        40,
			MinGapSize:    8,
			MaxGapSize:    12,
			TopMargin:     3,
			BottomMargin:  3,
			SpawnInterval: 1.6,
			PoolSize:      8,
		},
		Scoring: ScoringConfig{
			PointsPerPair: 1,
			Levels: []Level{
				{Number: 1, Tier: 1, MinScore: 0},
				{Number: 2, Tier: 2, MinScore: 10},
				{Number: 3, Tier: 2, MinScore: 25},
			},
		},
		Effects: EffectsConfig{
			ParticlesPerScore: 6,
			ParticleLifetime:  0.6,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   0.8,
				GapReduction:      4,
				IntervalReduction: 0.4,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}

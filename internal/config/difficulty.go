package config

import "math"

// Floors that keep the game playable at maximum difficulty.
const (
	minGapSize       = 4
	minSpawnInterval = 0.5
)

// DifficultyManager calculates dynamic game parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the scroll speed based on difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	// Speed increases from base to base * (1 + speedMultiplier)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize returns the largest gap allowed at the current difficulty level.
func (d *DifficultyManager) GapSize(baseGap int, score int, ticks int) int {
	level := d.Level(score, ticks)
	reduction := int(level * float64(d.cfg.Scaling.GapReduction))
	return max(baseGap-reduction, minGapSize)
}

// SpawnInterval returns the time between obstacle pairs at the current difficulty level.
func (d *DifficultyManager) SpawnInterval(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return math.Max(base-level*d.cfg.Scaling.IntervalReduction, minSpawnInterval)
}

// LevelForScore returns the highest level whose threshold score has been reached.
// With no levels configured it returns level 1, tier 1.
func LevelForScore(score int, levels []Level) Level {
	current := Level{Number: 1, Tier: 1}
	found := false
	for _, l := range levels {
		if score < l.MinScore {
			continue
		}
		if !found || l.MinScore >= current.MinScore {
			current = l
			found = true
		}
	}
	return current
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}

package config

import "testing"

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 50},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{25, 0.6},
		{50, 1.0},
		{500, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %f, expected %f", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyDisabledStaysAtInitial(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
	})
	if got := d.Level(100, 100); got != 0.5 {
		t.Errorf("Level() = %f, expected initial 0.5", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling: ScalingConfig{
			SpeedMultiplier:   1.0,
			GapReduction:      20,
			IntervalReduction: 5,
		},
	})

	if got := d.Speed(10, 10, 0); got != 20 {
		t.Errorf("Speed at max = %f, expected 20", got)
	}
	if got := d.GapSize(12, 10, 0); got != minGapSize {
		t.Errorf("GapSize at max = %d, expected floor %d", got, minGapSize)
	}
	if got := d.SpawnInterval(1.6, 10, 0); got != minSpawnInterval {
		t.Errorf("SpawnInterval at max = %f, expected floor %f", got, minSpawnInterval)
	}
	if got := d.SpawnInterval(1.6, 0, 0); got != 1.6 {
		t.Errorf("SpawnInterval at start = %f, expected 1.6", got)
	}
}

func TestLevelForScore(t *testing.T) {
	levels := []Level{
		{Number: 1, Tier: 1, MinScore: 0},
		{Number: 2, Tier: 2, MinScore: 10},
		{Number: 3, Tier: 2, MinScore: 25},
	}

	tests := []struct {
		score  int
		number int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{24, 2},
		{25, 3},
		{1000, 3},
	}
	for _, tc := range tests {
		if got := LevelForScore(tc.score, levels); got.Number != tc.number {
			t.Errorf("LevelForScore(%d) = level %d, expected %d", tc.score, got.Number, tc.number)
		}
	}

	if got := LevelForScore(5, nil); got.Number != 1 || got.Tier != 1 {
		t.Errorf("LevelForScore with no levels = %+v, expected level 1 tier 1", got)
	}
}

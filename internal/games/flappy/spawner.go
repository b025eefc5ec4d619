package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Spawner places obstacle pairs on a timer with a seeded RNG, so a run is
// reproducible from its seed and inputs.
type Spawner struct {
	cfg        *config.FlappyConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	timer      float64 // Seconds until the next pair
	spawned    int
}

// NewSpawner creates a spawner with the given RNG seed.
func NewSpawner(cfg *config.FlappyConfig, diff *config.DifficultyManager, seed int64) *Spawner {
	s := &Spawner{cfg: cfg, difficulty: diff}
	s.Reset(seed)
	return s
}

// Reset reseeds the RNG and schedules the first pair immediately.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.timer = 0
	s.spawned = 0
}

// Spawned returns how many pairs were spawned since the last reset.
func (s *Spawner) Spawned() int {
	return s.spawned
}

// Update counts down dt seconds and spawns a pair at x = screenW when due.
// floorY bounds the gap; tier is stamped on the new obstacles.
func (s *Spawner) Update(dt float64, pool *Pool, screenW, floorY float64, score, ticks, tier int) bool {
	s.timer -= dt
	if s.timer > 0 {
		return false
	}
	s.timer += s.difficulty.SpawnInterval(s.cfg.Obstacles.SpawnInterval, score, ticks)

	gap, gapY := s.nextGap(int(floorY), score, ticks)
	pool.AcquirePair(screenW, float64(gapY), float64(gap), floorY, tier)
	s.spawned++
	return true
}

// nextGap picks a gap height and its top row.
func (s *Spawner) nextGap(floorY, score, ticks int) (gap, gapY int) {
	// Largest gap allowed now, shrinking with difficulty
	minGap := s.cfg.Obstacles.MinGapSize
	currentGap := max(s.difficulty.GapSize(s.cfg.Obstacles.MaxGapSize, score, ticks), minGap)

	gap = minGap
	if currentGap > minGap {
		gap = minGap + s.rng.Intn(currentGap-minGap+1)
	}

	minGapY := s.cfg.Obstacles.TopMargin
	maxGapY := floorY - s.cfg.Obstacles.BottomMargin - gap
	if maxGapY < minGapY {
		maxGapY = minGapY // Edge case for very small screens
	}

	gapY = minGapY
	if maxGapY > minGapY {
		gapY = minGapY + s.rng.Intn(maxGapY-minGapY+1)
	}
	return gap, gapY
}

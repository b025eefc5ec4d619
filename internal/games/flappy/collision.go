package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Overlaps is the strict AABB test: boxes that only share an edge do not collide.
func Overlaps(a, b core.Box) bool {
	return a.Intersects(b)
}

// HasPassed reports whether the player's left edge is beyond the obstacle's right edge.
// It is independent of Overlaps.
func HasPassed(player core.Box, o *Obstacle) bool {
	return player.X > o.x+o.w
}

// LevelForScore returns the level reached at score.
func LevelForScore(score int, levels []config.Level) config.Level {
	return config.LevelForScore(score, levels)
}

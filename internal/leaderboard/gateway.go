// Package leaderboard defines the capability the game needs from a
// leaderboard backend and the adapters that provide it.
package leaderboard

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOffline is returned when no leaderboard backend is reachable.
	ErrOffline = errors.New("leaderboard: offline")
	// ErrUnauthenticated is returned when a call needs an identity and there is none.
	ErrUnauthenticated = errors.New("leaderboard: no player identity")
)

// Gateway is the leaderboard backend as seen by the game.
// All calls are best effort; the game stays playable when they fail.
type Gateway interface {
	SubmitRun(ctx context.Context, s RunSummary) error
	TopN(ctx context.Context, n int) ([]Standing, error)
	// UserRank returns nil, nil when the current player has no runs yet.
	UserRank(ctx context.Context) (*Rank, error)
}

// RunSummary is the immutable record of one completed run.
type RunSummary struct {
	ID               uuid.UUID
	Player           string
	Score            int
	LevelReached     int
	DurationMs       float64
	TotalJumps       int
	MaxHeightReached float64
	EndedAt          time.Time
}

// NewRunSummary builds the summary of a run that just ended.
func NewRunSummary(player string, score, level int, durationMs float64, jumps int, maxHeight float64) RunSummary {
	return RunSummary{
		ID:               uuid.New(),
		Player:           player,
		Score:            score,
		LevelReached:     level,
		DurationMs:       durationMs,
		TotalJumps:       jumps,
		MaxHeightReached: maxHeight,
		EndedAt:          time.Now(),
	}
}

// Standing is one row of the ranked leaderboard.
type Standing struct {
	Rank         int
	Player       string
	Score        int
	LevelReached int
	Runs         int
	AchievedAt   time.Time
}

// Rank is the current player's position on the leaderboard.
type Rank struct {
	Rank      int
	Player    string
	BestScore int
	Runs      int
	Total     int // Ranked players
}

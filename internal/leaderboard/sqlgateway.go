package leaderboard

import (
	"context"
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// RunStore is the persistence the SQL gateway needs.
type RunStore interface {
	SaveRun(ctx context.Context, run storage.Run) error
	TopPlayers(ctx context.Context, limit int) ([]storage.PlayerBest, error)
	PlayerRank(ctx context.Context, player string) (*storage.PlayerRank, error)
}

// SQLGateway is a leaderboard backed by the local sqlite store.
// The identity is fixed at construction: the OS user, --name, or the SSH user.
type SQLGateway struct {
	store  RunStore
	player string
}

var _ Gateway = (*SQLGateway)(nil)

// NewSQLGateway creates a gateway submitting runs as player.
func NewSQLGateway(store RunStore, player string) *SQLGateway {
	return &SQLGateway{store: store, player: player}
}

// Player returns the identity runs are submitted under.
func (g *SQLGateway) Player() string {
	return g.player
}

// SubmitRun stores a finished run under the gateway's identity.
func (g *SQLGateway) SubmitRun(ctx context.Context, s RunSummary) error {
	if g.player == "" {
		return ErrUnauthenticated
	}
	err := g.store.SaveRun(ctx, storage.Run{
		ID:         s.ID.String(),
		Player:     g.player,
		Score:      s.Score,
		Level:      s.LevelReached,
		DurationMs: int64(s.DurationMs),
		Jumps:      s.TotalJumps,
		MaxHeight:  s.MaxHeightReached,
		CreatedAt:  s.EndedAt,
	})
	if err != nil {
		return fmt.Errorf("leaderboard: submit run: %w", err)
	}
	return nil
}

// TopN returns the best n players, one row per player.
func (g *SQLGateway) TopN(ctx context.Context, n int) ([]Standing, error) {
	best, err := g.store.TopPlayers(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top %d: %w", n, err)
	}
	standings := make([]Standing, 0, len(best))
	for i, b := range best {
		standings = append(standings, Standing{
			Rank:         i + 1,
			Player:       b.Player,
			Score:        b.BestScore,
			LevelReached: b.BestLevel,
			Runs:         b.Runs,
			AchievedAt:   b.AchievedAt,
		})
	}
	return standings, nil
}

// UserRank returns the gateway identity's rank, or nil if it has no runs.
func (g *SQLGateway) UserRank(ctx context.Context) (*Rank, error) {
	if g.player == "" {
		return nil, ErrUnauthenticated
	}
	r, err := g.store.PlayerRank(ctx, g.player)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: rank of %s: %w", g.player, err)
	}
	if r == nil {
		return nil, nil
	}
	return &Rank{
		Rank:      r.Rank,
		Player:    g.player,
		BestScore: r.BestScore,
		Runs:      r.Runs,
		Total:     r.Total,
	}, nil
}

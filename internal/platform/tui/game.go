package tui

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// statusRows is the number of terminal rows below the play area.
const statusRows = 1

// GameConfig describes the session for one player.
type GameConfig struct {
	Game    config.FlappyConfig
	Runtime core.RuntimeConfig // Terminal size, including the status bar
	Player  string             // Leaderboard identity; empty plays anonymously
	Store   *storage.Store     // nil plays without persistence
	Sounds  audio.Sounds
	Sprites string // Sprite sheet path; empty uses the embedded sheet
	Logger  *log.Logger
}

// NewGame wires a flappy session to its collaborators and starts loading
// sprites in the background. The session stays in Loading until they are in.
func NewGame(ctx context.Context, cfg GameConfig) *flappy.Session {
	loader := assets.NewLoader(cfg.Logger)
	loader.Load(ctx, cfg.Sprites)

	opts := flappy.Options{
		Config:  cfg.Game,
		Runtime: playArea(cfg.Runtime),
		Player:  cfg.Player,
		Sounds:  cfg.Sounds,
		Assets:  loader,
		Logger:  cfg.Logger,
		Gateway: leaderboard.Offline{},
	}
	if cfg.Store != nil {
		opts.Best = cfg.Store
		opts.Gateway = leaderboard.NewSQLGateway(cfg.Store, cfg.Player)
	}
	return flappy.NewSession(opts)
}

// playArea returns rt with the status bar rows taken off the height.
func playArea(rt core.RuntimeConfig) core.RuntimeConfig {
	if rt.ScreenH > statusRows {
		rt.ScreenH -= statusRows
	}
	return rt
}

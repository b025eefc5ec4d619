package main

import (
	"context"
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// defaultPlayLog keeps logs off the alternate screen during play.
const defaultPlayLog = "~/.arcade/flappy.log"

var (
	flagDifficulty string
	flagSound      bool
	flagVolume     float64
	flagSprites    string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W/click - Start, flap, resume or restart
  P/Esc            - Pause
  R                - Restart (after game over)
  L                - Leaderboard (after game over)
  B                - Back to menu
  D                - Debug overlay
  Ctrl+S           - Screenshot to ~/.arcade/screenshots
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  flappy play
  flappy play --difficulty hard
  flappy play --seed 42 --name alice
  flappy play --config ./my-flappy.yaml --sprites ./my-sprites.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

// addPlayFlags registers the play flags. The root command plays by default,
// so it gets them too.
func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume, 0 to 1")
	cmd.Flags().StringVar(&flagSprites, "sprites", "", "Path to a sprite sheet YAML (default: built-in)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := play(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func play() error {
	logger, closer, err := newLogger(flagLogLevel, flagLogFile, defaultPlayLog, "flappy")
	if err != nil {
		return err
	}
	defer closer.Close()

	cfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := terminalSize()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		logger.Warn("playing without persistence", "err", err)
		// Continue without storage - game still works
		store = nil
	} else {
		defer store.Close()
	}

	sounds := audio.Open(flagSound, flagVolume, logger)
	if p, ok := sounds.(*audio.Player); ok {
		defer p.Close()
	}

	player := playerName()
	logger.Info("starting game", "player", player, "seed", flagSeed, "difficulty", flagDifficulty)

	game := tui.NewGame(context.Background(), tui.GameConfig{
		Game: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.Loop.TickRate,
			Seed:     flagSeed,
		},
		Player:  player,
		Store:   store,
		Sounds:  sounds,
		Sprites: flagSprites,
		Logger:  logger,
	})

	if err := tui.Run(game, width, height, flagFPS, tui.WithLogger(logger)); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// loadGameConfig reads the game config and applies --difficulty.
func loadGameConfig() (config.FlappyConfig, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.FlappyConfig{}, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, nil
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	def := core.DefaultConfig()
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return def.ScreenW, def.ScreenH
	}
	return w, h
}

// playerName is the leaderboard identity: --name, then the OS user.
// Empty means anonymous.
func playerName() string {
	if flagName != "" {
		return flagName
	}
	u, err := user.Current()
	if err != nil {
		return ""
	}
	return u.Username
}

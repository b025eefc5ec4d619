package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/leaderboard"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Browse the leaderboard",
	Long: `Show every player's best run and your own rank.

Examples:
  flappy board
  flappy board --name alice
  flappy board --db ./runs.db`,
	Args: cobra.NoArgs,
	Run:  runBoard,
}

func runBoard(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}

	width, height := terminalSize()
	runErr := tui.RunBoard(leaderboard.NewSQLGateway(store, playerName()), width, height)

	// Close store before potential exit
	store.Close()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

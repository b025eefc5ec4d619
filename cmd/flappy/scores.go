package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs and totals",
	Long: `Display the top runs from every player, followed by totals.

Examples:
  flappy scores
  flappy scores --limit 25
  flappy scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run and best score")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	ctx := context.Background()
	if flagClear {
		err = clearScores(ctx, os.Stdout, store)
	} else {
		err = printScores(ctx, os.Stdout, store, flagLimit)
	}
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func clearScores(ctx context.Context, w io.Writer, store *storage.Store) error {
	if err := store.ClearRuns(ctx); err != nil {
		return err
	}
	fmt.Fprintln(w, "Cleared all runs and best scores.")
	return nil
}

// printScores writes the top runs table followed by the best score and totals.
func printScores(ctx context.Context, w io.Writer, store *storage.Store, limit int) error {
	runs, err := store.TopRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintln(w, "High Scores - Flappy")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'flappy play' to set the first high score!")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %-5s  %-6s  %s\n", "Rank", "Player", "Score", "Level", "Jumps", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-6s  %-5s  %-6s  %s\n", "----", "------", "-----", "-----", "-----", "----")
	for i, r := range runs {
		fmt.Fprintf(w, "  %-4d  %-16s  %-6d  %-5d  %-6d  %s\n",
			i+1, r.Player, r.Score, r.Level, r.Jumps, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	best, err := store.HighScore(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Best: %d", best)

	// Totals are best effort
	if stats, err := store.GetStats(ctx); err == nil {
		fmt.Fprintf(w, "   Runs: %d   Players: %d   Avg: %.1f   Jumps: %d",
			stats.Runs, stats.Players, stats.AvgScore, stats.TotalJumps)
	}
	fmt.Fprintln(w)
	return nil
}

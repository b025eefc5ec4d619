// flappy is a Flappy Bird clone for the terminal.
//
// Usage:
//
//	flappy                 - Play (same as "flappy play")
//	flappy play            - Play in this terminal
//	flappy serve           - Start SSH server for remote play
//	flappy board           - Browse the leaderboard
//	flappy scores          - Show the best runs and totals
//	flappy config          - Print the default game config
//
// Global flags:
//
//	--fps <rate>     - Display frame rate (default: 60)
//	--seed <value>   - RNG seed for reproducible runs
//	--db <path>      - Runs database (default: ~/.arcade/flappy.db)
//	--name <player>  - Leaderboard name (default: OS user)
//
// FLAPPY_DB, FLAPPY_NAME and FLAPPY_CONFIG set flag defaults and may live
// in a .env file in the working directory.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagName     string
	flagLogLevel string
	flagLogFile  string
	flagConfig   string
)

// envFlags maps flags to the environment variables that default them.
var envFlags = map[string]string{
	"db":     "FLAPPY_DB",
	"name":   "FLAPPY_NAME",
	"config": "FLAPPY_CONFIG",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - flap through the pipes in your terminal",
	Long: `Flappy is a side-scrolling one-button game for the terminal.
Flap through the gaps, score a point per pipe, and climb the leaderboard.

Available commands:
  play     - Play in this terminal (default)
  serve    - Start SSH server for remote play
  board    - Browse the leaderboard
  scores   - Show the best runs and totals
  config   - Print the default game config

Examples:
  flappy
  flappy play --difficulty hard
  flappy serve --ssh :2222
  flappy board --name alice`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return applyEnv(cmd)
	},
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display frame rate")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagName, "name", "", "Leaderboard name (default: OS user)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (play default: ~/.arcade/flappy.log)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")

	addPlayFlags(rootCmd)

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv loads an optional .env and fills flags the user did not set
// from their environment variables.
func applyEnv(cmd *cobra.Command) error {
	//nolint:errcheck // .env is optional
	godotenv.Load()

	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := os.LookupEnv(env)
		if !ok || v == "" {
			continue
		}
		if err := f.Value.Set(v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}

// stonefall is a terminal stone breaker: drive a cart, shoot falling
// stones and survive every wave.
//
// Usage:
//
//	stonefall list             - List available games
//	stonefall play [game]      - Play a game (default: breaker)
//	stonefall serve            - Start SSH server for remote play
//	stonefall scores [game]    - Show high scores for a game
//	stonefall history          - Browse the run history
//	stonefall reset            - Reset saved progress
//	stonefall sim              - Run a level headless with an autopilot
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.stonefall/stonefall.db)
//	--log <path>    - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/stonefall/internal/games/breaker"
)

const defaultGameID = "breaker"

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stonefall",
	Short: "Stonefall - break falling stones in your terminal",
	Long: `Stonefall is a wave-based stone breaker for the terminal.
Large stones split into smaller ones when destroyed. Clear the wave
before any stone reaches your cart.

Available commands:
  list     - Show all available games
  play     - Play the campaign or endless mode
  serve    - Start SSH server for remote play
  scores   - View high scores
  history  - Browse finished levels
  reset    - Reset saved progress
  sim      - Run a level headless

Examples:
  stonefall play
  stonefall play breaker_endless --difficulty hard
  stonefall serve --ssh :2222
  stonefall sim --level 5 --seed 42`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.stonefall/stonefall.db", "Path to scores and runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(simCmd)
}

// openLogger returns a logger writing to --log, or a silent one. The
// terminal belongs to the game while it runs, so logs never go there.
// The returned closer must be called on exit.
func openLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "stonefall",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}

// gameArg returns the game ID from args, defaulting to the campaign.
func gameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return defaultGameID
}

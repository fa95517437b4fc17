package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stonefall/internal/config"
	"github.com/vovakirdan/stonefall/internal/core"
	"github.com/vovakirdan/stonefall/internal/games/breaker"
	breakercore "github.com/vovakirdan/stonefall/internal/games/breaker/core"
	"github.com/vovakirdan/stonefall/internal/platform/tui"
	"github.com/vovakirdan/stonefall/internal/registry"
	"github.com/vovakirdan/stonefall/internal/storage"
)

// Profile backends for local play.
const (
	profilePrefs = "prefs"
	profileDB    = "db"
)

var (
	flagConfig     string
	flagDifficulty string
	flagProfile    string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: breaker).

Controls:
  Left/Right, A/D  - Move the cart
  Space            - Fire (when auto fire is off)
  Enter            - Start the level
  1/2/3            - Buy damage, fire rate or projectile upgrades
  N                - Next level after clearing
  T                - Retry the level
  R                - Restart the campaign
  P/Esc            - Pause
  ?                - Toggle help
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Fewer, weaker stones
  normal - Default balance
  hard   - More and tougher stones
  fixed  - Waves stay at level 1 size

Progress (level, coins, upgrades) is kept in the user data directory,
or in the database with --profile db.

Examples:
  stonefall play
  stonefall play breaker_endless
  stonefall play --difficulty hard
  stonefall play --config ./my-breaker.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagProfile, "profile", profilePrefs, "Where progress is kept: prefs or db")
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := gameArg(args)

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'stonefall list' to see available games.")
		os.Exit(1)
	}
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagProfile != profilePrefs && flagProfile != profileDB {
		fmt.Fprintf(os.Stderr, "Error: unknown profile %q (use prefs or db)\n", flagProfile)
		os.Exit(1)
	}

	logger, closeLog := openLogger()
	defer closeLog()

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	breaker.SetConfigPath(flagConfig)
	breaker.SetDifficultyPreset(flagDifficulty)

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	if bg, ok := game.(*breaker.Game); ok {
		bg.SetLogger(logger)
		bg.SetProfile(localProfile(store, logger))
	}

	runErr := tui.Run(game, store, cfg, logger)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// localProfile picks the progress backend for --profile. The database
// profile needs an open store and falls back to prefs without one.
func localProfile(store *storage.Store, logger *log.Logger) breakercore.Profile {
	if flagProfile == profileDB && store != nil {
		return storage.NewSQLProfile(store, tui.LocalOwner, logger)
	}
	return storage.OpenPrefs(storage.DefaultPrefsApp, logger)
}

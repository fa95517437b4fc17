package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/stonefall/internal/config"
	"github.com/vovakirdan/stonefall/internal/games/breaker"
	"github.com/vovakirdan/stonefall/internal/platform/tui"
	"github.com/vovakirdan/stonefall/internal/registry"
	"github.com/vovakirdan/stonefall/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeGame   string
	flagServeConfig string
	flagServeDiff   string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the stonefall SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH user gets their own session and their own saved progress,
keyed by the SSH user name. High scores are shared by all users.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.stonefall/host_key

Examples:
  stonefall serve                           # Listen on :23234 with auto-generated key
  stonefall serve --ssh :2222               # Listen on port 2222
  stonefall serve --game breaker_endless    # Serve endless mode
  stonefall serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeGame, "game", defaultGameID, "Game served to every session")
	serveCmd.Flags().StringVar(&flagServeConfig, "config", "", "Path to custom game config YAML")
	serveCmd.Flags().StringVar(&flagServeDiff, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	if !registry.Exists(flagServeGame) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", flagServeGame)
		os.Exit(1)
	}
	if _, err := config.ParsePreset(flagServeDiff); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	breaker.SetConfigPath(flagServeConfig)
	breaker.SetDifficultyPreset(flagServeDiff)

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		GameID:      flagServeGame,
		NewGame:     sessionGame(flagServeGame),
		TickRate:    flagFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting stonefall SSH server on %s\n", cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// sessionGame creates gameID for one SSH user. Breaker sessions keep
// their progress in the database under the user's name.
func sessionGame(gameID string) tui.GameFactory {
	return func(owner string, store *storage.Store, logger *log.Logger) (registry.Game, error) {
		game, err := registry.Create(gameID)
		if err != nil {
			return nil, err
		}
		if bg, ok := game.(*breaker.Game); ok {
			bg.SetLogger(logger)
			if store != nil {
				bg.SetProfile(storage.NewSQLProfile(store, owner, logger))
			}
		}
		return game, nil
	}
}

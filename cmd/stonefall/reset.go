package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/stonefall/internal/platform/tui"
	"github.com/vovakirdan/stonefall/internal/registry"
	"github.com/vovakirdan/stonefall/internal/storage"
)

var (
	flagResetOwner  string
	flagResetScores bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset saved progress",
	Long: `Return a player to level 1 with no coins or upgrades.

For the local player both the user data profile and the database
profile are reset. --scores also clears every high score.

Examples:
  stonefall reset
  stonefall reset --owner alice
  stonefall reset --scores`,
	Run: runReset,
}

func init() {
	resetCmd.Flags().StringVar(&flagResetOwner, "owner", tui.LocalOwner, "Whose progress to reset (SSH user name or local)")
	resetCmd.Flags().BoolVar(&flagResetScores, "scores", false, "Also clear all high scores")
}

func runReset(_ *cobra.Command, _ []string) {
	logger, closeLog := openLogger()
	defer closeLog()

	if flagResetOwner == tui.LocalOwner {
		storage.OpenPrefs(storage.DefaultPrefsApp, logger).Reset()
		fmt.Println("Local profile reset.")
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.DeleteProfile(flagResetOwner); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Database profile of %q reset.\n", flagResetOwner)

	if !flagResetScores {
		return
	}
	for _, g := range registry.List() {
		if err := store.ClearScores(g.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
	}
	fmt.Println("High scores cleared.")
}

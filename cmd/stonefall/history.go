package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/stonefall/internal/platform/tui"
	"github.com/vovakirdan/stonefall/internal/storage"
)

var flagHistoryOwner string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse finished levels and high scores",
	Long: `Open an interactive table of recent runs and high scores.

Controls:
  Up/Down, j/k  - Scroll
  Tab           - Switch between runs and scores
  Left/Right    - Change game (scores view)
  Q/Esc         - Quit

Examples:
  stonefall history
  stonefall history --owner alice   # runs of an SSH user`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistoryOwner, "owner", tui.LocalOwner, "Whose runs to show (SSH user name or local)")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	if err := tui.RunHistory(store, flagHistoryOwner, width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
}

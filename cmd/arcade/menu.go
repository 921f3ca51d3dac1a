package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Esc leaves a game and returns to the menu. Tab opens the scoreboard,
which lasts until the arcade is closed.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --difficulty hard --log-file arcade.log`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store, err := storage.Open()
	if err != nil {
		return fmt.Errorf("cannot open scoreboard: %w", err)
	}
	defer store.Close()

	build := func(gameID string) tui.Options {
		return arcade.localOptions(gameID, "")
	}
	if err := tui.RunArcade(store, build, os.Getenv("USER")); err != nil {
		return fmt.Errorf("error running arcade: %w", err)
	}
	printScores(store)
	return nil
}

// printScores prints the session's results once the alternate screen is
// gone, since the scoreboard does not outlive the process.
func printScores(store *storage.Store) {
	if store == nil {
		return
	}
	stats, err := store.Stats()
	if err != nil || len(stats) == 0 {
		return
	}

	fmt.Println("This session:")
	fmt.Println()
	fmt.Printf("  %-16s  %5s  %10s  %4s\n", "Game", "Plays", "Best", "Wins")
	fmt.Printf("  %-16s  %5s  %10s  %4s\n", "----", "-----", "----", "----")
	for _, st := range stats {
		fmt.Printf("  %-16s  %5d  %10d  %4d\n", st.GameID, st.Plays, st.Best, st.Wins)
	}
}

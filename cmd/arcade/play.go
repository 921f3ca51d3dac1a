package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
	"github.com/vovakirdan/retro-arcade/internal/registry"
	"github.com/vovakirdan/retro-arcade/internal/storage"
)

var flagGameConfig string

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start the specified game. It opens in attract mode; press any
direction key or fire to take over.

Controls:
  Arrows/WASD  - Move
  Space/Click  - Fire, jump or drop
  P/?          - Pause (Enter resumes)
  R            - Restart
  M            - Mute
  Ctrl+S       - Screenshot to ~/.arcade/screenshots
  Esc/Q        - Quit

Difficulty options:
  easy   - Start at lowest difficulty, two extra lives
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty, one life less
  fixed  - No progression, stays at config's initial level

Examples:
  arcade play pong
  arcade play invaders --difficulty easy
  arcade play missilecommand --seed 42
  arcade play pacman --game-config ./my-pacman.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagGameConfig, "game-config", "", "Path to custom game config YAML")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w\nRun 'arcade list' to see available games", err)
	}

	store, err := storage.Open()
	if err != nil {
		arcade.logger.Warn("could not open scoreboard", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := arcade.localOptions(gameID, flagGameConfig)
	opts.Store = store
	arcade.logger.Info("starting game", "game", gameID, "seed", flagSeed)

	if err := tui.Run(game, opts); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	printScores(store)
	return nil
}

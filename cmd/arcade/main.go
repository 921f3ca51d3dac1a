// arcade is a terminal arcade that plays ten classic coin-op games on one
// fixed-timestep engine.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade demo <game>       - Run the attract mode headless and print the result
//
// Global flags:
//
//	--fps <rate>          - Redraw rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Engine config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs to a file
//	--mute                - Start without sound
//	--profile <mode>      - Write a cpu or mem profile to the working directory
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagMute       bool
	flagProfile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Retro Arcade - Classic coin-op games in your terminal",
	Long: `Retro Arcade plays ten classic coin-op games in the terminal:
Pong, Space Invaders, Pac-Man, Asteroids, Donkey Kong, Centipede,
Defender, Pitfall!, Missile Command and Adventure.

Every game starts in attract mode. Press any direction key to take over.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  demo     - Run a game's attract mode without a terminal

Examples:
  arcade list
  arcade play pacman
  arcade menu --difficulty hard
  arcade serve --ssh :2222
  arcade demo asteroids --ticks 3600`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Redraw rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to engine config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Start with sound off")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Profile mode: cpu or mem")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(demoCmd)
}

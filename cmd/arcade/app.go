package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/retro-arcade/internal/audio"
	"github.com/vovakirdan/retro-arcade/internal/config"
	"github.com/vovakirdan/retro-arcade/internal/core"
	"github.com/vovakirdan/retro-arcade/internal/engine"
	"github.com/vovakirdan/retro-arcade/internal/platform/tui"
)

// app holds what every command shares: the logger, the engine settings
// and the difficulty preset.
type app struct {
	logger  *log.Logger
	logFile *os.File
	engine  config.EngineConfig
	preset  config.DifficultyPreset
	prof    interface{ Stop() }
	sound   *audio.Player
}

var arcade app

// interactive commands own the terminal, so their logs go to the log file
// or nowhere.
var interactive = map[string]bool{
	"play": true,
	"menu": true,
}

func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	if interactive[cmd.Name()] {
		w = io.Discard
	}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("cannot open log file: %w", err)
		}
		arcade.logFile = f
		w = f
	}
	arcade.logger = log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
		Level:           level,
	})

	arcade.preset, err = config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	arcade.engine, err = config.LoadEngine(flagConfig)
	if err != nil {
		if flagConfig != "" {
			return err
		}
		arcade.logger.Warn("using default engine config", "error", err)
	}

	switch flagProfile {
	case "":
	case "cpu":
		arcade.prof = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	case "mem":
		arcade.prof = profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	default:
		return fmt.Errorf("unknown --profile %q (want cpu or mem)", flagProfile)
	}

	arcade.logger.Debug("arcade ready",
		"command", cmd.Name(),
		"tick_rate", arcade.engine.Timing.TickRate,
		"difficulty", string(arcade.preset),
	)
	return nil
}

func teardown(_ *cobra.Command, _ []string) {
	if arcade.sound != nil {
		arcade.sound.Close()
	}
	if arcade.prof != nil {
		arcade.prof.Stop()
	}
	if arcade.logFile != nil {
		arcade.logFile.Close()
	}
}

// speaker returns the shared sound player, or nil when sound is off.
func (a *app) speaker() core.Signal {
	if !a.engine.Audio.Enabled {
		return nil
	}
	if a.sound == nil {
		a.sound = audio.NewPlayer(audio.Options{
			SampleRate: a.engine.Audio.SampleRate,
			Volume:     a.engine.Audio.Volume,
			MaxVoices:  a.engine.Audio.MaxVoices,
			Muted:      flagMute,
			Logger:     a.logger,
		})
	}
	return a.sound
}

// sessionOptions merges the engine settings with one game's config.
// gamePath overrides the game config search when set.
func (a *app) sessionOptions(gameID, gamePath string, sound core.Signal) engine.Options {
	gc, err := config.LoadGame(gameID, gamePath)
	if err != nil {
		a.logger.Warn("using default game config", "game", gameID, "error", err)
	}
	config.ApplyPreset(&gc, a.preset)

	return engine.Options{
		TickRate:      a.engine.Timing.TickRate,
		MaxFrameDelta: a.engine.Timing.MaxFrameDelta(),
		HoldTicks:     a.engine.Input.HoldTicks,
		AttractIdle:   a.engine.Input.AttractIdle(),
		Seed:          flagSeed,
		Lives:         gc.Lives,
		Difficulty:    config.NewDifficultyManager(gc.Difficulty),
		Audio:         sound,
		Logger:        a.logger,
	}
}

// localOptions builds the options of a game played on this terminal.
func (a *app) localOptions(gameID, gamePath string) tui.Options {
	return tui.Options{
		FPS:     flagFPS,
		Session: a.sessionOptions(gameID, gamePath, a.speaker()),
		Player:  os.Getenv("USER"),
		Logger:  a.logger,
	}
}

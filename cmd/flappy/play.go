package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
)

var flagMute bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start the game in the terminal.

Controls:
  Space/Up/W   - Flap (starts the game on the welcome screen)
  Q/Esc/Ctrl+C - Quit

Logs go to --log-file so they do not disturb the screen.

Examples:
  flappy play
  flappy play --seed 7
  flappy play --assets ./assets
  flappy play --mute --fps 30`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound")
}

func runPlay(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger := newLogger(logFile)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	bundle, err := assets.Load(flagAssets, logger)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		TermW: width,
		TermH: height,
		Seed:  seed(),
	}

	machine, err := flappy.NewMachine(cfg, rt.Seed, flappy.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info("starting", "seed", rt.Seed, "term", fmt.Sprintf("%dx%d", width, height))

	opts := tui.Options{Logger: logger}
	if !flagMute {
		player := audio.NewPlayer(bundle, audio.WithLogger(logger))
		// Sound is optional; Init logs the failure
		if initErr := player.Init(); initErr == nil {
			defer player.Close()
			opts.Player = player
		}
	}

	if err := tui.Run(machine, bundle, rt, opts); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

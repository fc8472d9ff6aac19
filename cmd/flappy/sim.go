package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/headless"
)

var (
	flagTicks     int
	flagSessions  int
	flagRealtime  bool
	flagAutopilot bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Run the game without a terminal UI and print a summary.

With --autopilot (the default) a simple controller flaps whenever the bird
sinks toward the bottom of the next gap. Without it, each session is started
and the bird falls to the ground.

The run stops after --ticks ticks or --sessions finished sessions, whichever
comes first. Ctrl+C stops it early and still prints the summary.

Examples:
  flappy sim
  flappy sim --sessions 20 --seed 1
  flappy sim --ticks 10000 --sessions 0
  flappy sim --realtime --debug`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagTicks, "ticks", 0, "Stop after this many ticks (0 = no limit)")
	simCmd.Flags().IntVar(&flagSessions, "sessions", 1, "Stop after this many finished sessions (0 = no limit)")
	simCmd.Flags().BoolVar(&flagRealtime, "realtime", false, "Pace ticks at the configured tick rate")
	simCmd.Flags().BoolVar(&flagAutopilot, "autopilot", true, "Play with the built-in autopilot")
}

func runSim(cmd *cobra.Command, args []string) error {
	logger := newLogger(os.Stderr)

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	s := seed()
	machine, err := flappy.NewMachine(cfg, s, flappy.WithLogger(logger))
	if err != nil {
		return err
	}

	var clock headless.Clock = headless.ImmediateClock{}
	if flagRealtime {
		ticker := headless.NewTickerClock(cfg.TickDuration())
		defer ticker.Stop()
		clock = ticker
	}

	var src headless.InputSource = headless.StartOnly{}
	if flagAutopilot {
		src = flappy.NewAutopilot(cfg)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := headless.Run(ctx, machine, clock, src, headless.Options{
		Ticks:    flagTicks,
		Sessions: flagSessions,
		Logger:   logger,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	printReport(cmd, s, report)
	return nil
}

func printReport(cmd *cobra.Command, runSeed int64, r headless.Report) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Seed %d, %d ticks\n\n", runSeed, r.Ticks)
	if len(r.Sessions) == 0 {
		fmt.Fprintln(out, "No session finished.")
		return
	}

	fmt.Fprintf(out, "  %-4s  %5s  %6s  %5s  %s\n", "#", "Score", "Ticks", "Flaps", "Collision")
	fmt.Fprintf(out, "  %-4s  %5s  %6s  %5s  %s\n", "--", "-----", "-----", "-----", "---------")
	for i, s := range r.Sessions {
		fmt.Fprintf(out, "  %-4d  %5d  %6d  %5d  %s\n", i+1, s.Score, s.Ticks, s.Flaps, s.Collision)
	}
	fmt.Fprintf(out, "\nBest score: %d\n", r.Best)
}

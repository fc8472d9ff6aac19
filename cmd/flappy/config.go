package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagCheck string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check the game configuration",
	Long: `Print the built-in configuration as YAML, or check a config file.

A config file only needs the keys it changes; everything else keeps its
default value.

Examples:
  flappy config > ~/.flappy/config.yaml
  flappy config --check ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate the given config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if flagCheck == "" {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	cfg, _, err := config.Load(flagCheck)
	if err != nil {
		return err
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s: ok (%d ticks/s, gap %.0f, spacing %.0f)\n",
		flagCheck, cfg.Timing.TickRate, cfg.Obstacles.GapHeight, cfg.Obstacles.Spacing)
	return nil
}

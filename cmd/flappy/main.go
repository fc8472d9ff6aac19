// flappy is a terminal Flappy Bird with a deterministic simulation core.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy sim               - Run the simulation headless
//	flappy config            - Print the default configuration
//
// Global flags:
//
//	--config <path>    - Game tuning YAML (default: search ~/.flappy, ./configs)
//	--seed <value>     - RNG seed for reproducible gap placement
//	--fps <rate>       - Override the configured tick rate
//	--assets <dir>     - Directory with sprites.yaml, wing.wav, hit.wav
//	--log-file <path>  - Log file for the TUI (default: ~/.flappy/flappy.log)
//	--debug            - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagFPS     int
	flagAssets  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - guide the bird through the pipes in your terminal",
	Long: `Flappy is a terminal rendition of Flappy Bird.

Available commands:
  play     - Play in the terminal
  sim      - Run the simulation headless with an autopilot
  config   - Print or check the game configuration

Examples:
  flappy play
  flappy play --seed 42 --mute
  flappy sim --sessions 10
  flappy config > my-flappy.yaml
  flappy play --config ./my-flappy.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to game config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate override (0 = use config)")
	rootCmd.PersistentFlags().StringVar(&flagAssets, "assets", "", "Assets directory (empty = built-in sprites and tones)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.flappy/flappy.log", "Log file used while the TUI is running")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger creates the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "flappy",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens path for appending, creating parent directories.
func openLogFile(path string) (*os.File, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, nil
}

// expandHome replaces a leading ~ with the user's home directory.
func expandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// loadConfig resolves the configuration, applies flag overrides and validates
// the result.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}

	cfg = config.Overrides{TickRate: flagFPS}.Apply(cfg)
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("%s: %w", source, err)
	}

	logger.Info("config loaded", "source", source, "tick_rate", cfg.Timing.TickRate)
	return cfg, nil
}

// seed returns the seed flag, or a clock-derived seed when it is unset.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

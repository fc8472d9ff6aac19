package core

// RuntimeConfig carries the per-run settings that do not belong to the game
// tuning: terminal dimensions and the RNG seed.
type RuntimeConfig struct {
	TermW int   // Terminal width in characters
	TermH int   // Terminal height in characters
	Seed  int64 // RNG seed, 0 means derive from the clock in the platform layer
}

// DefaultRuntimeConfig returns a RuntimeConfig for a standard 80x24 terminal.
func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		TermW: 80,
		TermH: 24,
	}
}

package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in tuning. It matches defaults/flappy.yaml.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{
			Width:       289,
			Height:      511,
			GroundRatio: 0.8,
		},
		Timing: TimingConfig{
			TickRate:        45,
			GameOverDwellMS: 2000,
		},
		Physics: PhysicsConfig{
			Gravity:         1,
			MaxFallVelocity: 10,
			MaxRiseVelocity: -8,
			FlapImpulse:     -8,
		},
		Avatar: AvatarConfig{
			X:      57,
			Width:  34,
			Height: 24,
		},
		Obstacles: ObstacleConfig{
			PipeWidth:    52,
			GapHeight:    170,
			Spacing:      180,
			SpawnOffset:  200,
			VelocityX:    -4,
			TopMargin:    10,
			BottomMargin: 40,
		},
		Collision: CollisionConfig{
			GroundMargin:       25,
			IntrusionTolerance: 0,
			CeilingFatal:       true,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

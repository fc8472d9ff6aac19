// Package config provides YAML-based game configuration loading and
// validation. A Config is loaded once at startup and never mutated afterwards.
package config

import (
	"math"
	"time"
)

// Config contains all tuning for the game. World coordinates are pixels of
// the classic 289x511 playfield; Y grows downward.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Timing    TimingConfig    `yaml:"timing"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Avatar    AvatarConfig    `yaml:"avatar"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Collision CollisionConfig `yaml:"collision"`
}

// ScreenConfig defines the world dimensions.
type ScreenConfig struct {
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	GroundRatio float64 `yaml:"ground_ratio"` // Ground line as a fraction of Height
}

// TimingConfig defines the tick rate and phase durations.
type TimingConfig struct {
	TickRate        int `yaml:"tick_rate"`
	GameOverDwellMS int `yaml:"game_over_dwell_ms"`
}

// PhysicsConfig defines per-tick vertical motion constants.
type PhysicsConfig struct {
	Gravity         float64 `yaml:"gravity"`
	MaxFallVelocity float64 `yaml:"max_fall_velocity"`
	MaxRiseVelocity float64 `yaml:"max_rise_velocity"` // Negative: upward
	FlapImpulse     float64 `yaml:"flap_impulse"`      // Negative: upward
}

// AvatarConfig defines the avatar's fixed column and hitbox.
type AvatarConfig struct {
	X      float64 `yaml:"x"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// ObstacleConfig defines pipe geometry and spawning.
type ObstacleConfig struct {
	PipeWidth    float64 `yaml:"pipe_width"`
	GapHeight    float64 `yaml:"gap_height"`
	Spacing      float64 `yaml:"spacing"`      // Horizontal distance between consecutive pairs
	SpawnOffset  float64 `yaml:"spawn_offset"` // First pair starts this far past the right edge
	VelocityX    float64 `yaml:"velocity_x"`   // Negative: leftward
	TopMargin    float64 `yaml:"top_margin"`
	BottomMargin float64 `yaml:"bottom_margin"` // Measured up from the ground line
}

// CollisionConfig defines loss conditions.
type CollisionConfig struct {
	GroundMargin       float64 `yaml:"ground_margin"`
	IntrusionTolerance float64 `yaml:"intrusion_tolerance"`
	CeilingFatal       bool    `yaml:"ceiling_fatal"` // Flying above the top edge ends the session
}

// GroundY returns the world Y of the ground line.
func (c Config) GroundY() float64 {
	return c.Screen.Height * c.Screen.GroundRatio
}

// RestY returns the lowest Y the avatar can occupy (resting on the ground).
func (c Config) RestY() float64 {
	return c.GroundY() - c.Avatar.Height
}

// TickDuration returns the wall-clock length of one tick.
func (c Config) TickDuration() time.Duration {
	if c.Timing.TickRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.Timing.TickRate)
}

// DwellTicks converts the game-over dwell to ticks, rounding up.
func (c Config) DwellTicks() int {
	ms := float64(c.Timing.GameOverDwellMS)
	return int(math.Ceil(ms * float64(c.Timing.TickRate) / 1000))
}

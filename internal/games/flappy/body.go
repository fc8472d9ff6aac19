// Package flappy implements the simulation core of a Flappy Bird-style game:
// the fixed-step physics of the avatar, the obstacle field, collision and
// scoring, and the Welcome/Playing/GameOver state machine.
//
// Everything here is deterministic for a given seed and input sequence.
// Rendering, audio and timing live in the platform packages and only see
// value snapshots.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Avatar is the player-controlled body. X never changes while playing.
type Avatar struct {
	X          float64
	Y          float64 // Top of the hitbox
	VelocityY  float64 // Positive is downward
	HasFlapped bool    // Set by a flap, cleared by the next Integrate
}

// Body integrates the avatar's vertical motion once per tick.
type Body struct {
	Avatar

	physics      config.PhysicsConfig
	width        float64
	height       float64
	restY        float64
	ceilingFatal bool
}

// NewBody places the avatar at mid-screen with zero velocity.
func NewBody(cfg config.Config) *Body {
	return &Body{
		Avatar:       startAvatar(cfg),
		physics:      cfg.Physics,
		width:        cfg.Avatar.Width,
		height:       cfg.Avatar.Height,
		restY:        cfg.RestY(),
		ceilingFatal: cfg.Collision.CeilingFatal,
	}
}

func startAvatar(cfg config.Config) Avatar {
	return Avatar{
		X: cfg.Avatar.X,
		Y: (cfg.Screen.Height - cfg.Avatar.Height) / 2,
	}
}

// ApplyFlap sets the velocity to the configured flap impulse. It has no
// effect when the avatar is already at or above the top edge. Reports
// whether the flap took effect.
func (b *Body) ApplyFlap() bool {
	if b.Y <= 0 {
		return false
	}
	b.VelocityY = b.physics.FlapImpulse
	b.HasFlapped = true
	return true
}

// Integrate advances the avatar by one tick. Gravity is skipped on the tick
// of a flap. The avatar comes to rest on the ground rather than sinking
// through it.
func (b *Body) Integrate() {
	if !b.HasFlapped {
		b.VelocityY = core.ClampF(b.VelocityY+b.physics.Gravity, b.physics.MaxRiseVelocity, b.physics.MaxFallVelocity)
	}

	b.Y += b.VelocityY
	if b.Y > b.restY {
		b.Y = b.restY
	}
	if !b.ceilingFatal && b.Y < 0 {
		b.Y = 0
	}

	b.HasFlapped = false
}

// Bounds returns the avatar hitbox in world units.
func (b *Body) Bounds() core.Box {
	return core.NewBox(b.X, b.Y, b.width, b.height)
}

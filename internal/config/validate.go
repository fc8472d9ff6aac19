package config

import (
	"errors"
	"fmt"
)

// Validate checks startup preconditions. Every violation is reported, joined
// into a single error, so a bad file can be fixed in one pass.
func Validate(cfg Config) error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	s := cfg.Screen
	check(s.Width > 0, "screen.width must be positive, got %v", s.Width)
	check(s.Height > 0, "screen.height must be positive, got %v", s.Height)
	check(s.GroundRatio > 0 && s.GroundRatio <= 1, "screen.ground_ratio must be in (0, 1], got %v", s.GroundRatio)

	t := cfg.Timing
	check(t.TickRate > 0, "timing.tick_rate must be positive, got %d", t.TickRate)
	check(t.GameOverDwellMS >= 0, "timing.game_over_dwell_ms must not be negative, got %d", t.GameOverDwellMS)

	p := cfg.Physics
	check(p.Gravity > 0, "physics.gravity must be positive, got %v", p.Gravity)
	check(p.MaxFallVelocity > 0, "physics.max_fall_velocity must be positive, got %v", p.MaxFallVelocity)
	check(p.MaxRiseVelocity < 0, "physics.max_rise_velocity must be negative, got %v", p.MaxRiseVelocity)
	check(p.FlapImpulse < 0, "physics.flap_impulse must be negative, got %v", p.FlapImpulse)

	a := cfg.Avatar
	check(a.Width > 0, "avatar.width must be positive, got %v", a.Width)
	check(a.Height > 0, "avatar.height must be positive, got %v", a.Height)
	check(a.X >= 0 && a.X+a.Width <= s.Width, "avatar.x must keep the avatar on screen, got %v", a.X)
	check(a.Height < cfg.GroundY(), "avatar.height %v does not fit above the ground at %v", a.Height, cfg.GroundY())

	o := cfg.Obstacles
	check(o.PipeWidth > 0, "obstacles.pipe_width must be positive, got %v", o.PipeWidth)
	check(o.GapHeight > 0, "obstacles.gap_height must be positive, got %v", o.GapHeight)
	check(o.GapHeight <= s.Height, "obstacles.gap_height %v exceeds screen.height %v", o.GapHeight, s.Height)
	check(o.GapHeight > a.Height, "obstacles.gap_height %v must exceed avatar.height %v", o.GapHeight, a.Height)
	check(o.VelocityX < 0, "obstacles.velocity_x must be negative, got %v", o.VelocityX)
	check(o.TopMargin >= 0, "obstacles.top_margin must not be negative, got %v", o.TopMargin)
	check(o.BottomMargin >= 0, "obstacles.bottom_margin must not be negative, got %v", o.BottomMargin)
	check(o.SpawnOffset >= 0, "obstacles.spawn_offset must not be negative, got %v", o.SpawnOffset)
	check(o.TopMargin+o.GapHeight+o.BottomMargin <= cfg.GroundY(),
		"obstacles: gap_height %v with margins %v/%v does not fit above the ground at %v",
		o.GapHeight, o.TopMargin, o.BottomMargin, cfg.GroundY())
	// A recycled pair is appended one spacing past the rightmost pair at the
	// moment the leftmost leaves; it must land off-screen.
	check(2*o.Spacing >= s.Width+o.PipeWidth,
		"obstacles.spacing %v too small: need at least %v so recycled pairs spawn off-screen",
		o.Spacing, (s.Width+o.PipeWidth)/2)

	c := cfg.Collision
	check(c.GroundMargin >= 0, "collision.ground_margin must not be negative, got %v", c.GroundMargin)
	// The avatar rests at GroundY-Height, so it only crosses the ground
	// line at GroundY-GroundMargin when the margin is the larger.
	check(a.Height < c.GroundMargin,
		"collision.ground_margin %v must exceed avatar.height %v so the ground is reachable", c.GroundMargin, a.Height)
	check(c.IntrusionTolerance >= 0, "collision.intrusion_tolerance must not be negative, got %v", c.IntrusionTolerance)

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

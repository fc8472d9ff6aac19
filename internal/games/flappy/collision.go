package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Collision identifies what ended a session.
type Collision int

const (
	CollisionNone    Collision = iota
	CollisionCeiling           // Flew above the top edge
	CollisionGround            // Reached the ground band
	CollisionUpper             // Intruded into an upper segment
	CollisionLower             // Intruded into a lower segment
)

// String returns a human-readable name for the collision.
func (c Collision) String() string {
	switch c {
	case CollisionNone:
		return "none"
	case CollisionCeiling:
		return "ceiling"
	case CollisionGround:
		return "ground"
	case CollisionUpper:
		return "upper pipe"
	case CollisionLower:
		return "lower pipe"
	default:
		return "unknown"
	}
}

// Geometry holds the constants collision detection depends on. It comes from
// configuration only, never from sprite sizes.
type Geometry struct {
	PipeWidth          float64
	GroundY            float64
	GroundMargin       float64
	IntrusionTolerance float64
	CeilingFatal       bool
}

// GeometryFrom extracts collision geometry from the configuration.
func GeometryFrom(cfg config.Config) Geometry {
	return Geometry{
		PipeWidth:          cfg.Obstacles.PipeWidth,
		GroundY:            cfg.GroundY(),
		GroundMargin:       cfg.Collision.GroundMargin,
		IntrusionTolerance: cfg.Collision.IntrusionTolerance,
		CeilingFatal:       cfg.Collision.CeilingFatal,
	}
}

// CheckCollision reports the first terminal collision for the avatar hitbox,
// or CollisionNone. It is a pure function of its arguments.
//
// Horizontal overlap with a pair is strict, so just touching a pipe edge is
// not a hit. Vertically the avatar must lie fully inside the gap.
func CheckCollision(avatar core.Box, pairs []Pair, g Geometry) Collision {
	if g.CeilingFatal && avatar.Y < 0 {
		return CollisionCeiling
	}
	if avatar.Y > g.GroundY-g.GroundMargin {
		return CollisionGround
	}

	for _, p := range pairs {
		for _, seg := range p.Segments(g.PipeWidth, g.GroundY) {
			if !avatar.OverlapsX(seg.Box) {
				continue
			}
			switch seg.Kind {
			case SegmentUpper:
				if avatar.Y < seg.Box.Bottom()+g.IntrusionTolerance {
					return CollisionUpper
				}
			case SegmentLower:
				if avatar.Bottom() > seg.Box.Y {
					return CollisionLower
				}
			}
		}
	}
	return CollisionNone
}

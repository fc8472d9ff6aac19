package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// DefaultAutopilotMargin is how far above the gap bottom the autopilot keeps
// the avatar's lower edge.
const DefaultAutopilotMargin = 20

// Autopilot is an input source that plays the game from snapshots.
// It starts a session on the welcome screen and flaps whenever the avatar
// sinks below a line just above the bottom of the next gap.
type Autopilot struct {
	Margin float64

	pipeWidth    float64
	avatarHeight float64
	fallbackY    float64
}

// NewAutopilot creates an autopilot for the given tuning.
func NewAutopilot(cfg config.Config) *Autopilot {
	return &Autopilot{
		Margin:       DefaultAutopilotMargin,
		pipeWidth:    cfg.Obstacles.PipeWidth,
		avatarHeight: cfg.Avatar.Height,
		fallbackY:    (cfg.Screen.Height - cfg.Avatar.Height) / 2,
	}
}

// Decide returns the input for the next tick.
func (a *Autopilot) Decide(s Snapshot) core.InputFrame {
	in := core.NewInputFrame()

	switch s.Phase {
	case PhaseWelcome:
		in.Set(core.ActionFlap)
	case PhasePlaying:
		threshold := a.fallbackY
		if p, ok := s.NextPair(a.pipeWidth); ok {
			threshold = p.GapBottomY - a.avatarHeight - a.Margin
		}
		if s.Avatar.Y > threshold {
			in.Set(core.ActionFlap)
		}
	}
	return in
}

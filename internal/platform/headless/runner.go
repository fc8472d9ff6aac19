package headless

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// ErrNoLimit is returned when a run has neither a tick nor a session limit.
var ErrNoLimit = errors.New("headless: a tick or session limit is required")

// InputSource decides the input for the next tick from the latest snapshot.
type InputSource interface {
	Decide(s flappy.Snapshot) core.InputFrame
}

// StartOnly starts every session and then never flaps.
type StartOnly struct{}

// Decide flaps only on the welcome screen.
func (StartOnly) Decide(s flappy.Snapshot) core.InputFrame {
	in := core.NewInputFrame()
	if s.Phase == flappy.PhaseWelcome {
		in.Set(core.ActionFlap)
	}
	return in
}

// Options controls a headless run. A zero limit means unlimited, but at least
// one limit must be set.
type Options struct {
	Ticks    int
	Sessions int
	Logger   *log.Logger
}

// SessionReport summarises one finished session.
type SessionReport struct {
	Score     int
	Ticks     int
	Flaps     int
	Collision flappy.Collision
}

// Report summarises a run.
type Report struct {
	Ticks    int
	Sessions []SessionReport
	Best     int
}

// Run steps m once per clock tick with input from src until a limit is
// reached, the machine quits, or ctx is done. The report covers everything
// simulated before Run returned, including on error.
func Run(ctx context.Context, m *flappy.Machine, clock Clock, src InputSource, opts Options) (Report, error) {
	var report Report
	if opts.Ticks <= 0 && opts.Sessions <= 0 {
		return report, ErrNoLimit
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	for !limitReached(report, opts) {
		if err := clock.Wait(ctx); err != nil {
			logger.Info("simulation interrupted", "ticks", report.Ticks, "error", err)
			return report, err
		}

		res := m.Step(src.Decide(m.Snapshot()))
		report.Ticks++

		if res.Transitioned && res.Phase == flappy.PhaseGameOver {
			snap := m.Snapshot()
			report.Sessions = append(report.Sessions, SessionReport{
				Score:     snap.Score,
				Ticks:     snap.Stats.Ticks,
				Flaps:     snap.Stats.Flaps,
				Collision: snap.Stats.Collision,
			})
			report.Best = snap.BestScore
		}
		if res.Quit {
			break
		}
	}

	logger.Info("simulation finished",
		"ticks", report.Ticks,
		"sessions", len(report.Sessions),
		"best", report.Best,
	)
	return report, nil
}

func limitReached(r Report, opts Options) bool {
	if opts.Ticks > 0 && r.Ticks >= opts.Ticks {
		return true
	}
	return opts.Sessions > 0 && len(r.Sessions) >= opts.Sessions
}

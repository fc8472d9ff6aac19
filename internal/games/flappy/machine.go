package flappy

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the active stage of the game.
type Phase int

const (
	PhaseWelcome Phase = iota
	PhasePlaying
	PhaseGameOver
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseWelcome:
		return "welcome"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// SessionStats summarises one Playing session.
type SessionStats struct {
	Ticks     int
	Flaps     int
	Collision Collision
}

// session is the state that exists from Welcome->Playing until the next
// return to Welcome.
type session struct {
	body  *Body
	field *Field
	score ScoreTracker
	stats SessionStats
}

// StepResult is returned by Machine.Step after each tick.
type StepResult struct {
	Phase        Phase          // Phase after the tick
	Transitioned bool           // The phase changed during this tick
	Cues         []Cue          // Audio cues emitted during this tick
	Recycled     []RecycleEvent // Pairs recycled during this tick
	Quit         bool           // The driver should terminate
}

// Option configures a Machine.
type Option func(*Machine)

// WithLogger sets the logger used for phase transitions.
func WithLogger(l *log.Logger) Option {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// Machine sequences Welcome, Playing and GameOver and routes input to the
// active phase. It is driven by one caller, one Step per tick.
type Machine struct {
	cfg    config.Config
	geom   Geometry
	rng    *rand.Rand
	logger *log.Logger

	phase     Phase
	tick      uint64
	session   *session
	dwellLeft int
	best      int
	quit      bool
}

// NewMachine validates cfg and returns a machine in the Welcome phase.
// The seed fixes every gap placement for the lifetime of the machine.
func NewMachine(cfg config.Config, seed int64, opts ...Option) (*Machine, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("flappy: %w", err)
	}

	m := &Machine{
		cfg:    cfg,
		geom:   GeometryFrom(cfg),
		rng:    rand.New(rand.NewSource(seed)),
		logger: log.New(io.Discard),
		phase:  PhaseWelcome,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Phase returns the active phase.
func (m *Machine) Phase() Phase {
	return m.phase
}

// Config returns the configuration the machine was built with.
func (m *Machine) Config() config.Config {
	return m.cfg
}

// Quit reports whether a quit input has been received.
func (m *Machine) Quit() bool {
	return m.quit
}

// Step advances the game by one tick using the input received since the
// previous tick. After a quit, Step does nothing and keeps reporting Quit.
func (m *Machine) Step(in core.InputFrame) StepResult {
	if m.quit {
		return StepResult{Phase: m.phase, Quit: true}
	}

	m.tick++
	if in.Has(core.ActionQuit) {
		m.quit = true
		m.logger.Info("quit requested", "phase", m.phase, "tick", m.tick)
		return StepResult{Phase: m.phase, Quit: true}
	}

	res := StepResult{Phase: m.phase}
	switch m.phase {
	case PhaseWelcome:
		if in.Has(core.ActionFlap) {
			m.startSession()
		}
	case PhasePlaying:
		m.stepPlaying(in, &res)
	case PhaseGameOver:
		if m.dwellLeft > 0 {
			m.dwellLeft--
		}
		if m.dwellLeft == 0 {
			m.enterWelcome()
		}
	}

	res.Transitioned = res.Phase != m.phase
	res.Phase = m.phase
	return res
}

func (m *Machine) stepPlaying(in core.InputFrame, res *StepResult) {
	s := m.session
	s.stats.Ticks++

	if in.Has(core.ActionFlap) && s.body.ApplyFlap() {
		s.stats.Flaps++
		res.Cues = append(res.Cues, CueFlap)
	}
	s.body.Integrate()

	s.field.Advance()
	res.Recycled = s.field.Recycle()
	for _, ev := range res.Recycled {
		// The removed pair is fully behind the avatar, so it counts even if
		// this same tick ends in a collision.
		s.score.OnRecycle(ev)
	}

	if hit := CheckCollision(s.body.Bounds(), s.field.pairs, m.geom); hit != CollisionNone {
		s.stats.Collision = hit
		res.Cues = append(res.Cues, CueHit)
		m.enterGameOver()
	}
}

func (m *Machine) startSession() {
	field := NewField(m.cfg, m.rng)
	field.Seed()

	m.session = &session{
		body:  NewBody(m.cfg),
		field: field,
	}
	m.phase = PhasePlaying
	m.logger.Debug("session started", "tick", m.tick)
}

func (m *Machine) enterGameOver() {
	s := m.session
	score := s.score.Score()
	if score > m.best {
		m.best = score
	}
	m.phase = PhaseGameOver
	m.dwellLeft = m.cfg.DwellTicks()
	m.logger.Info("game over",
		"score", score,
		"best", m.best,
		"ticks", s.stats.Ticks,
		"flaps", s.stats.Flaps,
		"collision", s.stats.Collision,
	)
}

func (m *Machine) enterWelcome() {
	m.session = nil
	m.phase = PhaseWelcome
	m.logger.Debug("back to welcome", "tick", m.tick)
}

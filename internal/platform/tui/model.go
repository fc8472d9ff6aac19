package tui

import (
	"io"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Options carries the optional collaborators of a Model.
type Options struct {
	Player *audio.Player // nil plays no sound
	Logger *log.Logger
}

// Model is the Bubble Tea model that drives a flappy.Machine.
// Keys are collected into an input frame between ticks; each TickMsg steps
// the machine once with that frame.
type Model struct {
	machine  *flappy.Machine
	renderer *Renderer
	player   *audio.Player
	logger   *log.Logger
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	input    core.InputFrame
	quitting bool
}

// NewModel creates a Bubble Tea model for the given machine.
func NewModel(m *flappy.Machine, bundle *assets.Bundle, rt core.RuntimeConfig, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		machine:  m,
		renderer: NewRenderer(m.Config(), bundle),
		player:   opts.Player,
		logger:   logger,
		screen:   core.NewScreen(rt.TermW, max(rt.TermH-1, 0)),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    core.NewInputFrame(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.machine.Config().TickDuration())
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if action := m.keys.MapKey(msg); action != core.ActionNone {
			m.input.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		// One row is kept for the help line
		m.screen.Resize(msg.Width, max(msg.Height-1, 0))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick steps the machine with the input collected since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	res := m.machine.Step(m.input)
	m.input.Clear()

	if m.player != nil && len(res.Cues) > 0 {
		m.player.Play(res.Cues...)
	}
	if res.Transitioned {
		m.logger.Debug("phase changed", "phase", res.Phase)
	}
	if res.Quit {
		m.quitting = true
		return m, tea.Quit
	}

	return m, tickCmd(m.machine.Config().TickDuration())
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.renderer.Draw(m.screen, m.machine.Snapshot())
	return RenderScreen(m.screen) + "\n" + m.help.View(m.keys)
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(m *flappy.Machine, bundle *assets.Bundle, rt core.RuntimeConfig, opts Options) error {
	p := tea.NewProgram(
		NewModel(m, bundle, rt, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

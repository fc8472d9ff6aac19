// Package audio plays the simulation's cues through the system speaker.
package audio

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/tui-flappy/internal/assets"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// bufferLatency is the speaker buffer size.
const bufferLatency = 100 * time.Millisecond

// Sink receives streamers to play.
type Sink func(beep.Streamer)

// Option configures a Player.
type Option func(*Player)

// WithLogger sets the logger for audio warnings.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithSink routes playback to s instead of the speaker and enables the
// player without opening a device.
func WithSink(s Sink) Option {
	return func(p *Player) {
		p.sink = s
		p.enabled = true
	}
}

// Player maps cues to sounds from an asset bundle.
// A disabled player, or a cue without a sound, is silent.
type Player struct {
	mu      sync.Mutex
	bundle  *assets.Bundle
	logger  *log.Logger
	sink    Sink
	enabled bool
	device  bool
}

// NewPlayer creates a player. Call Init to open the speaker.
func NewPlayer(bundle *assets.Bundle, opts ...Option) *Player {
	p := &Player{
		bundle: bundle,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Init opens the speaker. A failure leaves the player silent; the error is
// returned for the caller to report.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return nil
	}

	rate := assets.SampleRate
	if err := speaker.Init(rate, rate.N(bufferLatency)); err != nil {
		p.logger.Warn("audio disabled", "error", err)
		return err
	}
	p.sink = func(s beep.Streamer) { speaker.Play(s) }
	p.enabled = true
	p.device = true
	return nil
}

// Enabled reports whether cues will be played.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enabled
}

// Play starts the sound for each cue.
func (p *Player) Play(cues ...flappy.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || p.bundle == nil {
		return
	}
	for _, c := range cues {
		buf, ok := p.bundle.Sound(c.String())
		if !ok {
			continue
		}
		p.sink(resample(buf))
	}
}

// Close stops playback and releases the speaker.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.device {
		speaker.Clear()
		speaker.Close()
		p.device = false
	}
	p.enabled = false
}

// resample converts a buffer to the device rate when it differs.
func resample(buf *beep.Buffer) beep.Streamer {
	s := buf.Streamer(0, buf.Len())
	if from := buf.Format().SampleRate; from != assets.SampleRate {
		return beep.Resample(4, from, assets.SampleRate, s)
	}
	return s
}

package flappy

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// It shares no memory with the machine.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Avatar    Avatar
	Pairs     []Pair
	Score     int // Live score while playing, final score in GameOver
	BestScore int // Best score since the process started
	DwellLeft int // Ticks until GameOver returns to Welcome
	Stats     SessionStats
}

// Snapshot returns the current state for rendering and audio.
// In Welcome the avatar is shown idle at its start position with no pairs.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:      m.tick,
		Phase:     m.phase,
		BestScore: m.best,
	}

	if m.session == nil {
		snap.Avatar = startAvatar(m.cfg)
		return snap
	}

	s := m.session
	snap.Avatar = s.body.Avatar
	snap.Pairs = s.field.Pairs()
	snap.Score = s.score.Score()
	snap.Stats = s.stats
	if m.phase == PhaseGameOver {
		snap.DwellLeft = m.dwellLeft
	}
	return snap
}

// NextPair returns the first pair whose right edge has not yet passed the
// avatar's left edge.
func (s Snapshot) NextPair(pipeWidth float64) (Pair, bool) {
	for _, p := range s.Pairs {
		if p.X+pipeWidth >= s.Avatar.X {
			return p, true
		}
	}
	return Pair{}, false
}

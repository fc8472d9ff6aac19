package flappy

// ScoreTracker counts obstacle pairs the avatar has passed.
// Recycling is the only scoring path: a pair counts once it has left the
// screen behind the avatar.
type ScoreTracker struct {
	score  int
	lastID uint64 // Highest pair ID scored; IDs start at 1
}

// OnRecycle scores the removed pair. A pair that was already scored is ignored.
func (s *ScoreTracker) OnRecycle(ev RecycleEvent) bool {
	if ev.Removed.ID <= s.lastID {
		return false
	}
	s.lastID = ev.Removed.ID
	s.score++
	return true
}

// Score returns the current score.
func (s *ScoreTracker) Score() int {
	return s.score
}

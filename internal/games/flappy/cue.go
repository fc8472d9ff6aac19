package flappy

// Cue is a discrete audio event emitted by the simulation.
type Cue int

const (
	CueFlap Cue = iota + 1 // A flap took effect
	CueHit                 // The session ended in a collision
)

// String returns the cue name, which doubles as the asset base name.
func (c Cue) String() string {
	switch c {
	case CueFlap:
		return "flap"
	case CueHit:
		return "hit"
	default:
		return "unknown"
	}
}

package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// SegmentKind tags the two elements of an obstacle pair.
type SegmentKind int

const (
	SegmentUpper SegmentKind = iota // Hangs from the top edge down to the gap
	SegmentLower                    // Rises from the ground up to the gap
)

// String returns a human-readable name for the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SegmentUpper:
		return "upper"
	case SegmentLower:
		return "lower"
	default:
		return "unknown"
	}
}

// Segment is one solid element of a pair.
type Segment struct {
	Kind SegmentKind
	Box  core.Box
}

// Pair is one vertical gate. The avatar must pass between GapTopY and
// GapBottomY while it overlaps the pair horizontally.
type Pair struct {
	ID         uint64
	X          float64 // Left edge
	GapTopY    float64
	GapBottomY float64
}

// Segments returns the upper and lower elements of the pair.
func (p Pair) Segments(pipeWidth, groundY float64) [2]Segment {
	return [2]Segment{
		{Kind: SegmentUpper, Box: core.NewBox(p.X, 0, pipeWidth, p.GapTopY)},
		{Kind: SegmentLower, Box: core.NewBox(p.X, p.GapBottomY, pipeWidth, groundY-p.GapBottomY)},
	}
}

// RecycleEvent reports that a pair left the screen and was replaced.
type RecycleEvent struct {
	Removed Pair
	Spawned Pair
}

// Field owns the ordered sequence of obstacle pairs.
// Pairs are kept in ascending X; recycling is the only way new pairs appear.
type Field struct {
	pairs  []Pair
	rng    *rand.Rand
	nextID uint64

	screenW   float64
	groundY   float64
	obstacles config.ObstacleConfig
}

// NewField creates an empty field drawing gap placements from rng.
func NewField(cfg config.Config, rng *rand.Rand) *Field {
	return &Field{
		pairs:     make([]Pair, 0, 2),
		rng:       rng,
		nextID:    1,
		screenW:   cfg.Screen.Width,
		groundY:   cfg.GroundY(),
		obstacles: cfg.Obstacles,
	}
}

// Seed replaces the field with two pairs staggered past the right edge, so
// the first gate is not immediately on screen.
func (f *Field) Seed() {
	f.pairs = f.pairs[:0]
	first := f.SpawnPair(f.screenW + f.obstacles.SpawnOffset)
	f.pairs = append(f.pairs, first, f.SpawnPair(first.X+f.obstacles.Spacing))
}

// SpawnPair creates a pair at x with a randomly placed gap. The gap top is
// drawn uniformly over the band that keeps the configured margins from the
// top edge and from the ground. The pair is not added to the field.
func (f *Field) SpawnPair(x float64) Pair {
	o := f.obstacles
	minTop := o.TopMargin
	maxTop := f.groundY - o.BottomMargin - o.GapHeight

	top := minTop
	if span := int(math.Floor(maxTop - minTop)); span > 0 {
		top = minTop + float64(f.rng.Intn(span+1))
	}

	p := Pair{
		ID:         f.nextID,
		X:          x,
		GapTopY:    top,
		GapBottomY: top + o.GapHeight,
	}
	f.nextID++
	return p
}

// Advance shifts every pair horizontally by the configured velocity.
func (f *Field) Advance() {
	for i := range f.pairs {
		f.pairs[i].X += f.obstacles.VelocityX
	}
}

// Recycle removes the leftmost pair once its right edge is past the left
// screen edge and appends a replacement one spacing beyond the rightmost pair.
func (f *Field) Recycle() []RecycleEvent {
	var events []RecycleEvent
	for len(f.pairs) > 0 && f.pairs[0].X+f.obstacles.PipeWidth < 0 {
		removed := f.pairs[0]
		f.pairs = append(f.pairs[:0], f.pairs[1:]...)

		x := removed.X + f.obstacles.Spacing
		if n := len(f.pairs); n > 0 {
			x = f.pairs[n-1].X + f.obstacles.Spacing
		}
		spawned := f.SpawnPair(x)
		f.pairs = append(f.pairs, spawned)

		events = append(events, RecycleEvent{Removed: removed, Spawned: spawned})
	}
	return events
}

// Pairs returns a copy of the current pairs in ascending X.
func (f *Field) Pairs() []Pair {
	out := make([]Pair, len(f.pairs))
	copy(out, f.pairs)
	return out
}

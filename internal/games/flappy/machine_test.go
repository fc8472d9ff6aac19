package flappy

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestMachine(t *testing.T, cfg config.Config, seed int64) *Machine {
	t.Helper()
	m, err := NewMachine(cfg, seed)
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}
	return m
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func startPlaying(t *testing.T, m *Machine) {
	t.Helper()
	res := m.Step(input(core.ActionFlap))
	if res.Phase != PhasePlaying || !res.Transitioned {
		t.Fatalf("expected transition to playing, got %+v", res)
	}
}

func hasCue(cues []Cue, c Cue) bool {
	for _, got := range cues {
		if got == c {
			return true
		}
	}
	return false
}

// narrowGapConfig keeps every gap within a few units of the same height so
// the autopilot can thread all of them.
func narrowGapConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Obstacles.TopMargin = 150
	cfg.Obstacles.BottomMargin = 80
	return cfg
}

func TestNewMachineRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timing.TickRate = 0

	if _, err := NewMachine(cfg, 1); err == nil {
		t.Fatal("expected error for non-positive tick rate")
	}
}

func TestNewMachineRejectsUnreachableGround(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Avatar.Height = 30
	cfg.Obstacles.GapHeight = 171

	if _, err := NewMachine(cfg, 1); err == nil {
		t.Fatal("expected error when the resting avatar cannot reach the ground line")
	}
}

func TestMachineStartsInWelcome(t *testing.T) {
	m := newTestMachine(t, config.DefaultConfig(), 1)

	if m.Phase() != PhaseWelcome {
		t.Fatalf("initial phase = %v, expected welcome", m.Phase())
	}

	// Ticks without input stay in welcome
	for i := 0; i < 10; i++ {
		if res := m.Step(core.NewInputFrame()); res.Phase != PhaseWelcome || res.Transitioned {
			t.Fatalf("tick %d: unexpected %+v", i, res)
		}
	}

	snap := m.Snapshot()
	if len(snap.Pairs) != 0 || snap.Score != 0 {
		t.Errorf("welcome snapshot should be empty, got %+v", snap)
	}
}

func TestMachineStartFromWelcome(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestMachine(t, cfg, 1)
	startPlaying(t, m)

	snap := m.Snapshot()
	if snap.Score != 0 {
		t.Errorf("Score = %d, expected 0", snap.Score)
	}
	if len(snap.Pairs) != 2 {
		t.Fatalf("expected 2 pre-seeded pairs, got %d", len(snap.Pairs))
	}
	first := cfg.Screen.Width + cfg.Obstacles.SpawnOffset
	if snap.Pairs[0].X != first || snap.Pairs[1].X != first+cfg.Obstacles.Spacing {
		t.Errorf("pairs at %v and %v, expected %v and %v",
			snap.Pairs[0].X, snap.Pairs[1].X, first, first+cfg.Obstacles.Spacing)
	}

	// The start input is not applied as a flap
	if want := (cfg.Screen.Height - cfg.Avatar.Height) / 2; snap.Avatar.Y != want {
		t.Errorf("Avatar.Y = %v, expected %v", snap.Avatar.Y, want)
	}
	if snap.Avatar.VelocityY != 0 {
		t.Errorf("Avatar.VelocityY = %v, expected 0", snap.Avatar.VelocityY)
	}
}

func TestMachineFlapEmitsCue(t *testing.T) {
	m := newTestMachine(t, config.DefaultConfig(), 1)
	startPlaying(t, m)
	y := m.Snapshot().Avatar.Y

	res := m.Step(input(core.ActionFlap))
	if !hasCue(res.Cues, CueFlap) {
		t.Errorf("expected flap cue, got %v", res.Cues)
	}
	if got := m.Snapshot().Avatar.Y; got != y-8 {
		t.Errorf("Avatar.Y = %v, expected %v", got, y-8)
	}

	res = m.Step(core.NewInputFrame())
	if len(res.Cues) != 0 {
		t.Errorf("expected no cues without input, got %v", res.Cues)
	}
}

func TestMachineFallsToGround(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestMachine(t, cfg, 1)
	startPlaying(t, m)

	m.session.body.Y = 0
	m.session.body.VelocityY = 0
	groundLimit := cfg.GroundY() - cfg.Collision.GroundMargin

	collided := false
	for i := 0; i < 100; i++ {
		res := m.Step(core.NewInputFrame())
		y := m.session.body.Y
		if y > cfg.RestY() {
			t.Fatalf("tick %d: Y %v below rest %v", i, y, cfg.RestY())
		}
		if res.Phase == PhaseGameOver {
			if y <= groundLimit {
				t.Fatalf("tick %d: collision at Y %v before crossing %v", i, y, groundLimit)
			}
			if !hasCue(res.Cues, CueHit) {
				t.Errorf("expected hit cue, got %v", res.Cues)
			}
			collided = true
			break
		}
		if y > groundLimit {
			t.Fatalf("tick %d: Y %v crossed %v without a collision", i, y, groundLimit)
		}
	}

	if !collided {
		t.Fatal("expected a ground collision within 100 ticks")
	}
	if got := m.session.body.Y; got != cfg.RestY() {
		t.Errorf("final Y = %v, expected rest %v", got, cfg.RestY())
	}
	if got := m.Snapshot().Stats.Collision; got != CollisionGround {
		t.Errorf("collision = %v, expected ground", got)
	}
}

func TestMachineCeilingCollision(t *testing.T) {
	m := newTestMachine(t, config.DefaultConfig(), 1)
	startPlaying(t, m)
	m.session.body.Y = 4

	res := m.Step(input(core.ActionFlap))
	if res.Phase != PhaseGameOver {
		t.Fatalf("expected game over after flying above the top, got %v", res.Phase)
	}
	if got := m.Snapshot().Stats.Collision; got != CollisionCeiling {
		t.Errorf("collision = %v, expected ceiling", got)
	}
}

func TestMachineGameOverDwell(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestMachine(t, cfg, 1)
	startPlaying(t, m)
	m.session.body.Y = cfg.RestY()

	if res := m.Step(core.NewInputFrame()); res.Phase != PhaseGameOver {
		t.Fatalf("expected game over, got %v", res.Phase)
	}
	frozen := m.Snapshot()

	dwell := cfg.DwellTicks()
	for i := 0; i < dwell-1; i++ {
		// Flap is ignored while game over is shown
		res := m.Step(input(core.ActionFlap))
		if res.Phase != PhaseGameOver {
			t.Fatalf("dwell tick %d: left game over early", i)
		}
	}

	snap := m.Snapshot()
	if !reflect.DeepEqual(snap.Avatar, frozen.Avatar) || !reflect.DeepEqual(snap.Pairs, frozen.Pairs) {
		t.Error("state should be frozen during game over")
	}
	if snap.DwellLeft != 1 {
		t.Errorf("DwellLeft = %d, expected 1", snap.DwellLeft)
	}

	res := m.Step(core.NewInputFrame())
	if res.Phase != PhaseWelcome || !res.Transitioned {
		t.Fatalf("expected return to welcome, got %+v", res)
	}
	if snap := m.Snapshot(); len(snap.Pairs) != 0 || snap.Score != 0 {
		t.Errorf("welcome should discard the session, got %+v", snap)
	}
}

func TestMachineZeroDwell(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Timing.GameOverDwellMS = 0
	m := newTestMachine(t, cfg, 1)
	startPlaying(t, m)
	m.session.body.Y = cfg.RestY()

	m.Step(core.NewInputFrame())
	if res := m.Step(core.NewInputFrame()); res.Phase != PhaseWelcome {
		t.Errorf("zero dwell should return to welcome on the next tick, got %v", res.Phase)
	}
}

func TestMachineQuitFromEveryPhase(t *testing.T) {
	cfg := config.DefaultConfig()

	setups := map[string]func(*testing.T, *Machine){
		"welcome": func(*testing.T, *Machine) {},
		"playing": startPlaying,
		"game over": func(t *testing.T, m *Machine) {
			startPlaying(t, m)
			m.session.body.Y = cfg.RestY()
			m.Step(core.NewInputFrame())
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			m := newTestMachine(t, cfg, 1)
			setup(t, m)
			phase := m.Phase()

			res := m.Step(input(core.ActionQuit, core.ActionFlap))
			if !res.Quit || !m.Quit() {
				t.Fatal("expected quit signal")
			}
			if res.Phase != phase {
				t.Errorf("quit should not change phase: %v -> %v", phase, res.Phase)
			}

			tick := m.Snapshot().Tick
			if res := m.Step(input(core.ActionFlap)); !res.Quit {
				t.Error("machine should keep reporting quit")
			}
			if m.Snapshot().Tick != tick {
				t.Error("machine should not advance after quit")
			}
		})
	}
}

func TestMachineThreadsEveryGap(t *testing.T) {
	cfg := narrowGapConfig()
	m := newTestMachine(t, cfg, 42)
	pilot := NewAutopilot(cfg)

	recycles := 0
	for tick := 0; tick < 400; tick++ {
		res := m.Step(pilot.Decide(m.Snapshot()))
		if res.Phase == PhaseGameOver {
			t.Fatalf("tick %d: autopilot crashed (%v)", tick, m.Snapshot().Stats.Collision)
		}
		recycles += len(res.Recycled)
	}

	if recycles < 5 {
		t.Fatalf("expected at least 5 recycles in 400 ticks, got %d", recycles)
	}
	if got := m.Snapshot().Score; got != recycles {
		t.Errorf("Score = %d after %d recycles", got, recycles)
	}
}

func TestMachineScoreMonotonic(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestMachine(t, cfg, 7)
	pilot := NewAutopilot(cfg)
	rng := rand.New(rand.NewSource(7))

	prev := 0
	scored := map[uint64]bool{}
	for tick := 0; tick < 5000; tick++ {
		in := pilot.Decide(m.Snapshot())
		if rng.Intn(40) == 0 {
			in.Set(core.ActionFlap)
		}
		res := m.Step(in)

		snap := m.Snapshot()
		if res.Transitioned && res.Phase == PhaseWelcome {
			prev = 0
			scored = map[uint64]bool{}
			continue
		}
		if snap.Score < prev {
			t.Fatalf("tick %d: score decreased %d -> %d", tick, prev, snap.Score)
		}
		if snap.Score-prev != len(res.Recycled) {
			t.Fatalf("tick %d: score rose by %d for %d recycles", tick, snap.Score-prev, len(res.Recycled))
		}
		for _, ev := range res.Recycled {
			if scored[ev.Removed.ID] {
				t.Fatalf("tick %d: pair %d recycled twice", tick, ev.Removed.ID)
			}
			scored[ev.Removed.ID] = true
		}
		prev = snap.Score
	}
}

func TestMachinePlayingBounds(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestMachine(t, cfg, 3)
	rng := rand.New(rand.NewSource(3))

	for tick := 0; tick < 3000; tick++ {
		in := core.NewInputFrame()
		if m.Phase() == PhaseWelcome || rng.Intn(6) == 0 {
			in.Set(core.ActionFlap)
		}
		m.Step(in)

		if m.Phase() != PhasePlaying {
			continue
		}
		snap := m.Snapshot()
		if snap.Avatar.Y > cfg.RestY() {
			t.Fatalf("tick %d: Y %v below rest", tick, snap.Avatar.Y)
		}
		v := snap.Avatar.VelocityY
		if v < cfg.Physics.MaxRiseVelocity || v > cfg.Physics.MaxFallVelocity {
			t.Fatalf("tick %d: velocity %v out of bounds", tick, v)
		}
		if len(snap.Pairs) != 2 {
			t.Fatalf("tick %d: %d pairs", tick, len(snap.Pairs))
		}
		if d := snap.Pairs[1].X - snap.Pairs[0].X; d != cfg.Obstacles.Spacing {
			t.Fatalf("tick %d: spacing %v", tick, d)
		}
	}
}

func TestMachineDeterminism(t *testing.T) {
	cfg := config.DefaultConfig()
	run := func() []Snapshot {
		m := newTestMachine(t, cfg, 12345)
		pilot := NewAutopilot(cfg)
		noise := rand.New(rand.NewSource(1))

		var snaps []Snapshot
		for i := 0; i < 1500; i++ {
			in := pilot.Decide(m.Snapshot())
			if noise.Intn(25) == 0 {
				in.Set(core.ActionFlap)
			}
			m.Step(in)
			snaps = append(snaps, m.Snapshot())
		}
		return snaps
	}

	a, b := run(), run()
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Fatalf("runs diverged at tick %d:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	m := newTestMachine(t, config.DefaultConfig(), 1)
	startPlaying(t, m)

	snap := m.Snapshot()
	snap.Pairs[0].X = -1000
	snap.Avatar.Y = -1000

	again := m.Snapshot()
	if again.Pairs[0].X == -1000 || again.Avatar.Y == -1000 {
		t.Error("mutating a snapshot changed machine state")
	}
}

func TestBestScoreSurvivesSessions(t *testing.T) {
	cfg := config.DefaultConfig()
	m := newTestMachine(t, cfg, 1)
	startPlaying(t, m)
	m.session.score.score = 7
	m.session.body.Y = cfg.RestY()
	m.Step(core.NewInputFrame())

	if got := m.Snapshot().BestScore; got != 7 {
		t.Fatalf("BestScore = %d, expected 7", got)
	}
	for m.Phase() != PhaseWelcome {
		m.Step(core.NewInputFrame())
	}
	if got := m.Snapshot().BestScore; got != 7 {
		t.Errorf("BestScore after returning to welcome = %d, expected 7", got)
	}
}

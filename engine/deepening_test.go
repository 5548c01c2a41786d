package engine

import (
	"errors"
	"testing"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
)

var errDepthFailed = errors.New("depth failed")

// fakeClock lets controller tests script the passage of time.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time {
	return f.t
}

func (f *fakeClock) advance(d time.Duration) {
	f.t = f.t.Add(d)
}

func newTestController(clock *fakeClock, search rootSearchFunc) *Controller {
	c := NewController(NewClassicEvaluator(), zerolog.Nop())
	c.now = clock.now
	c.rootSearch = search
	return c
}

func TestControllerSingleLegalMoveSkipsSearch(t *testing.T) {
	clock := &fakeClock{}
	calls := 0
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		calls++
		return depthResult{}
	})

	pos := NewPosition("R6k/7p/8/8/8/8/8/7K b - - 0 1")
	move := c.ChooseMove(pos, Clock{Remaining: time.Minute}, nil, 0)
	if move != mustMove(t, "h8g7") {
		t.Errorf("forced move: got %v", move)
	}
	if calls != 0 {
		t.Errorf("forced move still ran %d depths", calls)
	}
}

func TestControllerNoLegalMoves(t *testing.T) {
	clock := &fakeClock{}
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		t.Fatalf("searched a position with no legal moves")
		return depthResult{}
	})

	pos := NewPosition("k7/8/1Q6/8/8/8/8/K7 b - - 0 1")
	if move := c.ChooseMove(pos, Clock{Remaining: time.Minute}, nil, 0); move != NoMove {
		t.Errorf("stalemate returned %v", move)
	}
}

func TestControllerEarlyExitAfterDepth3(t *testing.T) {
	clock := &fakeClock{}
	best := dragon.Move(0)
	calls := 0
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		calls++
		clock.advance(10 * time.Millisecond)
		if best == NoMove {
			best, _ = dragon.ParseMove("e2e4")
		}
		return depthResult{move: best}
	})

	move := c.ChooseMove(NewStartPosition(), Clock{Remaining: 5 * time.Minute}, nil, 0)
	if move != best {
		t.Errorf("got %v, expected %v", move, best)
	}
	if calls != 3 {
		t.Errorf("ran %d depths, expected early exit after 3", calls)
	}
}

func TestControllerTimeSafety(t *testing.T) {
	// A search stand-in whose cost explodes with depth. The controller can
	// never abort a running depth, so it has to refuse the bad ones up
	// front and still leave the reserve on the clock.
	clocks := []Clock{
		{Remaining: 20 * time.Second},
		{Remaining: 10 * time.Second, Increment: time.Second},
		{Remaining: 6 * time.Second},
	}
	moves := []string{"e2e4", "d2d4", "g1f3", "c2c4", "b1c3", "e2e3", "a2a3", "h2h3"}

	for _, gameClock := range clocks {
		clock := &fakeClock{}
		cost := 200 * time.Millisecond
		depthsRun := 0
		c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
			depthsRun++
			clock.advance(cost)
			cost *= 8
			move, _ := dragon.ParseMove(moves[depth%len(moves)])
			return depthResult{move: move}
		})

		start := clock.now()
		move := c.ChooseMove(NewStartPosition(), gameClock, nil, 0)
		elapsed := clock.now().Sub(start)

		if move == NoMove {
			t.Errorf("clock %v: no move returned", gameClock)
		}
		if depthsRun == 0 {
			t.Errorf("clock %v: no depth ever ran", gameClock)
		}
		if elapsed > gameClock.Remaining-ClockReserve {
			t.Errorf("clock %v: spent %v, reserve violated", gameClock, elapsed)
		}
	}
}

func TestControllerFailureUsesLastGoodDepth(t *testing.T) {
	clock := &fakeClock{}
	d1 := "e2e4"
	d2 := "d2d4"
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		clock.advance(time.Millisecond)
		switch depth {
		case 1:
			move, _ := dragon.ParseMove(d1)
			return depthResult{move: move}
		case 2:
			move, _ := dragon.ParseMove(d2)
			return depthResult{move: move}
		default:
			return depthResult{err: errDepthFailed}
		}
	})

	move := c.ChooseMove(NewStartPosition(), Clock{Remaining: 5 * time.Minute}, nil, 0)
	if move != mustMove(t, d2) {
		t.Errorf("got %v, expected the depth-2 move %s", move, d2)
	}
}

func TestControllerFailureBeforeAnyDepthFallsBack(t *testing.T) {
	clock := &fakeClock{}
	allowed := []dragon.Move{mustMove(t, "e2e4"), mustMove(t, "d2d4")}
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		clock.advance(time.Millisecond)
		return depthResult{err: errDepthFailed}
	})

	move := c.ChooseMove(NewStartPosition(), Clock{Remaining: 5 * time.Minute}, allowed, 0)
	if move != allowed[0] && move != allowed[1] {
		t.Errorf("fallback move %v outside the allowed set", move)
	}
}

func TestControllerPanicModeDepthLid(t *testing.T) {
	clock := &fakeClock{}
	moves := []string{"a2a3", "e2e4", "d2d4", "g1f3", "c2c4", "b1c3"}
	calls := 0
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		calls++
		clock.advance(time.Millisecond)
		move, _ := dragon.ParseMove(moves[depth])
		return depthResult{move: move}
	})

	c.ChooseMove(NewStartPosition(), Clock{Remaining: 3 * time.Second}, nil, 0)
	if calls != PanicDepth {
		t.Errorf("panic mode ran %d depths, expected %d", calls, PanicDepth)
	}
}

func TestControllerExplicitDepthLid(t *testing.T) {
	clock := &fakeClock{}
	moves := []string{"a2a3", "e2e4", "d2d4", "g1f3", "c2c4", "b1c3"}
	calls := 0
	c := newTestController(clock, func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult {
		calls++
		clock.advance(time.Millisecond)
		move, _ := dragon.ParseMove(moves[depth])
		return depthResult{move: move}
	})

	c.ChooseMove(NewStartPosition(), Clock{Remaining: 5 * time.Minute}, nil, 2)
	if calls != 2 {
		t.Errorf("explicit depth lid 2 ran %d depths", calls)
	}
}

func TestBudgetRespectsCapsAndFloor(t *testing.T) {
	// Floor: a tiny per-move share still gets the minimum think time.
	b := budget(Clock{Remaining: time.Minute}, phaseOpening, false)
	if b < MinMoveTime {
		t.Errorf("budget %v below the minimum move time", b)
	}

	// Cap: one move never eats more than the configured fraction.
	b = budget(Clock{Remaining: time.Minute, Increment: time.Minute}, phaseMiddlegame, false)
	if b > time.Duration(float64(time.Minute)*MaxTimeFrac) {
		t.Errorf("budget %v above the per-move cap", b)
	}

	// Reserve: always leave something on the clock.
	b = budget(Clock{Remaining: 2500 * time.Millisecond}, phaseLateEndgame, true)
	if b > 2500*time.Millisecond-ClockReserve {
		t.Errorf("budget %v violates the clock reserve", b)
	}
}

func TestClassifyPhase(t *testing.T) {
	tests := []struct {
		fen   string
		phase string
	}{
		{dragon.Startpos, "opening"},
		// Full material but deep into the game.
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 30", "middlegame"},
		{"r3k2r/pppp4/8/8/8/8/PPPP4/R3K2R w - - 0 30", "early-endgame"},
		{"k7/8/8/8/8/8/8/KQ6 w - - 0 60", "late-endgame"},
	}
	for _, test := range tests {
		if got := classifyPhase(NewPosition(test.fen)); got.name != test.phase {
			t.Errorf("phase of %q = %s, expected %s", test.fen, got.name, test.phase)
		}
	}
}

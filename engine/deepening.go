package engine

import (
	"fmt"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"
)

// Iterative deepening controller. Runs the root driver at increasing depths
// until the clock says stop. Time checks happen only between depths - a
// running depth always finishes - so the controller's job is to predict
// whether the next depth still fits and refuse it otherwise.

// Clock is the caller's view of the time control.
type Clock struct {
	Remaining time.Duration
	Increment time.Duration
}

// gamePhaseT carries the per-phase time heuristics: how many more moves to
// budget for, how generously to spend, and how deep it is worth going.
type gamePhaseT struct {
	name          string
	movesToGo     float64
	multiplier    float64
	maxDepth      int
	baselineRatio float64 // assumed depth-over-depth time growth until measured
}

var (
	phaseOpening      = gamePhaseT{"opening", 35, 0.6, 8, 4.5}
	phaseMiddlegame   = gamePhaseT{"middlegame", 25, 1.2, 12, 6.5}
	phaseEarlyEndgame = gamePhaseT{"early-endgame", 20, 1.0, 16, 5.5}
	phaseLateEndgame  = gamePhaseT{"late-endgame", 15, 0.8, 20, 5.5}
)

func classifyPhase(pos *Position) gamePhaseT {
	pieces := pos.PieceCount()
	switch {
	case pieces >= 28 && pos.MoveNumber() <= 15:
		return phaseOpening
	case pieces >= 20:
		return phaseMiddlegame
	case pieces >= 10:
		return phaseEarlyEndgame
	default:
		return phaseLateEndgame
	}
}

// IterationRecord is what one completed depth produced.
type IterationRecord struct {
	Depth   int
	Move    dragon.Move
	Score   EvalCp
	Elapsed time.Duration
}

// depthResult distinguishes a completed depth from an abandoned one, so
// failure handling is an ordinary branch.
type depthResult struct {
	move  dragon.Move
	score EvalCp
	err   error
}

type rootSearchFunc func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) depthResult

// Controller owns the deepening loop for one engine instance.
type Controller struct {
	searcher *Searcher
	log      zerolog.Logger

	// Replaceable in tests: the clock source and the per-depth search.
	now        func() time.Time
	rootSearch rootSearchFunc
}

func NewController(eval Evaluator, log zerolog.Logger) *Controller {
	searcher := NewSearcher(eval)
	c := &Controller{
		searcher: searcher,
		log:      log,
		now:      time.Now,
	}
	c.rootSearch = func(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) (res depthResult) {
		// A panic during search abandons this depth; the controller falls
		// back to the deepest completed result.
		defer func() {
			if r := recover(); r != nil {
				res = depthResult{err: fmt.Errorf("root search panicked at depth %d: %v", depth, r)}
			}
		}()
		move, score := searcher.PickMove(pos, depth, allowed, prevBest)
		return depthResult{move: move, score: score}
	}
	return c
}

// budget computes how long this move may take.
func budget(clock Clock, phase gamePhaseT, panicMode bool) time.Duration {
	b := time.Duration(float64(clock.Remaining)/phase.movesToGo*phase.multiplier) +
		time.Duration(float64(clock.Increment)*IncrementUsage)
	if b < MinMoveTime {
		b = MinMoveTime
	}
	frac := MaxTimeFrac
	if panicMode {
		frac = PanicTimeFrac
	}
	if lid := time.Duration(float64(clock.Remaining) * frac); b > lid {
		b = lid
	}
	// Always leave the reserve on the clock after this move.
	if lid := clock.Remaining - ClockReserve; b > lid {
		b = lid
	}
	if b < 0 {
		b = 0
	}
	return b
}

// worstRatio is the worst observed depth-over-depth time growth, or the
// phase baseline when there is not enough history to measure one.
func worstRatio(records []IterationRecord, phase gamePhaseT) float64 {
	ratio := 0.0
	for i := 1; i < len(records); i++ {
		prev := records[i-1].Elapsed
		if prev <= 0 {
			prev = time.Millisecond
		}
		r := float64(records[i].Elapsed) / float64(prev)
		if r > ratio {
			ratio = r
		}
	}
	if ratio == 0.0 {
		ratio = phase.baselineRatio
	}
	if ratio > MaxRatioCap {
		ratio = MaxRatioCap
	}
	return ratio
}

// ChooseMove picks a move for the side to move under the given clock,
// optionally restricted to an allowed move subset, with maxDepth > 0 forcing
// an explicit depth lid. Returns NoMove only when the (restricted) legal set
// is empty.
func (c *Controller) ChooseMove(pos *Position, clock Clock, allowed []dragon.Move, maxDepth int) dragon.Move {
	rootMoves := restrictMoves(pos.LegalMoves(), allowed)
	if len(rootMoves) == 0 {
		return NoMove
	}
	if len(rootMoves) == 1 {
		return rootMoves[0]
	}

	phase := classifyPhase(pos)
	panicMode := clock.Remaining < PanicThreshold
	allocated := budget(clock, phase, panicMode)

	depthLid := phase.maxDepth
	if panicMode && depthLid > PanicDepth {
		depthLid = PanicDepth
	}
	if maxDepth > 0 && maxDepth < depthLid {
		depthLid = maxDepth
	}

	c.log.Debug().
		Str("phase", phase.name).
		Bool("panic", panicMode).
		Dur("budget", allocated).
		Int("maxDepth", depthLid).
		Msg("starting search")

	start := c.now()
	var records []IterationRecord
	stableFor := 0 // consecutive depths agreeing on the best move

	for depth := 1; depth <= depthLid; depth++ {
		elapsed := c.now().Sub(start)
		slack := clock.Remaining - elapsed

		if elapsed > time.Duration(float64(allocated)*SafetyMargin) {
			break
		}
		if slack < MinSlackToStart {
			break
		}

		if len(records) > 0 {
			last := records[len(records)-1].Elapsed
			predicted := time.Duration(float64(last) * worstRatio(records, phase) * PredInflation)

			frac := 1.0
			switch {
			case stableFor >= 2:
				frac = PVStableStrictFrac
			case stableFor == 1:
				frac = PVStableLenientFrac
			}
			if elapsed+predicted > time.Duration(float64(allocated)*frac) {
				break
			}
			// Hard guard against a blow-up the prediction missed.
			if time.Duration(float64(last)*HardGuardFactor) > slack {
				break
			}
		}

		prevBest := NoMove
		if len(records) > 0 {
			prevBest = records[len(records)-1].Move
		}

		depthStart := c.now()
		result := c.rootSearch(pos, depth, rootMoves, prevBest)
		depthTime := c.now().Sub(depthStart)

		if result.err != nil {
			// Abandon this depth only; earlier depths remain good.
			c.log.Warn().Err(result.err).Int("depth", depth).Msg("search depth abandoned")
			break
		}

		if prevBest != NoMove && result.move == prevBest {
			stableFor++
		} else {
			stableFor = 0
		}
		records = append(records, IterationRecord{
			Depth:   depth,
			Move:    result.move,
			Score:   result.score,
			Elapsed: depthTime,
		})

		c.log.Debug().
			Int("depth", depth).
			Str("move", result.move.String()).
			Int("score", int(result.score)).
			Dur("elapsed", depthTime).
			Str("stats", c.searcher.Stats().String()).
			Msg("depth complete")

		// Cheap convergence signal: depth 3 agreeing with depth 1 or 2.
		if depth == 3 && (result.move == records[0].Move || result.move == records[1].Move) {
			break
		}
	}

	if len(records) == 0 {
		// Never ran a full depth - any legal move beats no move.
		return rootMoves[0]
	}
	best := records[len(records)-1]
	c.log.Info().
		Int("depth", best.Depth).
		Str("move", best.Move.String()).
		Int("score", int(best.Score)).
		Dur("elapsed", c.now().Sub(start)).
		Msg("move chosen")
	return best.Move
}

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// Searcher picks moves at a fixed depth. Each PickMove call owns a fresh
// transposition table, so results never leak across root positions.
type Searcher struct {
	eval  Evaluator
	stats SearchStatsT // counters from the most recent PickMove
}

func NewSearcher(eval Evaluator) *Searcher {
	return &Searcher{eval: eval}
}

func (s *Searcher) Stats() *SearchStatsT {
	return &s.stats
}

// restrictMoves keeps only the legal moves whose identity appears in the
// allowed set. A nil set allows everything.
func restrictMoves(legal []dragon.Move, allowed []dragon.Move) []dragon.Move {
	if allowed == nil {
		return legal
	}
	allowedSet := make(map[string]bool, len(allowed))
	for _, move := range allowed {
		allowedSet[move.String()] = true
	}
	var kept []dragon.Move
	for _, move := range legal {
		if allowedSet[move.String()] {
			kept = append(kept, move)
		}
	}
	return kept
}

// PickMove returns the best move at the given depth, optionally restricted
// to a subset of the legal moves. It returns NoMove only when the
// (restricted) legal set is empty. prevBest, when supplied, seeds move
// ordering and an aspiration window.
func (s *Searcher) PickMove(pos *Position, depth int, allowed []dragon.Move, prevBest dragon.Move) (dragon.Move, EvalCp) {
	s.stats = SearchStatsT{}

	rootMoves := restrictMoves(pos.LegalMoves(), allowed)
	if len(rootMoves) == 0 {
		return NoMove, DrawEval
	}
	if len(rootMoves) == 1 {
		// Nothing to decide.
		return rootMoves[0], DrawEval
	}

	srch := newSearch(pos, s.eval)
	srch.stats = &s.stats

	// Seed an aspiration window around the previous iteration's best move.
	// Too shallow a depth and the narrow window costs more than it saves.
	lo, hi := -InfEval, InfEval
	if prevBest != NoMove && depth >= MinAspirationDepth {
		unapply := pos.Push(prevBest)
		seed := -srch.negamax(depth-1, -InfEval, InfEval, 1)
		unapply()
		lo, hi = seed-AspirationWindow, seed+AspirationWindow
	}

	bestMove := NoMove
	bestScore := -InfEval
	for _, move := range orderMoves(pos, rootMoves, prevBest) {
		unapply := pos.Push(move)
		childDepth := depth - 1
		if pos.InCheck() {
			childDepth++
		}
		score := -srch.negamax(childDepth, -hi, -lo, 1)
		if score <= lo || score >= hi {
			// Aspiration failure - redo this move with the full window so a
			// narrow guess never mis-ranks it.
			s.stats.Researches++
			score = -srch.negamax(childDepth, -InfEval, InfEval, 1)
		}
		unapply()

		// Strict improvement only, so ties keep the first-found move.
		if score > bestScore {
			bestScore = score
			bestMove = move
		}
	}
	return bestMove, bestScore
}

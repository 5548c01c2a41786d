package engine

// search bundles the state threaded through one root search: the position
// being mutated, the evaluator, the per-search transposition table and the
// counters. Single-threaded by construction.
type search struct {
	pos   *Position
	eval  Evaluator
	tt    TranspoTableT
	stats *SearchStatsT
}

func newSearch(pos *Position, eval Evaluator) *search {
	return &search{
		pos:   pos,
		eval:  eval,
		tt:    NewTranspoTable(),
		stats: &SearchStatsT{},
	}
}

// negamax returns the score of the position from the side to move's
// perspective. Fail-soft: the return value may fall outside [alpha, beta].
func (s *search) negamax(depth int, alpha EvalCp, beta EvalCp, ply int) EvalCp {
	s.stats.Nodes++

	if ply >= MaxPly {
		return NegaEvaluate(s.eval, s.pos)
	}

	// Claimable draws are scored before the table is consulted, so they are
	// never cached as if they were tactical results.
	if s.pos.CanClaimFiftyMoves() || s.pos.CanClaimThreefold() {
		s.stats.DrawClaims++
		return DrawEval - Contempt
	}

	legal := s.pos.LegalMoves()
	if len(legal) == 0 {
		s.stats.Mates++
		if s.pos.InCheck() {
			// Deeper mates score closer to zero, so shorter ones win.
			return -(MateEval - EvalCp(ply))
		}
		return DrawEval - Contempt
	}
	if s.pos.InsufficientMaterial() {
		s.stats.DrawClaims++
		return DrawEval - Contempt
	}

	key := s.pos.Key()
	hint := NoMove
	if entry, ok := s.tt.Lookup(key); ok {
		if entry.Move != NoMove {
			hint = entry.Move
			s.stats.TTMoveHints++
		}
		if entry.Depth >= depth {
			s.stats.TTHits++
			switch entry.Bound {
			case TTExact:
				return entry.Score
			case TTLowerBound:
				if entry.Score > alpha {
					alpha = entry.Score
				}
			case TTUpperBound:
				if entry.Score < beta {
					beta = entry.Score
				}
			}
			if alpha >= beta {
				return entry.Score
			}
		}
	}

	if depth <= 0 {
		return s.qsearch(alpha, beta, 0)
	}

	origAlpha, origBeta := alpha, beta
	bestScore := -InfEval
	bestMove := NoMove

	for _, move := range orderMoves(s.pos, legal, hint) {
		unapply := s.pos.Push(move)
		childDepth := depth - 1
		if s.pos.InCheck() {
			// Check extension - forcing lines get one more ply.
			childDepth++
		}
		score := -s.negamax(childDepth, -beta, -alpha, ply+1)
		unapply()

		if score > bestScore {
			bestScore = score
			bestMove = move
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			s.stats.Cuts++
			break
		}
	}

	bound := TTExact
	if bestScore <= origAlpha {
		bound = TTUpperBound
	} else if bestScore >= origBeta {
		bound = TTLowerBound
	}
	s.tt.Store(key, TTEntryT{Depth: depth, Bound: bound, Score: bestScore, Move: bestMove})

	return bestScore
}

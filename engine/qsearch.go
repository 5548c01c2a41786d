package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// Quiescence search - resolve hanging tactics at the horizon before trusting
// the static evaluation. Only captures, queen promotions and check evasions
// are explored, to a bounded depth.

func (s *search) qsearch(alpha EvalCp, beta EvalCp, qDepth int) EvalCp {
	s.stats.QNodes++

	if qDepth >= QSearchDepth {
		return NegaEvaluate(s.eval, s.pos)
	}

	inCheck := s.pos.InCheck()

	if !inCheck && (s.pos.CanClaimFiftyMoves() || s.pos.CanClaimThreefold() || s.pos.InsufficientMaterial()) {
		s.stats.DrawClaims++
		return DrawEval - Contempt
	}

	standPat := -InfEval
	if !inCheck {
		standPat = NegaEvaluate(s.eval, s.pos)
		if standPat >= beta {
			s.stats.QPats++
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
		// Delta pruning - no tactic on the board recovers this much.
		if standPat < alpha-QDeltaMargin {
			s.stats.QDeltas++
			return alpha
		}
	}

	legal := s.pos.LegalMoves()
	if len(legal) == 0 {
		if inCheck {
			s.stats.Mates++
			return -MateEval + EvalCp(qDepth)
		}
		s.stats.DrawClaims++
		return DrawEval - Contempt
	}

	var candidates []dragon.Move
	if inCheck {
		// Evasions are searched exhaustively.
		candidates = legal
	} else {
		for _, move := range legal {
			if s.pos.IsCapture(move) {
				if badCapture(s.pos, move) {
					continue
				}
				candidates = append(candidates, move)
			} else if move.Promote() == dragon.Queen {
				candidates = append(candidates, move)
			}
		}
		if len(candidates) == 0 {
			return alpha
		}
		candidates = orderCaptures(s.pos, candidates)
	}

	for _, move := range candidates {
		unapply := s.pos.Push(move)
		score := -s.qsearch(-beta, -alpha, qDepth+1)
		unapply()
		if score >= beta {
			s.stats.QCuts++
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

// badCapture is a cheap static-exchange stand-in: skip captures where the
// attacker outvalues the victim by a wide margin.
func badCapture(pos *Position, move dragon.Move) bool {
	victim := pieceVals[pos.CapturedPiece(move)]
	attacker := pieceVals[pos.MovedPiece(move)]
	return attacker > victim+QBadCaptureMargin
}

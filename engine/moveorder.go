package engine

import (
	"sort"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Move ordering for the full-width search. Scores are additive, so a
// checking promotion-capture collects every applicable bonus. The hint move
// (usually the transposition table's remembered best) dominates everything
// else.

func moveScore(pos *Position, move dragon.Move, hint dragon.Move) int {
	if move == hint && hint != NoMove {
		return scoreTTMove
	}
	score := 0
	if promo := move.Promote(); promo != dragon.Nothing {
		score += scorePromotionBase + int(pieceVals[promo])
	}
	if pos.IsCapture(move) {
		score += scoreCaptureBase + mvvLva(pos, move)
	}
	if pos.GivesCheck(move) {
		score += scoreCheck
	}
	return score
}

// mvvLva prefers taking valuable pieces with cheap ones, and orders equal
// captures by attacker cost.
func mvvLva(pos *Position, move dragon.Move) int {
	victim := int(pieceVals[pos.CapturedPiece(move)])
	attacker := int(pieceVals[pos.MovedPiece(move)])
	return 10000*victim - attacker
}

// orderMoves returns the moves sorted best-first. The input slice is left
// untouched; ties keep generation order.
func orderMoves(pos *Position, moves []dragon.Move, hint dragon.Move) []dragon.Move {
	ordered := make([]dragon.Move, len(moves))
	copy(ordered, moves)
	scores := make(map[dragon.Move]int, len(ordered))
	for _, move := range ordered {
		scores[move] = moveScore(pos, move, hint)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return scores[ordered[i]] > scores[ordered[j]]
	})
	return ordered
}

// orderCaptures is the cheap ordering used in quiescence - MVV-LVA only.
func orderCaptures(pos *Position, moves []dragon.Move) []dragon.Move {
	ordered := make([]dragon.Move, len(moves))
	copy(ordered, moves)
	scores := make(map[dragon.Move]int, len(ordered))
	for _, move := range ordered {
		if pos.IsCapture(move) {
			scores[move] = mvvLva(pos, move)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return scores[ordered[i]] > scores[ordered[j]]
	})
	return ordered
}

// King safety terms - pawn shield, open lines near the king, and pressure on
// the king zone. Penalties are computed per side and returned as a
// (white - black) delta for each game phase.

package engine

import (
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Pawn shield: missing a pawn on rank 2 (rank 7 for black) hurts most, one on
// rank 3 (rank 6) is a partial consolation.
const pawnShieldRank2 = 30
const pawnShieldRank3 = 15
const pawnShieldMissingBoth = 35

// (Semi-)open files next to the king.
const semiOpenNearKing = 12
const openNearKing = 10
const clearFileRookQueen = 30

// Enemy attacker weights into the king zone, indexed by dragon.Piece.
// Unique attackers - each attacking piece is counted once.
var kingAttackWeights = [7]int{0, 9, 13, 13, 20, 26, 0}

// King-zone pressure counts stronger than pawn/line structure.
const attackWeightScale = 1.2

// Endgame dampening of king safety once heavy pieces come off.
const egDampNoQueen = 0.35
const egDampWithQueen = 0.55

func kingSafetyEval(board *dragon.Board) (EvalCp, EvalCp) {
	wPen := shieldPenalty(board, true) + openFilesPenalty(board, true) +
		int(attackWeightScale*float64(kingZonePenalty(board, true)))
	bPen := shieldPenalty(board, false) + openFilesPenalty(board, false) +
		int(attackWeightScale*float64(kingZonePenalty(board, false)))

	wEgFactor := egDampNoQueen
	if board.Black.Queens != 0 {
		wEgFactor = egDampWithQueen
	}
	bEgFactor := egDampNoQueen
	if board.White.Queens != 0 {
		bEgFactor = egDampWithQueen
	}

	mgDelta := EvalCp(bPen - wPen)
	egDelta := EvalCp(int(bEgFactor*float64(bPen)) - int(wEgFactor*float64(wPen)))
	return mgDelta, egDelta
}

// Files adjacent to the king (including its own), as a bitboard mask.
func kingFilesMask(kings uint64) uint64 {
	files := FileFill(kings)
	return files | ((files & ^A) >> 1) | ((files & ^H) << 1)
}

func shieldPenalty(board *dragon.Board, white bool) int {
	var kings, pawns uint64
	var rank2Shift, rank3Shift uint
	if white {
		kings, pawns = board.White.Kings, board.White.Pawns
		rank2Shift, rank3Shift = 8, 16
	} else {
		kings, pawns = board.Black.Kings, board.Black.Pawns
		rank2Shift, rank3Shift = 48, 40
	}

	rank2 := uint64(0xff) << rank2Shift
	rank3 := uint64(0xff) << rank3Shift

	penalty := 0
	filesMask := kingFilesMask(kings)
	for fileBit := A; fileBit != 0x0; fileBit <<= 1 {
		file := FileFill(fileBit)
		if file&filesMask == 0 {
			continue
		}
		hasR2 := pawns&file&rank2 != 0
		hasR3 := pawns&file&rank3 != 0
		if !hasR2 {
			penalty += pawnShieldRank2
		}
		if !hasR3 {
			penalty += pawnShieldRank3
		}
		if !hasR2 && !hasR3 {
			penalty += pawnShieldMissingBoth
		}
		if fileBit&H != 0 {
			break
		}
	}
	return penalty
}

func openFilesPenalty(board *dragon.Board, white bool) int {
	var own, enemy *dragon.Bitboards
	if white {
		own, enemy = &board.White, &board.Black
	} else {
		own, enemy = &board.Black, &board.White
	}

	kings := own.Kings
	filesMask := kingFilesMask(kings)
	ownPawnFiles := FileFill(own.Pawns)
	enemyPawnFiles := FileFill(enemy.Pawns)

	penalty := 0
	for fileBit := A; fileBit != 0x0; fileBit <<= 1 {
		file := FileFill(fileBit)
		if file&filesMask == 0 {
			continue
		}
		if file&ownPawnFiles == 0 {
			penalty += semiOpenNearKing
			if file&enemyPawnFiles == 0 {
				penalty += openNearKing
			}
		}
		if fileBit&H != 0 {
			break
		}
	}

	// Extra if an enemy rook/queen has a clear file line to the king.
	kingSq := uint8(bits.TrailingZeros64(kings))
	occupied := board.White.All | board.Black.All
	heavies := enemy.Rooks | enemy.Queens
	kingFile := FileOf(kingSq)
	if heavies&kingFile != 0 {
		up := fileRayBlocked(kings, occupied, N)
		down := fileRayBlocked(kings, occupied, S)
		if (up|down)&heavies != 0 {
			penalty += clearFileRookQueen
		}
	}
	return penalty
}

// fileRayBlocked walks from the king along a file direction and returns the
// first occupied square reached (as a bitboard), stopping there.
func fileRayBlocked(from uint64, occupied uint64, shift func(uint64) uint64) uint64 {
	for sq := shift(from); sq != 0; sq = shift(sq) {
		if sq&occupied != 0 {
			return sq
		}
	}
	return 0
}

// Weighted count of unique enemy pieces attacking the king zone.
func kingZonePenalty(board *dragon.Board, white bool) int {
	var own, enemy *dragon.Bitboards
	enemyIsWhite := !white
	if white {
		own, enemy = &board.White, &board.Black
	} else {
		own, enemy = &board.Black, &board.White
	}

	zone := KingZone(own.Kings)
	empty := ^(board.White.All | board.Black.All)

	penalty := 0

	for pawns := enemy.Pawns; pawns != 0; pawns &= pawns - 1 {
		pawn := pawns & -pawns
		attacks := BPawnAttacks(pawn)
		if enemyIsWhite {
			attacks = WPawnAttacks(pawn)
		}
		if attacks&zone != 0 {
			penalty += kingAttackWeights[dragon.Pawn]
		}
	}
	for knights := enemy.Knights; knights != 0; knights &= knights - 1 {
		if knightAttacks(knights&-knights)&zone != 0 {
			penalty += kingAttackWeights[dragon.Knight]
		}
	}
	for bishops := enemy.Bishops; bishops != 0; bishops &= bishops - 1 {
		if diagAttacks(bishops&-bishops, empty)&zone != 0 {
			penalty += kingAttackWeights[dragon.Bishop]
		}
	}
	for rooks := enemy.Rooks; rooks != 0; rooks &= rooks - 1 {
		if orthoAttacks(rooks&-rooks, empty)&zone != 0 {
			penalty += kingAttackWeights[dragon.Rook]
		}
	}
	for queens := enemy.Queens; queens != 0; queens &= queens - 1 {
		queen := queens & -queens
		if (diagAttacks(queen, empty)|orthoAttacks(queen, empty))&zone != 0 {
			penalty += kingAttackWeights[dragon.Queen]
		}
	}
	return penalty
}

func knightAttacks(knights uint64) uint64 {
	l1 := (knights >> 1) & 0x7f7f7f7f7f7f7f7f
	l2 := (knights >> 2) & 0x3f3f3f3f3f3f3f3f
	r1 := (knights << 1) & 0xfefefefefefefefe
	r2 := (knights << 2) & 0xfcfcfcfcfcfcfcfc
	h1 := l1 | r1
	h2 := l2 | r2
	return (h1 << 16) | (h1 >> 16) | (h2 << 8) | (h2 >> 8)
}

// Occupancy-aware slider attacks by repeated flood shifts (dumb7fill).
func slideAttacks(sliders uint64, empty uint64, shift func(uint64) uint64) uint64 {
	var flood uint64
	bb := sliders
	for bb != 0 {
		flood |= bb
		bb = shift(bb) & empty
	}
	return shift(flood)
}

func diagAttacks(sliders uint64, empty uint64) uint64 {
	return slideAttacks(sliders, empty, func(bb uint64) uint64 { return N(E(bb)) }) |
		slideAttacks(sliders, empty, func(bb uint64) uint64 { return N(W(bb)) }) |
		slideAttacks(sliders, empty, func(bb uint64) uint64 { return S(E(bb)) }) |
		slideAttacks(sliders, empty, func(bb uint64) uint64 { return S(W(bb)) })
}

func orthoAttacks(sliders uint64, empty uint64) uint64 {
	return slideAttacks(sliders, empty, N) |
		slideAttacks(sliders, empty, S) |
		slideAttacks(sliders, empty, E) |
		slideAttacks(sliders, empty, W)
}

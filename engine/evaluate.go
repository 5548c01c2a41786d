package engine

import (
	"math/bits"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Eval in centi-pawns, i.e. 100 === 1 pawn, positive favouring white.
type EvalCp int32

// Wider than any real eval - used for the unbounded alpha-beta window.
// Note - never use the asymmetric MinInt minimum, negation must be safe.
const InfEval EvalCp = 1 << 30

// Mate scores are given as +/-(MateEval - pliesToMate) so that shorter mates
// score strictly higher for the winning side.
const MateEval EvalCp = 900_000

const DrawEval EvalCp = 0

// Piece values, indexed by dragon.Piece (Nothing, P, N, B, R, Q, K).
const (
	nothingVal = 0
	pawnVal    = 100
	knightVal  = 320
	bishopVal  = 330
	rookVal    = 500
	queenVal   = 900
	kingVal    = 0
)

var pieceVals = [7]EvalCp{
	nothingVal,
	pawnVal,
	knightVal,
	bishopVal,
	rookVal,
	queenVal,
	kingVal}

// Game-phase weights per piece type (standard total 24).
var phaseWeights = [7]int{0, 0, 1, 1, 2, 4, 0}

const totalPhase = 24

const tempoBonus EvalCp = 10

const bishopPairMg EvalCp = 30
const bishopPairEg EvalCp = 40

// White-oriented piece-square tables, index 0 is A1, index 63 is H8.
// Black reuses them with the rank mirrored.
var pawnPosVals = [64]int8{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, -20, -20, 10, 10, 5,
	5, -5, -10, 0, 0, -10, -5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, 5, 10, 25, 25, 10, 5, 5,
	10, 10, 20, 30, 30, 20, 10, 10,
	50, 50, 50, 50, 50, 50, 50, 50,
	0, 0, 0, 0, 0, 0, 0, 0}

var knightPosVals = [64]int8{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50}

var bishopPosVals = [64]int8{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -10, -10, -10, -10, -20}

var rookPosVals = [64]int8{
	0, 0, 5, 10, 10, 5, 0, 0,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	5, 10, 10, 10, 10, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0}

var queenPosVals = [64]int8{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-10, 5, 5, 5, 5, 5, 0, -10,
	0, 0, 5, 5, 5, 5, 0, -5,
	-5, 0, 5, 5, 5, 5, 0, -5,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20}

// Middlegame king table - favour castled corners.
var kingPosVals = [64]int8{
	20, 30, 10, 0, 0, 10, 30, 20,
	20, 20, 0, 0, 0, 0, 20, 20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30}

// Endgame king table - encourage a central, active king.
var kingEndgamePosVals = [64]int8{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -10, 0, 0, 0, 0, -10, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, -10, 0, 0, 0, 0, -10, -30,
	-50, -30, -30, -30, -30, -30, -30, -50}

var piecePosVals = [7]*[64]int8{
	nil,
	&pawnPosVals,
	&knightPosVals,
	&bishopPosVals,
	&rookPosVals,
	&queenPosVals,
	&kingPosVals}

// The static position evaluator - a replaceable scoring oracle from the
// search's point of view. Scores are white-positive centipawns.
type Evaluator interface {
	Evaluate(pos *Position) EvalCp
}

// ClassicEvaluator is a tapered material + piece-square evaluation with
// bishop-pair, tempo and king-safety terms, backed by a process-lifetime
// cache of previously scored positions.
type ClassicEvaluator struct {
	Cache EvalCacheT
}

func NewClassicEvaluator() *ClassicEvaluator {
	return &ClassicEvaluator{Cache: make(EvalCacheT)}
}

func (e *ClassicEvaluator) Evaluate(pos *Position) EvalCp {
	var fen string
	if e.Cache != nil {
		fen = pos.FEN()
		if eval, ok := e.Cache.Lookup(fen); ok {
			return eval
		}
	}

	board := pos.Board()

	mgScore, egScore := materialEval(board)

	mg, eg := pstEval(&board.White, false)
	mgScore += mg
	egScore += eg
	mg, eg = pstEval(&board.Black, true)
	mgScore -= mg
	egScore -= eg

	mg, eg = bishopPairEval(board)
	mgScore += mg
	egScore += eg

	tempo := tempoBonus
	if !board.Wtomove {
		tempo = -tempoBonus
	}
	mgScore += tempo
	egScore += tempo

	mg, eg = kingSafetyEval(board)
	mgScore += mg
	egScore += eg

	phase := gamePhase(board)
	blended := (mgScore*EvalCp(phase) + egScore*EvalCp(totalPhase-phase)) / totalPhase

	if e.Cache != nil {
		e.Cache.Store(fen, blended)
	}
	return blended
}

// NegaEvaluate returns the static eval from the perspective of the side to
// move - the only sign convention the search itself ever sees.
func NegaEvaluate(e Evaluator, pos *Position) EvalCp {
	eval := e.Evaluate(pos)
	if pos.WhiteToMove() {
		return eval
	}
	return -eval
}

// Phase in [0..totalPhase]; higher means more middlegame.
func gamePhase(board *dragon.Board) int {
	phase := phaseWeights[dragon.Knight] * (bits.OnesCount64(board.White.Knights) + bits.OnesCount64(board.Black.Knights))
	phase += phaseWeights[dragon.Bishop] * (bits.OnesCount64(board.White.Bishops) + bits.OnesCount64(board.Black.Bishops))
	phase += phaseWeights[dragon.Rook] * (bits.OnesCount64(board.White.Rooks) + bits.OnesCount64(board.Black.Rooks))
	phase += phaseWeights[dragon.Queen] * (bits.OnesCount64(board.White.Queens) + bits.OnesCount64(board.Black.Queens))
	if phase > totalPhase {
		phase = totalPhase
	}
	return phase
}

// Material sum (white - black). MG and EG share the same value table.
func materialEval(board *dragon.Board) (EvalCp, EvalCp) {
	eval := piecesEval(&board.White) - piecesEval(&board.Black)
	return eval, eval
}

// Sum of individual piece values
func piecesEval(bitboards *dragon.Bitboards) EvalCp {
	eval := pawnVal * bits.OnesCount64(bitboards.Pawns)
	eval += knightVal * bits.OnesCount64(bitboards.Knights)
	eval += bishopVal * bits.OnesCount64(bitboards.Bishops)
	eval += rookVal * bits.OnesCount64(bitboards.Rooks)
	eval += queenVal * bits.OnesCount64(bitboards.Queens)

	return EvalCp(eval)
}

// Piece-square sums for one side for both phases. Only the king table
// differs between middlegame and endgame.
func pstEval(bitboards *dragon.Bitboards, mirror bool) (EvalCp, EvalCp) {
	common := pieceTypePosVal(bitboards.Pawns, &pawnPosVals, mirror)
	common += pieceTypePosVal(bitboards.Knights, &knightPosVals, mirror)
	common += pieceTypePosVal(bitboards.Bishops, &bishopPosVals, mirror)
	common += pieceTypePosVal(bitboards.Rooks, &rookPosVals, mirror)
	common += pieceTypePosVal(bitboards.Queens, &queenPosVals, mirror)

	mgKing := pieceTypePosVal(bitboards.Kings, &kingPosVals, mirror)
	egKing := pieceTypePosVal(bitboards.Kings, &kingEndgamePosVals, mirror)

	return common + mgKing, common + egKing
}

// Sum of piece position values for a particular type of piece
func pieceTypePosVal(bitmask uint64, posVals *[64]int8, mirror bool) EvalCp {
	var eval EvalCp

	for bitmask != 0 {
		pos := bits.TrailingZeros64(bitmask)
		bitmask &= bitmask - 1

		if mirror {
			pos ^= 56 // flip rank to reuse the white-oriented table
		}
		eval += EvalCp(posVals[pos])
	}

	return eval
}

func bishopPairEval(board *dragon.Board) (EvalCp, EvalCp) {
	var mg, eg EvalCp
	if bits.OnesCount64(board.White.Bishops) >= 2 {
		mg += bishopPairMg
		eg += bishopPairEg
	}
	if bits.OnesCount64(board.Black.Bishops) >= 2 {
		mg -= bishopPairMg
		eg -= bishopPairEg
	}
	return mg, eg
}

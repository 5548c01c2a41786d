package engine

import (
	"testing"
)

// refNegamax mirrors the search's terminal rules but enumerates every move
// with no pruning, no table and no ordering. Pruning must change the work,
// never the answer.
func refNegamax(s *search, depth int, ply int) EvalCp {
	if ply >= MaxPly {
		return NegaEvaluate(s.eval, s.pos)
	}
	if s.pos.CanClaimFiftyMoves() || s.pos.CanClaimThreefold() {
		return DrawEval - Contempt
	}
	legal := s.pos.LegalMoves()
	if len(legal) == 0 {
		if s.pos.InCheck() {
			return -(MateEval - EvalCp(ply))
		}
		return DrawEval - Contempt
	}
	if s.pos.InsufficientMaterial() {
		return DrawEval - Contempt
	}
	if depth <= 0 {
		return s.qsearch(-InfEval, InfEval, 0)
	}

	best := -InfEval
	for _, move := range legal {
		unapply := s.pos.Push(move)
		childDepth := depth - 1
		if s.pos.InCheck() {
			childDepth++
		}
		score := -refNegamax(s, childDepth, ply+1)
		unapply()
		if score > best {
			best = score
		}
	}
	return best
}

func TestNegamaxMatchesPlainEnumeration(t *testing.T) {
	// White wins the queen with Rxd7.
	const fen = "k7/3q4/8/8/8/8/3R4/K7 w - - 0 1"

	ref := newSearch(NewPosition(fen), NewClassicEvaluator())
	want := refNegamax(ref, 3, 0)

	pruned := newSearch(NewPosition(fen), NewClassicEvaluator())
	got := pruned.negamax(3, -InfEval, InfEval, 0)

	if got != want {
		t.Errorf("pruned search %d, plain enumeration %d", got, want)
	}
}

func TestNegamaxDepthZeroMatchesQuiescence(t *testing.T) {
	const fen = "k7/3q4/8/8/8/8/3R4/K7 w - - 0 1"

	qs := newSearch(NewPosition(fen), NewClassicEvaluator())
	want := qs.qsearch(-InfEval, InfEval, 0)

	nm := newSearch(NewPosition(fen), NewClassicEvaluator())
	got := nm.negamax(0, -InfEval, InfEval, 0)

	if got != want {
		t.Errorf("negamax at depth 0 gave %d, quiescence gave %d", got, want)
	}
}

func TestNegamaxMateScores(t *testing.T) {
	// Qb7 is mate on the spot.
	mateIn1 := newSearch(NewPosition("k7/2K5/8/8/8/8/8/1Q6 w - - 0 1"), NewClassicEvaluator())
	got1 := mateIn1.negamax(4, -InfEval, InfEval, 0)
	if got1 != MateEval-1 {
		t.Errorf("mate in 1 scored %d, expected %d", got1, MateEval-1)
	}

	// Kc6 first, then Ka7 forced, then Qb7 mate - three plies.
	mateIn3 := newSearch(NewPosition("k7/8/8/2K5/8/8/8/1Q6 w - - 0 1"), NewClassicEvaluator())
	got3 := mateIn3.negamax(4, -InfEval, InfEval, 0)
	if got3 != MateEval-3 {
		t.Errorf("mate in 3 plies scored %d, expected %d", got3, MateEval-3)
	}

	// The faster mate must score strictly higher.
	if got1 <= got3 {
		t.Errorf("mate in 1 (%d) not preferred over mate in 3 plies (%d)", got1, got3)
	}
}

func TestNegamaxClaimableDrawIsContempt(t *testing.T) {
	pos := NewStartPosition()
	shuffle := []string{"g1f3", "g8f6", "f3g1", "f6g8"}
	for i := 0; i < 2; i++ {
		for _, moveStr := range shuffle {
			pos.Push(mustMove(t, moveStr))
		}
	}
	if !pos.CanClaimThreefold() {
		t.Fatalf("test setup: threefold not claimable")
	}

	s := newSearch(pos, NewClassicEvaluator())
	if got := s.negamax(3, -InfEval, InfEval, 0); got != DrawEval-Contempt {
		t.Errorf("claimable draw scored %d, expected %d", got, DrawEval-Contempt)
	}
}

func TestNegamaxRestoresPosition(t *testing.T) {
	pos := NewPosition("k7/3q4/8/8/8/8/3R4/K7 w - - 0 1")
	before := pos.FEN()

	s := newSearch(pos, NewClassicEvaluator())
	s.negamax(3, -InfEval, InfEval, 0)

	if got := pos.FEN(); got != before {
		t.Errorf("search left the position as %q, expected %q", got, before)
	}
}

func TestQuiescenceStandPatCutoff(t *testing.T) {
	// Quiet position, huge beta window never reached, alpha already at
	// stand-pat level.
	pos := NewStartPosition()
	s := newSearch(pos, NewClassicEvaluator())

	standPat := NegaEvaluate(s.eval, pos)
	if got := s.qsearch(-InfEval, standPat-100, 0); got != standPat-100 {
		t.Errorf("stand-pat above beta returned %d, expected beta %d", got, standPat-100)
	}
}

func TestQuiescenceResolvesHangingQueen(t *testing.T) {
	// Queen en prise: a depth-horizon static eval would call this equal-ish,
	// quiescence must cash it in.
	pos := NewPosition("k7/3q4/8/8/8/8/3R4/K7 w - - 0 1")
	s := newSearch(pos, NewClassicEvaluator())

	got := s.qsearch(-InfEval, InfEval, 0)
	if got < 300 {
		t.Errorf("hanging queen position scored only %d for the side to move", got)
	}
}

package engine

import (
	"testing"

	dragon "github.com/dylhunn/dragontoothmg"
)

func TestEvaluateStartPos(t *testing.T) {
	eval := NewClassicEvaluator()
	pos := NewStartPosition()

	// Everything but the tempo term is symmetric at the start.
	if got := eval.Evaluate(pos); got != tempoBonus {
		t.Errorf("start position eval %d, expected %d", got, tempoBonus)
	}
}

func TestEvaluateMaterialAdvantage(t *testing.T) {
	eval := NewClassicEvaluator()

	pos := NewPosition("k7/8/8/8/8/8/8/KQ6 w - - 0 1")
	if got := eval.Evaluate(pos); got < 800 {
		t.Errorf("queen-up eval %d, expected at least 800", got)
	}
}

func TestNegaEvaluateSign(t *testing.T) {
	eval := NewClassicEvaluator()

	white := NewPosition("k7/8/8/8/8/8/8/KQ6 w - - 0 1")
	black := NewPosition("k7/8/8/8/8/8/8/KQ6 b - - 0 1")

	if got := NegaEvaluate(eval, white); got <= 0 {
		t.Errorf("side to move is a queen up, got %d", got)
	}
	if got := NegaEvaluate(eval, black); got >= 0 {
		t.Errorf("side to move is a queen down, got %d", got)
	}
}

func TestEvaluateCachePopulated(t *testing.T) {
	eval := NewClassicEvaluator()
	pos := NewStartPosition()

	first := eval.Evaluate(pos)
	if !eval.Cache.Exists(pos.FEN()) {
		t.Fatalf("eval cache not populated")
	}
	if second := eval.Evaluate(pos); second != first {
		t.Errorf("cached eval %d != first eval %d", second, first)
	}
}

func TestGamePhase(t *testing.T) {
	tests := []struct {
		fen   string
		phase int
	}{
		{dragon.Startpos, totalPhase},
		{"k7/8/8/8/8/8/8/K7 w - - 0 1", 0},
		{"k7/8/8/8/8/8/8/KQ6 w - - 0 1", 4},
		{"kr6/8/8/8/8/8/8/KR6 w - - 0 1", 4},
	}
	for _, test := range tests {
		pos := NewPosition(test.fen)
		if got := gamePhase(pos.Board()); got != test.phase {
			t.Errorf("phase of %q = %d, expected %d", test.fen, got, test.phase)
		}
	}
}

func TestBishopPair(t *testing.T) {
	eval := NewClassicEvaluator()

	// Two bishops vs bishop and knight, otherwise bare.
	pair := NewPosition("kbn5/8/8/8/8/8/8/KBB5 w - - 0 1")
	split := NewPosition("kbn5/8/8/8/8/8/8/KBN5 w - - 0 1")

	if eval.Evaluate(pair)-eval.Evaluate(split) < 10 {
		t.Errorf("bishop pair not rewarded: pair %d, split %d",
			eval.Evaluate(pair), eval.Evaluate(split))
	}
}

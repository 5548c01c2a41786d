package engine

import (
	"testing"
)

func TestTranspoTableRoundTrip(t *testing.T) {
	tt := NewTranspoTable()
	key := NewStartPosition().Key()

	if _, ok := tt.Lookup(key); ok {
		t.Fatalf("lookup hit on an empty table")
	}

	entry := TTEntryT{Depth: 3, Bound: TTExact, Score: 42, Move: NoMove}
	tt.Store(key, entry)
	got, ok := tt.Lookup(key)
	if !ok || got != entry {
		t.Errorf("lookup returned %v/%v, expected %v", got, ok, entry)
	}
}

func TestTranspoTableKeepsDeeperEntry(t *testing.T) {
	tt := NewTranspoTable()
	key := NewStartPosition().Key()

	deep := TTEntryT{Depth: 5, Bound: TTExact, Score: 10}
	shallow := TTEntryT{Depth: 2, Bound: TTExact, Score: -10}

	tt.Store(key, deep)
	tt.Store(key, shallow)
	if got, _ := tt.Lookup(key); got != deep {
		t.Errorf("shallow store replaced a deeper entry: %v", got)
	}

	deeper := TTEntryT{Depth: 7, Bound: TTLowerBound, Score: 30}
	tt.Store(key, deeper)
	if got, _ := tt.Lookup(key); got != deeper {
		t.Errorf("deeper store did not replace: %v", got)
	}
}

func TestTranspoTableMergesMoveCounterVariants(t *testing.T) {
	// The key deliberately excludes the halfmove clock and move number, so
	// these two positions share one slot.
	tt := NewTranspoTable()
	a := NewPosition("k7/8/8/8/8/8/8/KQ6 w - - 3 20")
	b := NewPosition("k7/8/8/8/8/8/8/KQ6 w - - 11 47")

	tt.Store(a.Key(), TTEntryT{Depth: 4, Bound: TTExact, Score: 900})
	entry, ok := tt.Lookup(b.Key())
	if !ok {
		t.Fatalf("counter-variant position missed the shared entry")
	}
	if entry.Score != 900 {
		t.Errorf("shared entry score %d, expected 900", entry.Score)
	}
}

package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// Transposition table for a single search. A fresh table is built for each
// root call, so entries never go stale across moves.

type TTBoundT uint8

const (
	TTInvalid TTBoundT = iota
	// Score is exact for the node.
	TTExact
	// Score is a lower bound (the node failed high).
	TTLowerBound
	// Score is an upper bound (the node failed low).
	TTUpperBound
)

type TTEntryT struct {
	Depth int
	Bound TTBoundT
	Score EvalCp
	Move  dragon.Move
}

type TranspoTableT map[SearchKey]TTEntryT

func NewTranspoTable() TranspoTableT {
	return make(TranspoTableT)
}

func (tt TranspoTableT) Lookup(key SearchKey) (TTEntryT, bool) {
	entry, ok := tt[key]
	return entry, ok
}

// Store writes the entry unless a deeper one is already present.
func (tt TranspoTableT) Store(key SearchKey, entry TTEntryT) {
	if old, ok := tt[key]; ok && old.Depth > entry.Depth {
		return
	}
	tt[key] = entry
}

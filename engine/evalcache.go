// Long-lived cache of static evaluations, shared across the whole game.

package engine

// Map: full position serialization (FEN, move counters included) -> blended
// centipawn score. Never evicted - unbounded growth is an accepted tradeoff.
type EvalCacheT map[string]EvalCp

func (ec EvalCacheT) Exists(fen string) bool {
	_, ok := ec[fen]
	return ok
}

func (ec EvalCacheT) Lookup(fen string) (EvalCp, bool) {
	eval, ok := ec[fen]
	return eval, ok
}

func (ec EvalCacheT) Store(fen string, eval EvalCp) {
	ec[fen] = eval
}

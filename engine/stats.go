package engine

import "fmt"

// SearchStatsT counts what a search did, for tuning and diagnostics.
type SearchStatsT struct {
	Nodes        uint64 // nodes visited in the full-width search
	QNodes       uint64 // nodes visited in quiescence
	Cuts         uint64 // beta cutoffs in the full-width search
	QCuts        uint64 // beta cutoffs in quiescence
	QPats        uint64 // stand-pat cutoffs
	QDeltas      uint64 // delta-pruned quiescence nodes
	TTHits       uint64 // probes that found a deep-enough entry
	TTMoveHints  uint64 // probes that at least yielded an ordering hint
	DrawClaims   uint64 // nodes scored as claimable draws
	Mates        uint64 // terminal mate/stalemate nodes
	Researches   uint64 // aspiration windows that failed and were redone
	EvalCacheHit uint64
}

func (s *SearchStatsT) String() string {
	return fmt.Sprintf("nodes %d qnodes %d cuts %d qcuts %d tthits %d researches %d",
		s.Nodes, s.QNodes, s.Cuts, s.QCuts, s.TTHits, s.Researches)
}

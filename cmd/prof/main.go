// Profiling harness - runs fixed-depth searches over a few positions so the
// hot paths show up in a CPU profile.

package main

import (
	"flag"
	"fmt"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/pkg/profile"

	"github.com/clanpj/sable/engine"
)

var depth = flag.Int("depth", 6, "Fixed search depth per position.")

var fens = []string{
	dragon.Startpos,
	// Open middlegame with tactics on the board.
	"r1bqkb1r/pppp1ppp/2n2n2/1B2p3/4P3/5N2/PPPP1PPP/RNBQK2R w KQkq - 4 4",
	// Rook endgame.
	"8/5pk1/6p1/8/3R4/6P1/5PK1/3r4 w - - 0 40",
}

func main() {
	flag.Parse()
	defer profile.Start().Stop()

	eval := engine.NewClassicEvaluator()
	searcher := engine.NewSearcher(eval)

	for _, fen := range fens {
		pos := engine.NewPosition(fen)

		start := time.Now()
		move, score := searcher.PickMove(pos, *depth, nil, engine.NoMove)
		elapsed := time.Since(start)

		stats := searcher.Stats()
		nps := float64(stats.Nodes+stats.QNodes) / elapsed.Seconds()
		fmt.Printf("%s\n  depth %d move %s score %d time %v nps %.0f\n  %s\n",
			fen, *depth, move.String(), score, elapsed, nps, stats)
	}
}

package engine

import (
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Configuration options and tuning knobs.

const NoMove dragon.Move = 0

// Hard bound on recursion so pathological extension chains can't blow the stack.
const MaxPly = 100

// Quiescence recursion bound - accept horizon truncation beyond this.
var QSearchDepth = 4

// Draw contempt in centipawns, applied as a penalty at every claimable-draw
// site. Set to 0 to score draws dead even.
var Contempt EvalCp = 20

// Delta pruning margin for quiescence - if stand-pat is further than this
// below alpha then no capture sequence is going to rescue the position.
var QDeltaMargin EvalCp = 1000

// Skip captures in quiescence where the attacker outvalues the victim by more
// than this (a cheap static-exchange stand-in).
var QBadCaptureMargin EvalCp = 200

// Move ordering scores. The TT move must dominate everything else, and checks
// must never outweigh captures or promotions.
const (
	scoreTTMove        = 20_000_000
	scorePromotionBase = 8_000_000
	scoreCaptureBase   = 6_000_000
	scoreCheck         = 300_000
)

// Aspiration windowing at the root.
var AspirationWindow EvalCp = 50
var MinAspirationDepth = 4

// Time management.
var (
	SafetyMargin   = 0.88 // usable fraction of the allocated budget
	MinMoveTime    = 1 * time.Second
	PanicThreshold = 5 * time.Second
	PanicDepth     = 4
	PanicTimeFrac  = 0.30 // panic-mode cap on the fraction of remaining time
	IncrementUsage = 0.65 // fraction of the increment credited to the budget
	MaxTimeFrac    = 0.20 // never spend more than this fraction of remaining time on one move
	ClockReserve   = 2 * time.Second

	// Next-depth prediction / refusal.
	PredInflation   = 1.35 // extra safety on the predicted next-depth time
	HardGuardFactor = 10.0 // refuse next depth unless last-depth-time * this fits in the slack
	MinSlackToStart = 750 * time.Millisecond
	MaxRatioCap     = 24.0 // upper cap on the depth-over-depth growth factor

	// PV stability gating - the more depths agree, the less budget we're
	// willing to spend re-confirming the same move.
	PVStableLenientFrac = 0.70
	PVStableStrictFrac  = 0.55
)

// UCI shell around the engine. Structure follows the dragontooth driver.

package main

import (
	"bufio"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	dragon "github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/clanpj/sable/engine"
)

var VersionString = "0.1 Sable " + runtime.GOOS + "-" + runtime.GOARCH

func main() {
	// Stdout carries the UCI protocol, diagnostics go to stderr.
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	uciLoop(log)
}

func uciLoop(log zerolog.Logger) {
	scanner := bufio.NewScanner(os.Stdin)

	eval := engine.NewClassicEvaluator()
	controller := engine.NewController(eval, log)
	pos := engine.NewStartPosition()

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name Sable", VersionString)
			fmt.Println("id author Clan PJ")
			fmt.Println("option name QSearchDepth type spin default", engine.QSearchDepth, "min 0 max 64")
			fmt.Println("option name Contempt type spin default", engine.Contempt, "min 0 max 500")
			fmt.Println("option name AspirationWindow type spin default", engine.AspirationWindow, "min 10 max 1000")
			fmt.Println("uciok")
		case "isready":
			fmt.Println("readyok")
		case "ucinewgame":
			// Reset the board in case the GUI skips 'position' after 'newgame'.
			// The eval cache survives, it only depends on positions.
			pos = engine.NewStartPosition()
		case "quit":
			return
		case "setoption":
			if len(tokens) != 5 || tokens[1] != "name" || tokens[3] != "value" {
				fmt.Println("info string Malformed setoption command")
				continue
			}
			value, err := strconv.Atoi(tokens[4])
			if err != nil {
				fmt.Println("info string Option value is not an int (", err, ")")
				continue
			}
			switch strings.ToLower(tokens[2]) {
			case "qsearchdepth":
				engine.QSearchDepth = value
			case "contempt":
				engine.Contempt = engine.EvalCp(value)
			case "aspirationwindow":
				engine.AspirationWindow = engine.EvalCp(value)
			default:
				fmt.Println("info string Unknown UCI option", tokens[2])
			}
		case "position":
			newPos, err := parsePosition(line)
			if err != nil {
				fmt.Println("info string", err)
				continue
			}
			pos = newPos
		case "go":
			clock, maxDepth := parseGo(line, pos.WhiteToMove())
			move := controller.ChooseMove(pos, clock, nil, maxDepth)
			if move == engine.NoMove {
				fmt.Println("info string No legal moves")
				fmt.Println("bestmove 0000")
				continue
			}
			fmt.Println("bestmove", move.String())
		case "stop":
			// Searches are synchronous and bounded by the clock, so there is
			// nothing in flight to halt by the time this arrives.
		default:
			fmt.Println("info string Unknown command:", line)
		}
	}
}

func parsePosition(line string) (*engine.Position, error) {
	posScanner := bufio.NewScanner(strings.NewReader(line))
	posScanner.Split(bufio.ScanWords)
	posScanner.Scan() // skip the first token
	if !posScanner.Scan() {
		return nil, fmt.Errorf("malformed position command")
	}

	fen := ""
	switch strings.ToLower(posScanner.Text()) {
	case "startpos":
		fen = dragon.Startpos
		posScanner.Scan() // advance the scanner to leave it in a consistent state
	case "fen":
		for posScanner.Scan() && strings.ToLower(posScanner.Text()) != "moves" {
			fen += posScanner.Text() + " "
		}
		if fen == "" {
			return nil, fmt.Errorf("invalid fen position")
		}
	default:
		return nil, fmt.Errorf("invalid position subcommand")
	}

	var moves []string
	if strings.ToLower(posScanner.Text()) == "moves" {
		for posScanner.Scan() {
			moves = append(moves, strings.ToLower(posScanner.Text()))
		}
	}
	return engine.NewPositionFromMoves(fen, moves)
}

// parseGo pulls the clock and depth controls out of a go command, already
// reduced to the side to move's point of view.
func parseGo(line string, whiteToMove bool) (engine.Clock, int) {
	goScanner := bufio.NewScanner(strings.NewReader(line))
	goScanner.Split(bufio.ScanWords)
	goScanner.Scan() // skip the first token

	var wtime, btime, winc, binc, movetime, depth int
	infinite := false
	scanInt := func(dest *int) {
		if goScanner.Scan() {
			if value, err := strconv.Atoi(goScanner.Text()); err == nil {
				*dest = value
			}
		}
	}
	for goScanner.Scan() {
		switch strings.ToLower(goScanner.Text()) {
		case "infinite":
			infinite = true
		case "wtime":
			scanInt(&wtime)
		case "btime":
			scanInt(&btime)
		case "winc":
			scanInt(&winc)
		case "binc":
			scanInt(&binc)
		case "movetime":
			scanInt(&movetime)
		case "depth":
			scanInt(&depth)
		}
	}

	if infinite || (wtime == 0 && btime == 0 && movetime == 0) {
		// No meaningful clock: let the phase depth lids decide.
		return engine.Clock{Remaining: time.Hour}, depth
	}
	if movetime != 0 {
		return engine.Clock{Remaining: time.Duration(movetime) * time.Millisecond}, depth
	}

	ourTime, ourInc := wtime, winc
	if !whiteToMove {
		ourTime, ourInc = btime, binc
	}
	return engine.Clock{
		Remaining: time.Duration(ourTime) * time.Millisecond,
		Increment: time.Duration(ourInc) * time.Millisecond,
	}, depth
}

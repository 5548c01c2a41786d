package engine

import (
	"fmt"
	"math/bits"
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
)

// Position wraps the rules engine's board with the game history needed for
// repetition claims. All search code goes through this type rather than
// touching dragon.Board directly.
type Position struct {
	board   dragon.Board
	history HistoryTableT
}

// SearchKey identifies a position for transposition purposes. The halfmove
// clock and move number are deliberately left out, so positions that differ
// only in those fields share cached search results.
type SearchKey struct {
	Placement string
	ToMove    string
	Castling  string
	EnPassant string
}

func NewPosition(fen string) *Position {
	board := dragon.ParseFen(fen)
	pos := &Position{board: board, history: make(HistoryTableT)}
	pos.history.Add(board.Hash())
	return pos
}

func NewStartPosition() *Position {
	return NewPosition(dragon.Startpos)
}

// NewPositionFromMoves replays a UCI move list from the given FEN, keeping
// the repetition history of every position along the way.
func NewPositionFromMoves(fen string, moves []string) (*Position, error) {
	pos := NewPosition(fen)
	for _, moveStr := range moves {
		move, err := dragon.ParseMove(moveStr)
		if err != nil {
			return nil, fmt.Errorf("bad move %q: %v", moveStr, err)
		}
		pos.board.Apply(move)
		pos.history.Add(pos.board.Hash())
	}
	return pos, nil
}

func (p *Position) Board() *dragon.Board {
	return &p.board
}

func (p *Position) FEN() string {
	return p.board.ToFen()
}

func (p *Position) WhiteToMove() bool {
	return p.board.Wtomove
}

func (p *Position) MoveNumber() int {
	return int(p.board.Fullmoveno)
}

func (p *Position) PieceCount() int {
	return bits.OnesCount64(p.board.White.All | p.board.Black.All)
}

// Key returns the transposition key for the current position.
func (p *Position) Key() SearchKey {
	fields := strings.SplitN(p.board.ToFen(), " ", 5)
	return SearchKey{
		Placement: fields[0],
		ToMove:    fields[1],
		Castling:  fields[2],
		EnPassant: fields[3],
	}
}

func (p *Position) LegalMoves() []dragon.Move {
	return p.board.GenerateLegalMoves()
}

// Push applies the move and returns a closure that takes it back. The
// repetition history is kept in sync on both sides.
func (p *Position) Push(move dragon.Move) func() {
	unapply := p.board.Apply(move)
	p.history.Add(p.board.Hash())
	return func() {
		p.history.Remove(p.board.Hash())
		unapply()
	}
}

func (p *Position) InCheck() bool {
	return p.board.OurKingInCheck()
}

func (p *Position) IsCheckmate() bool {
	if !p.board.OurKingInCheck() {
		return false
	}
	return len(p.board.GenerateLegalMoves()) == 0
}

func (p *Position) IsStalemate() bool {
	if p.board.OurKingInCheck() {
		return false
	}
	return len(p.board.GenerateLegalMoves()) == 0
}

func (p *Position) CanClaimFiftyMoves() bool {
	return p.board.Halfmoveclock >= 100
}

func (p *Position) CanClaimThreefold() bool {
	return p.history.Count(p.board.Hash()) >= 3
}

// InsufficientMaterial reports the dead positions that are draws by rule:
// bare kings, a lone minor piece, or same-coloured single bishops.
func (p *Position) InsufficientMaterial() bool {
	white, black := &p.board.White, &p.board.Black
	if white.Pawns|black.Pawns|white.Rooks|black.Rooks|white.Queens|black.Queens != 0 {
		return false
	}
	minors := white.Knights | white.Bishops | black.Knights | black.Bishops
	switch bits.OnesCount64(minors) {
	case 0, 1:
		return true
	case 2:
		// Only KB vs KB with both bishops on the same colour is dead.
		if bits.OnesCount64(white.Bishops) == 1 && bits.OnesCount64(black.Bishops) == 1 {
			const lightSquares = uint64(0x55aa55aa55aa55aa)
			wLight := white.Bishops&lightSquares != 0
			bLight := black.Bishops&lightSquares != 0
			return wLight == bLight
		}
	}
	return false
}

// IsDrawnByRule reports whether the side to move can claim a draw here, or
// the position is dead.
func (p *Position) IsDrawnByRule() bool {
	return p.CanClaimFiftyMoves() || p.CanClaimThreefold() || p.InsufficientMaterial()
}

type Outcome int

const (
	OutcomeOngoing Outcome = iota
	OutcomeWhiteWins
	OutcomeBlackWins
	OutcomeDraw
)

// GameOutcome returns the game's verdict: a win for the mating side, a draw
// for stalemate or a claimable/dead draw, or ongoing.
func (p *Position) GameOutcome() Outcome {
	if len(p.board.GenerateLegalMoves()) == 0 {
		if p.board.OurKingInCheck() {
			if p.board.Wtomove {
				return OutcomeBlackWins
			}
			return OutcomeWhiteWins
		}
		return OutcomeDraw
	}
	if p.IsDrawnByRule() {
		return OutcomeDraw
	}
	return OutcomeOngoing
}

// IsCapture reports whether the move takes a piece, including en passant.
func (p *Position) IsCapture(move dragon.Move) bool {
	enemy := &p.board.Black
	if !p.board.Wtomove {
		enemy = &p.board.White
	}
	toBit := uint64(1) << move.To()
	if enemy.All&toBit != 0 {
		return true
	}
	return p.IsEnPassant(move)
}

// IsEnPassant reports whether the move is a pawn capture onto an empty square.
func (p *Position) IsEnPassant(move dragon.Move) bool {
	fromBit := uint64(1) << move.From()
	pawns := p.board.White.Pawns | p.board.Black.Pawns
	if pawns&fromBit == 0 {
		return false
	}
	if move.From()%8 == move.To()%8 {
		return false
	}
	toBit := uint64(1) << move.To()
	return (p.board.White.All|p.board.Black.All)&toBit == 0
}

// CapturedPiece returns the type of the piece a capture removes. En passant
// takes a pawn.
func (p *Position) CapturedPiece(move dragon.Move) dragon.Piece {
	if p.IsEnPassant(move) {
		return dragon.Pawn
	}
	return p.PieceAt(move.To())
}

// MovedPiece returns the type of the piece the move picks up.
func (p *Position) MovedPiece(move dragon.Move) dragon.Piece {
	return p.PieceAt(move.From())
}

// GivesCheck reports whether the move checks the opponent's king.
func (p *Position) GivesCheck(move dragon.Move) bool {
	unapply := p.board.Apply(move)
	check := p.board.OurKingInCheck()
	unapply()
	return check
}

// PieceAt returns the type of the piece on the square, of either colour, or
// dragon.Nothing for an empty square.
func (p *Position) PieceAt(square uint8) dragon.Piece {
	bit := uint64(1) << square
	for _, side := range []*dragon.Bitboards{&p.board.White, &p.board.Black} {
		if side.All&bit == 0 {
			continue
		}
		switch {
		case side.Pawns&bit != 0:
			return dragon.Pawn
		case side.Knights&bit != 0:
			return dragon.Knight
		case side.Bishops&bit != 0:
			return dragon.Bishop
		case side.Rooks&bit != 0:
			return dragon.Rook
		case side.Queens&bit != 0:
			return dragon.Queen
		case side.Kings&bit != 0:
			return dragon.King
		}
	}
	return dragon.Nothing
}

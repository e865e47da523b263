package hasami

import "fmt"

// WinningCaptures is the number of captured pieces that loses the game for that color.
const WinningCaptures = 8

// MoveResult describes an applied move.
type MoveResult struct {
	Color    Color    `json:"color"`
	From     Square   `json:"from"`
	To       Square   `json:"to"`
	Captured []Square `json:"captured"`
}

// CapturedSquares - captured squares in "a1" notation.
func (that *MoveResult) CapturedSquares() []string {
	if that == nil {
		return nil
	}

	squares := make([]string, 0, len(that.Captured))
	for _, sq := range that.Captured {
		squares = append(squares, sq.String())
	}

	return squares
}

// Game is a single Hasami Shogi game. MakeMove and ApplyMove are the only ways to change it.
type Game struct {
	board  *Board
	active Color
	status Status
}

// NewGame - returns the starting position with Black to move.
func NewGame() *Game {
	return &Game{
		board:  NewBoard(),
		active: Black,
		status: StatusUnfinished,
	}
}

func (that *Game) ActivePlayer() Color {
	return that.active
}

func (that *Game) Status() Status {
	return that.status
}

func (that *Game) IsFinished() bool {
	return that.status != StatusUnfinished
}

func (that *Game) CapturedCount(color Color) int {
	return that.board.CapturedCount(color)
}

// Occupant - color on the square, None when it is empty or the token is not a square.
func (that *Game) Occupant(square string) Color {
	sq, err := ParseSquare(square)
	if err != nil {
		return None
	}

	return that.board.OccupantAt(sq)
}

// OccupantAt is Occupant for an already parsed square.
func (that *Game) OccupantAt(sq Square) Color {
	return that.board.OccupantAt(sq)
}

// ApplyMove - reports whether the move was legal and applied. A false result leaves the game untouched.
func (that *Game) ApplyMove(from, to string) bool {
	_, err := that.MakeMove(from, to)

	return err == nil
}

// MakeMove - validates and applies a move, resolves captures, updates the status and passes the turn.
func (that *Game) MakeMove(from, to string) (*MoveResult, error) {
	fromSquare, err := ParseSquare(from)
	if err != nil {
		return nil, fmt.Errorf("invalid source: %w", err)
	}

	toSquare, err := ParseSquare(to)
	if err != nil {
		return nil, fmt.Errorf("invalid destination: %w", err)
	}

	return that.Move(fromSquare, toSquare)
}

// Move is MakeMove for parsed squares.
func (that *Game) Move(from, to Square) (*MoveResult, error) {
	piece, err := that.validate(from, to)
	if err != nil {
		return nil, fmt.Errorf("invalid move: %w", err)
	}

	mover := piece.Color
	that.board.Relocate(piece.ID, to)

	result := &MoveResult{
		Color:    mover,
		From:     from,
		To:       to,
		Captured: resolveCaptures(that.board, to, mover),
	}

	that.updateStatus()
	that.active = mover.Opponent()

	return result, nil
}

func (that *Game) updateStatus() {
	if that.status != StatusUnfinished {
		return
	}

	switch {
	case that.board.CapturedCount(Black) >= WinningCaptures:
		that.status = StatusRedWon
	case that.board.CapturedCount(Red) >= WinningCaptures:
		that.status = StatusBlackWon
	}
}

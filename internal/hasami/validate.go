package hasami

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/apperror"
)

var (
	ErrNoPiece     = errors.New("no piece on source square")
	ErrOutOfBounds = errors.New("destination is off the board")
	ErrIllegalMove = errors.New("destination is not reachable by a straight slide")
)

// slideRange holds the nearest blockers around a piece, exclusive. Board edges count as -1 and Size.
type slideRange struct {
	left, right int
	above, below int
}

// validate - checks a move for the active player and returns the moving piece.
// Checks run in a fixed order and the first failure is reported.
func (that *Game) validate(from, to Square) (*Piece, error) {
	if that.status != StatusUnfinished {
		return nil, apperror.ErrGameFinished
	}

	piece, ok := that.board.PieceAt(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoPiece, from)
	}

	if piece.Color != that.active {
		return nil, apperror.ErrNotYourTurn
	}

	if !to.InBounds() {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, to)
	}

	if !that.board.IsEmpty(to) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrCellOccupied, to)
	}

	if !rangeOf(that.board, from).allows(from, to) {
		return nil, fmt.Errorf("%w: %s-%s", ErrIllegalMove, from, to)
	}

	return piece, nil
}

func rangeOf(board *Board, from Square) slideRange {
	return slideRange{
		left:  nearestBlocker(board, from, left).Col,
		right: nearestBlocker(board, from, right).Col,
		above: nearestBlocker(board, from, up).Row,
		below: nearestBlocker(board, from, down).Row,
	}
}

// nearestBlocker walks from origin until it hits a piece or steps off the board,
// and returns that square.
func nearestBlocker(board *Board, origin Square, dir direction) Square {
	sq := origin.step(dir)
	for sq.InBounds() && board.IsEmpty(sq) {
		sq = sq.step(dir)
	}

	return sq
}

func (that slideRange) allows(from, to Square) bool {
	switch {
	case from == to:
		return false
	case to.Row == from.Row:
		return to.Col > that.left && to.Col < that.right
	case to.Col == from.Col:
		return to.Row > that.above && to.Row < that.below
	default:
		return false
	}
}

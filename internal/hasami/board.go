package hasami

type PieceID int

const noPiece PieceID = -1

type Piece struct {
	ID       PieceID
	Color    Color
	Location Square
	Captured bool
}

// Board owns every piece. The grid holds piece ids and always agrees with Piece.Location.
type Board struct {
	pieces   []Piece
	grid     [Size][Size]PieceID
	captured [3]int
}

func NewEmptyBoard() *Board {
	board := &Board{}
	for row := range board.grid {
		for col := range board.grid[row] {
			board.grid[row][col] = noPiece
		}
	}

	return board
}

// NewBoard - returns the starting position: Red on row a, Black on row i.
func NewBoard() *Board {
	board := NewEmptyBoard()
	for col := 0; col < Size; col++ {
		board.Place(Red, Square{Row: 0, Col: col})
	}

	for col := 0; col < Size; col++ {
		board.Place(Black, Square{Row: Size - 1, Col: col})
	}

	return board
}

// Place puts a new piece on an empty in-bounds square. It is used only while building a position.
func (that *Board) Place(color Color, sq Square) PieceID {
	if !sq.InBounds() || that.grid[sq.Row][sq.Col] != noPiece {
		panic("hasami: cannot place piece on " + sq.String())
	}

	id := PieceID(len(that.pieces))
	that.pieces = append(that.pieces, Piece{ID: id, Color: color, Location: sq})
	that.grid[sq.Row][sq.Col] = id

	return id
}

func (that *Board) OccupantAt(sq Square) Color {
	piece, ok := that.PieceAt(sq)
	if !ok {
		return None
	}

	return piece.Color
}

func (that *Board) PieceAt(sq Square) (*Piece, bool) {
	if !sq.InBounds() {
		return nil, false
	}

	id := that.grid[sq.Row][sq.Col]
	if id == noPiece {
		return nil, false
	}

	return &that.pieces[id], true
}

func (that *Board) IsEmpty(sq Square) bool {
	return sq.InBounds() && that.grid[sq.Row][sq.Col] == noPiece
}

// Relocate moves a live piece to an empty square.
func (that *Board) Relocate(id PieceID, to Square) {
	piece := &that.pieces[id]

	that.grid[piece.Location.Row][piece.Location.Col] = noPiece
	that.grid[to.Row][to.Col] = id
	piece.Location = to
}

// Remove captures a piece: clears its cell and counts it against its color.
func (that *Board) Remove(id PieceID) {
	piece := &that.pieces[id]
	if piece.Captured {
		return
	}

	that.grid[piece.Location.Row][piece.Location.Col] = noPiece
	piece.Captured = true
	that.captured[piece.Color]++
}

// CapturedCount - number of pieces of the given color that have been captured.
func (that *Board) CapturedCount(color Color) int {
	if color != Black && color != Red {
		return 0
	}

	return that.captured[color]
}

// Pieces returns copies of the live pieces of a color in placement order.
func (that *Board) Pieces(color Color) []Piece {
	pieces := make([]Piece, 0, Size)
	for _, piece := range that.pieces {
		if piece.Color == color && !piece.Captured {
			pieces = append(pieces, piece)
		}
	}

	return pieces
}

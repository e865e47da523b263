package hasami

var axisDirections = [...]direction{left, right, up, down}

// cornerPin describes one physical corner and the two edge squares that trap a piece on it.
type cornerPin struct {
	corner Square
	guards [2]Square
}

var cornerPins = [...]cornerPin{
	{corner: Square{Row: 0, Col: 0}, guards: [2]Square{{Row: 0, Col: 1}, {Row: 1, Col: 0}}},
	{corner: Square{Row: 0, Col: Size - 1}, guards: [2]Square{{Row: 0, Col: Size - 2}, {Row: 1, Col: Size - 1}}},
	{corner: Square{Row: Size - 1, Col: 0}, guards: [2]Square{{Row: Size - 1, Col: 1}, {Row: Size - 2, Col: 0}}},
	{corner: Square{Row: Size - 1, Col: Size - 1}, guards: [2]Square{{Row: Size - 1, Col: Size - 2}, {Row: Size - 2, Col: Size - 1}}},
}

// resolveCaptures finds every piece captured by the piece that just moved to origin,
// removes them and returns their squares.
func resolveCaptures(board *Board, origin Square, mover Color) []Square {
	var found []PieceID
	for _, dir := range axisDirections {
		found = append(found, scanRun(board, origin, dir, mover)...)
	}

	found = append(found, cornerCaptures(board, mover)...)

	captured := make([]Square, 0, len(found))
	for _, id := range found {
		piece := board.pieces[id]
		if piece.Captured {
			continue
		}

		board.Remove(id)
		captured = append(captured, piece.Location)
	}

	return captured
}

// scanRun collects the maximal run of opposing pieces next to origin in one direction.
// The run is returned only when a piece of the mover's color closes it; nil means no capture.
func scanRun(board *Board, origin Square, dir direction, mover Color) []PieceID {
	var run []PieceID

	for sq := origin.step(dir); sq.InBounds(); sq = sq.step(dir) {
		piece, ok := board.PieceAt(sq)
		switch {
		case !ok:
			return nil
		case piece.Color == mover:
			return run
		default:
			run = append(run, piece.ID)
		}
	}

	return nil
}

// cornerCaptures checks all four corners, not only the one near the mover,
// since either guard square can be the one that completes the pin.
func cornerCaptures(board *Board, mover Color) []PieceID {
	var found []PieceID
	for _, pin := range cornerPins {
		trapped, ok := board.PieceAt(pin.corner)
		if !ok || trapped.Color != mover.Opponent() {
			continue
		}

		if board.OccupantAt(pin.guards[0]) == mover && board.OccupantAt(pin.guards[1]) == mover {
			found = append(found, trapped.ID)
		}
	}

	return found
}

package hasami

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// setupGame builds an unfinished game with only the given pieces on the board.
func setupGame(t *testing.T, active Color, pieces map[string]Color) *Game {
	t.Helper()

	board := NewEmptyBoard()
	for square, color := range pieces {
		sq, err := ParseSquare(square)
		require.NoError(t, err)
		require.True(t, sq.InBounds(), "square %s", square)

		board.Place(color, sq)
	}

	return &Game{board: board, active: active, status: StatusUnfinished}
}

// snapshot captures everything a caller can observe about a game.
type snapshot struct {
	position string
	active   Color
	status   Status
	black    int
	red      int
}

func takeSnapshot(game *Game) snapshot {
	return snapshot{
		position: game.Encode(),
		active:   game.ActivePlayer(),
		status:   game.Status(),
		black:    game.CapturedCount(Black),
		red:      game.CapturedCount(Red),
	}
}

package entity

import (
	"encoding/json"
	"testing"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/apperror"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOngoingGame(t *testing.T) *Game {
	t.Helper()

	game := NewGame("123")
	require.NoError(t, game.JoinPlayer(&Player{ID: "black"}))
	require.NoError(t, game.JoinPlayer(&Player{ID: "red"}))

	return game
}

func TestGameStatusMethods(t *testing.T) {
	t.Run("IsFinished returns true when game status is finished", func(t *testing.T) {
		// Given: a game with StatusFinished
		game := &Game{Status: StatusFinished}

		// Then: it should report finished only
		assert.True(t, game.IsFinished())
		assert.False(t, game.IsOngoing())
		assert.False(t, game.IsWaiting())
	})

	t.Run("IsOngoing returns true when game status is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.True(t, game.IsOngoing())
	})

	t.Run("IsWaiting returns true when game status is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.True(t, game.IsWaiting())
	})
}

func TestGame_ConfirmOngoingState(t *testing.T) {
	t.Run("Returns nil when game is ongoing", func(t *testing.T) {
		game := &Game{Status: StatusOngoing}

		assert.NoError(t, game.ConfirmOngoingState())
	})

	t.Run("Returns ErrGameIsNotStarted when game is waiting", func(t *testing.T) {
		game := &Game{Status: StatusWaiting}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameIsNotStarted)
	})

	t.Run("Returns ErrGameFinished when game is finished", func(t *testing.T) {
		game := &Game{Status: StatusFinished}

		assert.ErrorIs(t, game.ConfirmOngoingState(), apperror.ErrGameFinished)
	})

	t.Run("Returns error for unknown game status", func(t *testing.T) {
		game := &Game{Status: "unknown"}

		err := game.ConfirmOngoingState()

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrUnknownGameStatus)
	})
}

func TestGame_JoinPlayer(t *testing.T) {
	t.Run("First player plays Black and the game waits", func(t *testing.T) {
		// Given: a new game
		game := NewGame("123")
		player := &Player{ID: "p1"}

		// When: the first player joins
		err := game.JoinPlayer(player)

		// Then: the player is seated as Black
		require.NoError(t, err)
		assert.Equal(t, hasami.Black, player.Color)
		assert.Equal(t, "123", player.GameID)
		assert.True(t, game.IsWaiting())
	})

	t.Run("Second player plays Red and starts the game", func(t *testing.T) {
		// When: two players join
		game := newOngoingGame(t)

		// Then: the game is ongoing with Red as the second seat
		assert.True(t, game.IsOngoing())
		assert.Equal(t, hasami.Red, game.Players[1].Color)
	})

	t.Run("Rejoining keeps the seat", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame(t)
		returning := &Player{ID: "red"}

		// When: a seated player joins again
		err := game.JoinPlayer(returning)

		// Then: the seat and color are kept
		require.NoError(t, err)
		assert.Equal(t, hasami.Red, returning.Color)
		assert.Len(t, game.Players, 2)
	})

	t.Run("Third player is rejected", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame(t)

		// When: a third player joins
		err := game.JoinPlayer(&Player{ID: "p3"})

		// Then: ErrGameFull is returned
		require.ErrorIs(t, err, apperror.ErrGameFull)
		assert.Len(t, game.Players, 2)
	})
}

func TestGame_MakeMove(t *testing.T) {
	t.Run("Successful move", func(t *testing.T) {
		// Given: an ongoing game
		game := newOngoingGame(t)

		// When: Black moves
		result, err := game.MakeMove(hasami.Black, "i5", "e5")

		// Then: the board reflects the move and it is Red's turn
		require.NoError(t, err)
		assert.Equal(t, hasami.Black, result.Color)
		assert.Equal(t, hasami.Black, game.Board.Occupant("e5"))
		assert.Equal(t, hasami.Red, game.Board.ActivePlayer())
		assert.True(t, game.IsOngoing())
	})

	t.Run("Error on playing out of turn", func(t *testing.T) {
		// Given: an ongoing game with Black to move
		game := newOngoingGame(t)
		before := game.Board.Encode()

		// When: Red tries to move
		_, err := game.MakeMove(hasami.Red, "a1", "b1")

		// Then: ErrNotYourTurn is returned and the board is unchanged
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, before, game.Board.Encode())
	})

	t.Run("Error on occupied destination", func(t *testing.T) {
		game := newOngoingGame(t)

		_, err := game.MakeMove(hasami.Black, "i1", "i2")

		require.ErrorIs(t, err, apperror.ErrCellOccupied)
	})

	t.Run("Error before the second player joins", func(t *testing.T) {
		game := NewGame("123")
		require.NoError(t, game.JoinPlayer(&Player{ID: "black"}))

		_, err := game.MakeMove(hasami.Black, "i5", "e5")

		require.ErrorIs(t, err, apperror.ErrGameIsNotStarted)
	})

	t.Run("Winning move finishes the game", func(t *testing.T) {
		// Given: Black is one capture away from losing
		game := newOngoingGame(t)
		board, err := hasami.DecodeGame("rb7/9/2r6/9/9/9/9/9/8b r 7 0")
		require.NoError(t, err)
		game.Board = board

		// When: Red makes the eighth capture
		_, err = game.MakeMove(hasami.Red, "c3", "a3")

		// Then: the game is finished with Red as winner
		require.NoError(t, err)
		assert.True(t, game.IsFinished())
		assert.Equal(t, "RED", game.Winner)

		// And: further moves are rejected
		_, err = game.MakeMove(hasami.Black, "i9", "h9")
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}

func TestGame_PlayerByID(t *testing.T) {
	game := newOngoingGame(t)

	player, err := game.PlayerByID("red")
	require.NoError(t, err)
	assert.Equal(t, hasami.Red, player.Color)

	_, err = game.PlayerByID("nobody")
	require.ErrorIs(t, err, apperror.ErrNotInGame)
}

func TestGame_JoinPlayer_Rejections(t *testing.T) {
	t.Run("Finished game cannot be joined", func(t *testing.T) {
		// Given: a finished game
		game := newOngoingGame(t)
		game.Status = StatusFinished

		// When: a seated player joins again
		err := game.JoinPlayer(&Player{ID: "red", GameID: game.ID})

		// Then: ErrGameFinished is returned
		require.ErrorIs(t, err, apperror.ErrGameFinished)
	})

	t.Run("Player seated elsewhere is rejected", func(t *testing.T) {
		// Given: a waiting game and a player seated in another game
		game := NewGame("123")
		player := &Player{ID: "p1", GameID: "other", Color: hasami.Black}

		// When: the player joins
		err := game.JoinPlayer(player)

		// Then: the player keeps the old seat and is not added
		require.ErrorIs(t, err, apperror.ErrAlreadyInGame)
		assert.Empty(t, game.Players)
		assert.Equal(t, "other", player.GameID)
	})
}

func TestGame_Public(t *testing.T) {
	// Given: an ongoing game
	game := newOngoingGame(t)

	// When: it is turned into its public view
	data, err := json.Marshal(game.Public())
	require.NoError(t, err)

	// Then: seats show colors but no player ids
	assert.NotContains(t, string(data), `"black"`)
	assert.NotContains(t, string(data), `"red"`)
	assert.Contains(t, string(data), `"color":"BLACK"`)
	assert.Contains(t, string(data), `"color":"RED"`)
}

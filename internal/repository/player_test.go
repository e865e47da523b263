package repository

import (
	"testing"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
	"github.com/rocketscienceinc/hasamishogi-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_GetByID(t *testing.T) {
	t.Run("GetByID_Success", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a player seated as Red
		player := &entity.Player{
			ID:     "123",
			Color:  hasami.Red,
			GameID: "game-1",
		}

		err := playerRepo.CreateOrUpdate(ctx, player)
		require.NoError(t, err)

		// When: GetByID is called with existing ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the retrieved player should match the saved player
		require.NoError(t, err)
		assert.Equal(t, player, retrievedPlayer)
	})

	t.Run("GetByID_Updated", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// Given: a stored player that later leaves its game
		player := &entity.Player{ID: "123", Color: hasami.Black, GameID: "game-1"}
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		player.Leave()
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

		// When: GetByID is called
		retrievedPlayer, err := playerRepo.GetByID(ctx, player.ID)

		// Then: the latest version is returned
		require.NoError(t, err)
		assert.False(t, retrievedPlayer.InGame())
		assert.Equal(t, hasami.None, retrievedPlayer.Color)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, st := suite.New(t)

		playerRepo := NewPlayerRepository(st.Storage)

		// When: GetByID is called with non-existent ID
		retrievedPlayer, err := playerRepo.GetByID(ctx, "9999999")

		// Then: an ErrPlayerNotFound error should be returned
		require.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Nil(t, retrievedPlayer)
	})
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/apperror"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/repository"
)

type playerRepoDep interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepoDep interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

// GameManager - hosts two-player hasami matches on top of the player and game repositories.
type GameManager struct {
	// mu serializes read-modify-write cycles on stored games.
	mu sync.Mutex

	logger     *slog.Logger
	playerRepo playerRepoDep
	gameRepo   gameRepoDep
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepoDep, gameRepo gameRepoDep) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo: playerRepo,
		gameRepo:   gameRepo,
	}
}

// GetOrCreatePlayer - returns the stored player, or registers a new one when id is empty.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create new player: %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

// GetOrCreateGame - returns the game the player is seated in, or opens a new one with the player as Black.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "GetOrCreateGame")

	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.InGame() {
		existingGame, err := that.gameRepo.GetByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		log.Debug("player points to an expired game", "player", player.ID, "game", player.GameID)
		player.Leave()
	}

	newGame, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return newGame, nil
}

// ConnectToGame - seats the player in an existing game. The second player takes Red and starts the match.
func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	existingGame, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.InGame() && player.GameID != existingGame.ID {
		if err = that.releaseExpiredSeat(ctx, player); err != nil {
			return nil, err
		}
	}

	if err = existingGame.JoinPlayer(player); err != nil {
		return nil, fmt.Errorf("failed to join game: %w", err)
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, err
	}

	that.logger.Info("player connected", "game", existingGame.ID, "player", player.ID, "color", player.Color.String())

	return existingGame, nil
}

// releaseExpiredSeat - detaches the player from its previous game when that game no longer exists.
// A player still seated in a live game gets ErrAlreadyInGame.
func (that *GameManager) releaseExpiredSeat(ctx context.Context, player *entity.Player) error {
	_, err := that.gameRepo.GetByID(ctx, player.GameID)
	switch {
	case err == nil:
		return fmt.Errorf("%w: player %s, game %s", apperror.ErrAlreadyInGame, player.ID, player.GameID)
	case errors.Is(err, repository.ErrGameNotFound):
		player.Leave()
		return nil
	default:
		return fmt.Errorf("failed to get previous game: %w", err)
	}
}

func (that *GameManager) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// MakeMove - plays a move for the player in its current game and persists the result. When the move ends
// the match, the game is removed, its players are released and ErrGameFinished is returned with the final state.
func (that *GameManager) MakeMove(
	ctx context.Context,
	playerID, from, to string,
) (*entity.Game, *hasami.MoveResult, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, nil, err
	}

	if !player.InGame() {
		return nil, nil, fmt.Errorf("%w: player %s", apperror.ErrNotInGame, player.ID)
	}

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, nil, err
	}

	seat, err := game.PlayerByID(player.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find seat: %w", err)
	}

	result, err := game.MakeMove(seat.Color, from, to)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to make move: %w", err)
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, nil, err
	}

	if game.IsFinished() {
		that.deleteGame(ctx, game)

		return game, result, apperror.ErrGameFinished
	}

	return game, result, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	newGame := entity.NewGame(uuid.NewString())

	if err := newGame.JoinPlayer(player); err != nil {
		return nil, fmt.Errorf("failed to seat creator: %w", err)
	}

	if err := that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err := that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to save game: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: uuid.NewString(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

// deleteGame - drops a finished game and releases its players. Failures are logged only.
func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "game", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	for _, player := range game.Players {
		released := &entity.Player{ID: player.ID}

		if err := that.playerRepo.CreateOrUpdate(ctx, released); err != nil {
			log.Error("failed to release player", "player", player.ID, "error", err)
		}
	}

	log.Info("game finished", "winner", game.Winner)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}

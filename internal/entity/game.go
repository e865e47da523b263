package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/apperror"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"
)

const maxPlayers = 2

var ErrUnknownGameStatus = errors.New("unknown game status")

// Game is a hosted match: the lobby state around one hasami board.
type Game struct {
	ID      string       `json:"id"`
	Status  string       `json:"status"`
	Winner  string       `json:"winner,omitempty"`
	Players []*Player    `json:"players,omitempty"`
	Board   *hasami.Game `json:"board"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Status: StatusWaiting,
		Board:  hasami.NewGame(),
	}
}

// JoinPlayer - seats a player. The first player plays Black and moves first, the second plays Red
// and starts the game. Finished games and players seated in another game are rejected.
func (that *Game) JoinPlayer(player *Player) error {
	if that.IsFinished() {
		return fmt.Errorf("%w: game id %s", apperror.ErrGameFinished, that.ID)
	}

	if player.InGame() && player.GameID != that.ID {
		return fmt.Errorf("%w: player %s, game %s", apperror.ErrAlreadyInGame, player.ID, player.GameID)
	}

	for _, seated := range that.Players {
		if seated.ID == player.ID {
			player.Color = seated.Color
			player.GameID = that.ID
			return nil
		}
	}

	if len(that.Players) >= maxPlayers {
		return fmt.Errorf("%w: game id %s", apperror.ErrGameFull, that.ID)
	}

	player.GameID = that.ID
	player.Color = hasami.Black
	if len(that.Players) == 1 {
		player.Color = hasami.Red
	}

	that.Players = append(that.Players, player)

	if len(that.Players) == maxPlayers {
		that.Status = StatusOngoing
	}

	return nil
}

// PlayerByID - returns the seated player with the given id.
func (that *Game) PlayerByID(id string) (*Player, error) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, nil
		}
	}

	return nil, fmt.Errorf("%w: player %s, game %s", apperror.ErrNotInGame, id, that.ID)
}

// MakeMove - moves a piece for the player of the given color.
func (that *Game) MakeMove(color hasami.Color, from, to string) (*hasami.MoveResult, error) {
	if err := that.ConfirmOngoingState(); err != nil {
		return nil, err
	}

	if that.Board.ActivePlayer() != color {
		return nil, apperror.ErrNotYourTurn
	}

	result, err := that.Board.MakeMove(from, to)
	if err != nil {
		return nil, err
	}

	that.UpdateGameState()

	return result, nil
}

func (that *Game) UpdateGameState() {
	switch winner := that.Board.Status().Winner(); winner {
	case hasami.Black, hasami.Red:
		that.Winner = winner.String()
		that.Status = StatusFinished
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

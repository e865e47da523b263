package entity

import "github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"

// PublicGame - the game as shown to clients. Player ids act as credentials, so seats carry colors only.
type PublicGame struct {
	ID      string         `json:"id"`
	Status  string         `json:"status"`
	Winner  string         `json:"winner,omitempty"`
	Players []PublicPlayer `json:"players,omitempty"`
	Board   *hasami.Game   `json:"board"`
}

type PublicPlayer struct {
	Color hasami.Color `json:"color"`
}

func (that *Game) Public() *PublicGame {
	players := make([]PublicPlayer, 0, len(that.Players))
	for _, player := range that.Players {
		players = append(players, PublicPlayer{Color: player.Color})
	}

	return &PublicGame{
		ID:      that.ID,
		Status:  that.Status,
		Winner:  that.Winner,
		Players: players,
		Board:   that.Board,
	}
}

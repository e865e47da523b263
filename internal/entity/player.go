package entity

import "github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"

type Player struct {
	ID     string       `json:"id"`
	Color  hasami.Color `json:"color,omitempty"`
	GameID string       `json:"game_id,omitempty"`
}

// Leave - detaches the player from its game.
func (that *Player) Leave() {
	that.GameID = ""
	that.Color = hasami.None
}

func (that *Player) InGame() bool {
	return that.GameID != ""
}

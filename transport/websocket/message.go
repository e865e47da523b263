package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
)

const (
	actionConnect   = "connect"
	actionGameNew   = "game:new"
	actionGameJoin  = "game:join"
	actionGameState = "game:state"
	actionGameMove  = "game:move"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// RequestPayload - client request. The player, when given, must match the one the socket connected as.
type RequestPayload struct {
	Player *PlayerRef `json:"player,omitempty"`
	Game   *GameRef   `json:"game,omitempty"`
	Move   *MoveRef   `json:"move,omitempty"`
}

type PlayerRef struct {
	ID string `json:"id"`
}

type GameRef struct {
	ID string `json:"id"`
}

// MoveRef - a move as two square tokens, e.g. {"from": "i5", "to": "e5"}.
type MoveRef struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type ResponsePayload struct {
	Player   *entity.Player     `json:"player,omitempty"`
	Game     *entity.PublicGame `json:"game,omitempty"`
	Captured []string           `json:"captured,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// connection - a client socket. gorilla allows one concurrent writer, so writes are serialized.
type connection struct {
	ws *websocket.Conn

	mu       sync.Mutex
	playerID string
}

func (that *connection) setPlayer(id string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.playerID = id
}

func (that *connection) player() string {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.playerID
}

func (that *connection) send(action string, payload ResponsePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.ws.WriteJSON(Message{Action: action, Payload: body}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func decodePayload(message *Message) (*RequestPayload, error) {
	var payload RequestPayload

	if len(message.Payload) == 0 {
		return &payload, nil
	}

	if err := json.Unmarshal(message.Payload, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return &payload, nil
}

package websocket

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/apperror"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
)

var (
	errNotConnected   = errors.New("not connected, send connect first")
	errPlayerMismatch = errors.New("player does not match the connection")
)

// handleConnect - binds the socket to a player. An empty id creates a new player; a player
// already seated gets its game back. A socket stays bound to the first player it connected as.
func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	req, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	var playerID string
	if req.Player != nil {
		playerID = req.Player.ID
	}

	if bound := conn.player(); bound != "" {
		if playerID != "" && playerID != bound {
			return that.sendErrorResponse(conn, msg.Action, errPlayerMismatch.Error())
		}

		playerID = bound
	}

	player, err := that.uGame.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create player", "error", err)
		return that.sendErrorResponse(conn, msg.Action, "failed to get or create player")
	}

	that.register(player.ID, conn)

	resp := ResponsePayload{Player: player}

	if player.InGame() {
		game, err := that.uGame.GetGame(ctx, player.GameID)
		if err != nil {
			log.Warn("failed to load game of player", "player", player.ID, "game", player.GameID, "error", err)
		} else {
			resp.Game = game.Public()
		}
	}

	log.Info("player connected", "player", player.ID)

	return conn.send(msg.Action, resp)
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	playerID, _, err := that.requirePlayer(msg, conn)
	if err != nil {
		return err
	}

	game, err := that.uGame.GetOrCreateGame(ctx, playerID)
	if err != nil {
		log.Error("failed to get or create game", "player", playerID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	log.Info("game opened", "game", game.ID, "player", playerID)

	that.broadcast(msg.Action, game, nil)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinGame")

	playerID, req, err := that.requirePlayer(msg, conn)
	if err != nil {
		return err
	}

	if req.Game == nil || req.Game.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game is required")
	}

	game, err := that.uGame.ConnectToGame(ctx, req.Game.ID, playerID)
	if err != nil {
		log.Error("failed to join game", "game", req.Game.ID, "error", err)
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", req.Game.ID, err))
	}

	that.broadcast(msg.Action, game, nil)

	return nil
}

func (that *Server) handleGameState(ctx context.Context, msg *Message, conn *connection) error {
	req, err := decodePayload(msg)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if req.Game == nil || req.Game.ID == "" {
		return that.sendErrorResponse(conn, msg.Action, "game is required")
	}

	game, err := that.uGame.GetGame(ctx, req.Game.ID)
	if err != nil {
		return that.sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", req.Game.ID, err))
	}

	return conn.send(msg.Action, ResponsePayload{Game: game.Public()})
}

// handleGameMove - plays a move and pushes the new state to both players. A finishing move is pushed
// like any other, the game status tells the clients it is over.
func (that *Server) handleGameMove(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameMove")

	playerID, req, err := that.requirePlayer(msg, conn)
	if err != nil {
		return err
	}

	if req.Move == nil {
		return that.sendErrorResponse(conn, msg.Action, "move is required")
	}

	game, result, err := that.uGame.MakeMove(ctx, playerID, req.Move.From, req.Move.To)

	// only the move that ends the game comes back with a state next to ErrGameFinished
	finishing := errors.Is(err, apperror.ErrGameFinished) && game != nil && result != nil
	if err != nil && !finishing {
		log.Debug("move rejected", "player", playerID, "from", req.Move.From, "to", req.Move.To, "error", err)
		return that.sendErrorResponse(conn, msg.Action, err.Error())
	}

	if finishing {
		log.Info("game finished", "game", game.ID, "winner", game.Winner)
	}

	that.broadcast(msg.Action, game, result.CapturedSquares())

	return nil
}

// requirePlayer - decodes the payload and returns the player the socket is bound to.
func (that *Server) requirePlayer(msg *Message, conn *connection) (string, *RequestPayload, error) {
	req, err := decodePayload(msg)
	if err != nil {
		if sendErr := that.sendErrorResponse(conn, msg.Action, err.Error()); sendErr != nil {
			return "", nil, sendErr
		}

		return "", nil, err
	}

	playerID := conn.player()

	switch {
	case playerID == "":
		err = errNotConnected
	case req.Player != nil && req.Player.ID != "" && req.Player.ID != playerID:
		err = errPlayerMismatch
	}

	if err != nil {
		if sendErr := that.sendErrorResponse(conn, msg.Action, err.Error()); sendErr != nil {
			return "", nil, sendErr
		}

		return "", nil, err
	}

	return playerID, req, nil
}

// broadcast - sends the game to every seated player that has a live connection. Each player sees its own
// record and the public view of the game.
func (that *Server) broadcast(action string, game *entity.Game, captured []string) {
	log := that.logger.With("method", "broadcast", "game", game.ID)

	public := game.Public()

	for _, player := range game.Players {
		conn, ok := that.connectionOf(player.ID)
		if !ok {
			log.Debug("connection not found for player", "player", player.ID)
			continue
		}

		resp := ResponsePayload{
			Player:   player,
			Game:     public,
			Captured: captured,
		}

		if err := conn.send(action, resp); err != nil {
			log.Error("failed to send game update", "player", player.ID, "error", err)
		}
	}
}

func (that *Server) sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := conn.send(action, ResponsePayload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

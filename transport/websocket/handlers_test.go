package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/apperror"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/hasami"
)

// stubGames - a use case whose move outcome is fixed by the test.
type stubGames struct {
	game   *entity.Game
	result *hasami.MoveResult
	err    error
}

func (that *stubGames) GetOrCreatePlayer(_ context.Context, id string) (*entity.Player, error) {
	return &entity.Player{ID: id}, nil
}

func (that *stubGames) GetOrCreateGame(context.Context, string) (*entity.Game, error) {
	return that.game, nil
}

func (that *stubGames) ConnectToGame(context.Context, string, string) (*entity.Game, error) {
	return that.game, nil
}

func (that *stubGames) GetGame(context.Context, string) (*entity.Game, error) {
	return that.game, nil
}

func (that *stubGames) MakeMove(context.Context, string, string, string) (*entity.Game, *hasami.MoveResult, error) {
	return that.game, that.result, that.err
}

// socketPair - the server side of a live socket and a client reading from it.
func socketPair(t *testing.T) (*websocket.Conn, *client) {
	t.Helper()

	accepted := make(chan *websocket.Conn, 1)
	upgrader := websocket.Upgrader{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		accepted <- ws
	}))
	t.Cleanup(srv.Close)

	c := dial(t, "ws"+strings.TrimPrefix(srv.URL, "http"))

	select {
	case ws := <-accepted:
		t.Cleanup(func() { _ = ws.Close() })
		return ws, c
	case <-time.After(readTimeout):
		t.Fatal("server side of the socket was not accepted")
		return nil, nil
	}
}

func moveMessage(t *testing.T) *Message {
	t.Helper()

	body, err := json.Marshal(RequestPayload{Move: &MoveRef{From: "i1", To: "e1"}})
	require.NoError(t, err)

	return &Message{Action: actionGameMove, Payload: body}
}

func TestServer_HandleGameMove_Outcomes(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("Move on a finished game without a state", func(t *testing.T) {
		// Given: a use case reporting a game that finished before the move
		stub := &stubGames{err: fmt.Errorf("failed to make move: %w", apperror.ErrGameFinished)}
		server := New(logger, stub)

		ws, c := socketPair(t)
		conn := &connection{ws: ws}
		server.register("p1", conn)

		// When: the move is handled
		var err error
		assert.NotPanics(t, func() {
			err = server.handleGameMove(context.Background(), moveMessage(t), conn)
		})

		// Then: the player gets the rejection instead of a broadcast
		require.NoError(t, err)
		action, resp := c.read()
		assert.Equal(t, actionGameMove, action)
		assert.Contains(t, resp.Error, apperror.ErrGameFinished.Error())
		assert.Nil(t, resp.Game)
	})

	t.Run("Finishing move is broadcast", func(t *testing.T) {
		// Given: a use case ending the game with this move
		game := entity.NewGame("g1")
		game.Status = entity.StatusFinished
		game.Winner = hasami.Black.String()
		game.Players = []*entity.Player{{ID: "p1", GameID: "g1", Color: hasami.Black}}

		stub := &stubGames{game: game, result: &hasami.MoveResult{}, err: apperror.ErrGameFinished}
		server := New(logger, stub)

		ws, c := socketPair(t)
		conn := &connection{ws: ws}
		server.register("p1", conn)

		// When: the move is handled
		require.NoError(t, server.handleGameMove(context.Background(), moveMessage(t), conn))

		// Then: the final state reaches the player
		_, resp := c.read()
		assert.Empty(t, resp.Error)
		require.NotNil(t, resp.Game)
		assert.Equal(t, entity.StatusFinished, resp.Game.Status)
	})

	t.Run("Accepted move without a result", func(t *testing.T) {
		// Given: a use case returning the game but no move result
		game := entity.NewGame("g1")
		game.Status = entity.StatusOngoing
		game.Players = []*entity.Player{{ID: "p1", GameID: "g1", Color: hasami.Black}}

		server := New(logger, &stubGames{game: game})

		ws, c := socketPair(t)
		conn := &connection{ws: ws}
		server.register("p1", conn)

		// When: the move is handled
		assert.NotPanics(t, func() {
			_ = server.handleGameMove(context.Background(), moveMessage(t), conn)
		})

		// Then: the state is broadcast with nothing captured
		_, resp := c.read()
		require.NotNil(t, resp.Game)
		assert.Empty(t, resp.Captured)
	})

	t.Run("Unbound socket", func(t *testing.T) {
		// Given: a socket that never sent connect
		server := New(logger, &stubGames{})

		ws, c := socketPair(t)
		conn := &connection{ws: ws}

		// When: a move arrives
		err := server.handleGameMove(context.Background(), moveMessage(t), conn)

		// Then: it is refused
		require.ErrorIs(t, err, errNotConnected)
		_, resp := c.read()
		assert.Contains(t, resp.Error, "not connected")
	})
}

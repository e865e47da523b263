package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
	"github.com/rocketscienceinc/hasamishogi-backend/internal/repository"
)

type gameReader interface {
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
}

type gameHandler struct {
	logger *slog.Logger
	games  gameReader
}

// getGame - GET /games/{id}, the public view of the stored game as JSON.
func (that *gameHandler) getGame(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "getGame")

	id := chi.URLParam(r, "id")

	game, err := that.games.GetGame(r.Context(), id)
	if errors.Is(err, repository.ErrGameNotFound) {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get game", "game", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(game.Public()); err != nil {
		log.Error("failed to encode game", "game", id, "error", err)
	}
}

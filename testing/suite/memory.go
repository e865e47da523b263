package suite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rocketscienceinc/hasamishogi-backend/internal/entity"
)

var (
	ErrMemoryPlayerNotFound = errors.New("player not found")
	ErrMemoryGameNotFound   = errors.New("game not found")
)

// MemoryStore - in-process stand-in for the redis repositories. Values go through JSON on every
// write and read so callers never share pointers with the store.
type MemoryStore struct {
	mu      sync.Mutex
	players map[string][]byte
	games   map[string][]byte

	// GameNotFound is returned for unknown games; defaults to ErrMemoryGameNotFound.
	GameNotFound error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		players:      make(map[string][]byte),
		games:        make(map[string][]byte),
		GameNotFound: ErrMemoryGameNotFound,
	}
}

// Players - the store seen as a player repository.
func (that *MemoryStore) Players() *MemoryPlayers {
	return &MemoryPlayers{store: that}
}

// Games - the store seen as a game repository.
func (that *MemoryStore) Games() *MemoryGames {
	return &MemoryGames{store: that}
}

type MemoryPlayers struct {
	store *MemoryStore
}

func (that *MemoryPlayers) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	return that.store.put(that.store.players, player.ID, player)
}

func (that *MemoryPlayers) GetByID(_ context.Context, id string) (*entity.Player, error) {
	var player entity.Player
	if err := that.store.get(that.store.players, id, &player, ErrMemoryPlayerNotFound); err != nil {
		return nil, err
	}

	return &player, nil
}

type MemoryGames struct {
	store *MemoryStore
}

func (that *MemoryGames) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	return that.store.put(that.store.games, game.ID, game)
}

func (that *MemoryGames) GetByID(_ context.Context, id string) (*entity.Game, error) {
	var game entity.Game
	if err := that.store.get(that.store.games, id, &game, that.store.GameNotFound); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *MemoryGames) DeleteByID(_ context.Context, id string) error {
	that.store.mu.Lock()
	defer that.store.mu.Unlock()

	if _, ok := that.store.games[id]; !ok {
		return that.store.GameNotFound
	}

	delete(that.store.games, id)

	return nil
}

func (that *MemoryStore) put(bucket map[string][]byte, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", id, err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	bucket[id] = data

	return nil
}

func (that *MemoryStore) get(bucket map[string][]byte, id string, value any, notFound error) error {
	that.mu.Lock()
	data, ok := bucket[id]
	that.mu.Unlock()

	if !ok {
		return notFound
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", id, err)
	}

	return nil
}

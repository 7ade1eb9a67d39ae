package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
	"github.com/rocketscienceinc/squaregame-backend/internal/repository"
)

// memoryPlayerRepo and memoryGameRepo store JSON copies, so every read returns a fresh value as redis does.
type memoryPlayerRepo struct {
	mu      sync.Mutex
	players map[string][]byte
}

func newMemoryPlayerRepo() *memoryPlayerRepo {
	return &memoryPlayerRepo{players: make(map[string][]byte)}
}

func (that *memoryPlayerRepo) CreateOrUpdate(_ context.Context, player *entity.Player) error {
	raw, err := json.Marshal(player)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	that.players[player.ID] = raw

	return nil
}

func (that *memoryPlayerRepo) GetByID(_ context.Context, id string) (*entity.Player, error) {
	that.mu.Lock()
	raw, ok := that.players[id]
	that.mu.Unlock()

	if !ok {
		return nil, repository.ErrPlayerNotFound
	}

	var player entity.Player
	if err := json.Unmarshal(raw, &player); err != nil {
		return nil, err
	}

	return &player, nil
}

type memoryGameRepo struct {
	mu    sync.Mutex
	games map[string][]byte
}

func newMemoryGameRepo() *memoryGameRepo {
	return &memoryGameRepo{games: make(map[string][]byte)}
}

func (that *memoryGameRepo) CreateOrUpdate(_ context.Context, game *entity.Game) error {
	raw, err := json.Marshal(game)
	if err != nil {
		return err
	}

	that.mu.Lock()
	defer that.mu.Unlock()
	that.games[game.ID] = raw

	return nil
}

func (that *memoryGameRepo) GetByID(_ context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	raw, ok := that.games[id]
	that.mu.Unlock()

	if !ok {
		return nil, repository.ErrGameNotFound
	}

	var game entity.Game
	if err := json.Unmarshal(raw, &game); err != nil {
		return nil, err
	}

	return &game, nil
}

func (that *memoryGameRepo) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	if _, ok := that.games[id]; !ok {
		return repository.ErrGameNotFound
	}
	delete(that.games, id)

	return nil
}

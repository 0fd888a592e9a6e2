// internal/store/memory.go
package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/runo-cards/runo/internal/models"
)

// Memory is an in-process Store backed by a map. Records are stored as
// JSON so that Load always returns an independent copy, the same way
// the external backends behave.
type Memory struct {
	mu    sync.RWMutex
	games map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{games: make(map[string][]byte)}
}

func (m *Memory) Load(ctx context.Context, id string) (*models.Game, error) {
	m.mu.RLock()
	data, ok := m.games[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var g models.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (m *Memory) Save(ctx context.Context, g *models.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.games[g.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *Memory) ListOpen(ctx context.Context) ([]*models.Game, error) {
	ids, err := m.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var open []*models.Game
	for _, id := range ids {
		g, err := m.Load(ctx, id)
		if err != nil {
			continue
		}
		if !g.Active && g.EndedAt == nil {
			open = append(open, g)
		}
	}
	return open, nil
}

func (m *Memory) ListAll(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.games))
	for id := range m.games {
		ids = append(ids, id)
	}
	return ids, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.games, id)
	m.mu.Unlock()
	return nil
}

// internal/store/redis.go
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/runo-cards/runo/internal/models"
)

const redisKeyPrefix = "runo:game:"

// Redis stores each game as a JSON value under runo:game:<id>.
type Redis struct {
	rdb *redis.Client
}

// NewRedis connects a Redis client and verifies it with a ping.
func NewRedis(ctx context.Context, addr string, db int) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	return &Redis{rdb: rdb}, nil
}

// NewRedisFromClient wraps an existing client, for sharing a connection
// with the creation guard.
func NewRedisFromClient(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (s *Redis) Load(ctx context.Context, id string) (*models.Game, error) {
	data, err := s.rdb.Get(ctx, redisKeyPrefix+id).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	var g models.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &g, nil
}

func (s *Redis) Save(ctx context.Context, g *models.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	if err := s.rdb.Set(ctx, redisKeyPrefix+g.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

func (s *Redis) ListOpen(ctx context.Context) ([]*models.Game, error) {
	ids, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	var open []*models.Game
	for _, id := range ids {
		g, err := s.Load(ctx, id)
		if err != nil {
			continue
		}
		if !g.Active && g.EndedAt == nil {
			open = append(open, g)
		}
	}
	return open, nil
}

func (s *Redis) ListAll(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.rdb.Scan(ctx, 0, redisKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		ids = append(ids, strings.TrimPrefix(iter.Val(), redisKeyPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan games: %w", err)
	}
	return ids, nil
}

func (s *Redis) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, redisKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

// internal/guard/guard.go
package guard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/runo-cards/runo/internal/store"
)

// CreationGuard decides whether a new game may be created. Engine
// operations treat a denial as a refused creation, not an error.
type CreationGuard interface {
	Allow(ctx context.Context) (bool, error)
}

// StoreCount allows creation while the store holds fewer than Max
// records. A non-positive Max disables the cap. Housekeeping keeps the
// count honest over time.
type StoreCount struct {
	Store store.Store
	Max   int
}

func (g *StoreCount) Allow(ctx context.Context) (bool, error) {
	if g.Max <= 0 {
		return true, nil
	}
	ids, err := g.Store.ListAll(ctx)
	if err != nil {
		return false, fmt.Errorf("count games: %w", err)
	}
	return len(ids) < g.Max, nil
}

// RedisDaily caps creations per UTC day with an INCR counter that
// expires after 48h. Useful when multiple service instances share one
// backing store.
type RedisDaily struct {
	Rdb *redis.Client
	Max int
}

func (g *RedisDaily) Allow(ctx context.Context) (bool, error) {
	key := "runo:created:" + time.Now().UTC().Format("2006-01-02")
	n, err := g.Rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("incr creation counter: %w", err)
	}
	if n == 1 {
		// Counter keys self-clean; 48h covers clock skew across instances.
		g.Rdb.Expire(ctx, key, 48*time.Hour)
	}
	return n <= int64(g.Max), nil
}

// Unlimited never refuses. Used by tests.
type Unlimited struct{}

func (Unlimited) Allow(ctx context.Context) (bool, error) { return true, nil }

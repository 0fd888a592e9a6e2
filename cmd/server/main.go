// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/runo-cards/runo/internal/auth"
	"github.com/runo-cards/runo/internal/config"
	"github.com/runo-cards/runo/internal/game"
	"github.com/runo-cards/runo/internal/guard"
	"github.com/runo-cards/runo/internal/handlers"
	"github.com/runo-cards/runo/internal/middleware"
	"github.com/runo-cards/runo/internal/store"
)

func main() {
	auth.Init()
	cfg := config.Load()

	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)

	ctx := context.Background()

	var (
		st  store.Store
		rdb *redis.Client
		err error
	)
	switch cfg.Store {
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatalf("postgres store: %v", err)
		}
	case "redis":
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, DB: cfg.RedisDB})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		if err = rdb.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatalf("redis store: %v", err)
		}
		cancel()
		st = store.NewRedisFromClient(rdb)
	default:
		st = store.NewMemory()
	}

	var creationGuard guard.CreationGuard
	if rdb != nil {
		creationGuard = &guard.RedisDaily{Rdb: rdb, Max: cfg.MaxGames}
	} else {
		creationGuard = &guard.StoreCount{Store: st, Max: cfg.MaxGames}
	}

	engine := game.NewEngine(st, creationGuard, logger, cfg.Retention)

	// Periodic housekeeping; creates also sweep, this covers idle periods.
	go func() {
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for range ticker.C {
			if err := engine.PurgeExpired(context.Background()); err != nil {
				logger.WithError(err).Warn("housekeeping sweep failed")
			}
		}
	}()

	srv := handlers.NewServer(engine, logger)
	mux := http.NewServeMux()
	srv.Routes(mux)

	logger.Infof("Running on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, middleware.LogMiddleware(logger)(mux)); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// internal/store/postgres.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/runo-cards/runo/internal/models"
)

// Postgres persists each game as a JSONB state column, with a few
// derived columns so ListOpen can filter without unmarshalling every
// record.
type Postgres struct {
	pool *pgxpool.Pool
}

// Schema is the DDL the store expects. Applied out of band.
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	id         TEXT PRIMARY KEY,
	active     BOOLEAN NOT NULL DEFAULT FALSE,
	ended_at   TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL,
	state      JSONB NOT NULL
);
`

// NewPostgres connects a pgx pool and verifies it with a ping.
func NewPostgres(ctx context.Context, connString string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse pgx config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create pgx pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db ping error: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close releases the underlying pool.
func (s *Postgres) Close() {
	s.pool.Close()
}

func (s *Postgres) Load(ctx context.Context, id string) (*models.Game, error) {
	var data []byte
	q := `SELECT state FROM games WHERE id = $1`
	if err := s.pool.QueryRow(ctx, q, id).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load game %s: %w", id, err)
	}
	var g models.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode game %s: %w", id, err)
	}
	return &g, nil
}

func (s *Postgres) Save(ctx context.Context, g *models.Game) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("encode game %s: %w", g.ID, err)
	}
	q := `
		INSERT INTO games (id, active, ended_at, created_at, state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id)
		DO UPDATE SET active = $2, ended_at = $3, state = $5
	`
	err = pgx.BeginTxFunc(ctx, s.pool, pgx.TxOptions{}, func(tx pgx.Tx) error {
		_, e := tx.Exec(ctx, q, g.ID, g.Active, g.EndedAt, g.CreatedAt, data)
		return e
	})
	if err != nil {
		return fmt.Errorf("save game %s: %w", g.ID, err)
	}
	return nil
}

func (s *Postgres) ListOpen(ctx context.Context) ([]*models.Game, error) {
	q := `SELECT state FROM games WHERE active = FALSE AND ended_at IS NULL ORDER BY created_at`
	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list open games: %w", err)
	}
	defer rows.Close()

	var open []*models.Game
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var g models.Game
		if err := json.Unmarshal(data, &g); err != nil {
			return nil, err
		}
		open = append(open, &g)
	}
	return open, rows.Err()
}

func (s *Postgres) ListAll(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM games`)
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Postgres) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM games WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete game %s: %w", id, err)
	}
	return nil
}

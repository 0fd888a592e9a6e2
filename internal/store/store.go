// internal/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/runo-cards/runo/internal/models"
)

// ErrNotFound is returned by Load when no record exists for the id.
var ErrNotFound = errors.New("game not found")

// Store is the keyed load/save contract for game records. The engine
// is agnostic to the backing medium; any implementation that keeps the
// full record round-trippable satisfies it.
type Store interface {
	// Load returns the record for id, or ErrNotFound.
	Load(ctx context.Context, id string) (*models.Game, error)

	// Save writes the full record. A failed save must surface as an
	// error; the caller treats the in-memory mutation as unapplied.
	Save(ctx context.Context, g *models.Game) error

	// ListOpen returns every joinable game: not yet active and not ended.
	ListOpen(ctx context.Context) ([]*models.Game, error)

	// ListAll returns every stored game id, for housekeeping sweeps.
	ListAll(ctx context.Context) ([]string, error)

	// Delete removes a record. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

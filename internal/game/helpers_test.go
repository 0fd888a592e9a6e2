// internal/game/helpers_test.go
package game

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/runo-cards/runo/internal/models"
	"github.com/runo-cards/runo/internal/store"
)

// newTestEngine builds an engine over a fresh in-memory store with a
// silent logger and no creation limit.
func newTestEngine() (*Engine, *store.Memory) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	mem := store.NewMemory()
	return NewEngine(mem, nil, logger, 0), mem
}

// startedGame creates a game with numPlayers seats, starts it, and
// returns the freshly loaded record. Seat 0 is the admin and active.
func startedGame(t *testing.T, e *Engine, numPlayers int) *models.Game {
	t.Helper()
	ctx := context.Background()
	g, err := e.CreateGame(ctx, "Test", "P0", 0, 0, 0)
	require.NoError(t, err)
	for i := 1; i < numPlayers; i++ {
		_, err := e.JoinGame(ctx, g.ID, fmt.Sprintf("P%d", i))
		require.NoError(t, err)
	}
	require.NoError(t, e.AdminStartGame(ctx, g.ID, g.Players[0].ID))
	return reload(t, e, g.ID)
}

// reload fetches the current persisted record.
func reload(t *testing.T, e *Engine, gameID string) *models.Game {
	t.Helper()
	g, err := e.store.Load(context.Background(), gameID)
	require.NoError(t, err)
	return g
}

// save persists a hand-crafted record mutation.
func save(t *testing.T, e *Engine, g *models.Game) {
	t.Helper()
	require.NoError(t, e.store.Save(context.Background(), g))
}

// stubGame builds an in-memory active game with n players, one plain
// discard card on top and the first seat active. No store involved;
// used to exercise the turn engine directly.
func stubGame(n int) *models.Game {
	g := &models.Game{
		ID:          "stub",
		Name:        "Stub",
		Active:      true,
		MinPlayers:  2,
		MaxPlayers:  10,
		PointsToWin: DefaultPointsToWin,
		DrawPile:    NewDeck(),
		DiscardPile: []*models.Card{NewCard("5", models.ColorRed)},
	}
	for i := 0; i < n; i++ {
		g.Players = append(g.Players, &models.Player{
			ID:        fmt.Sprintf("p%d", i),
			DisplayID: fmt.Sprintf("d%d", i),
			Name:      fmt.Sprintf("P%d", i),
			Hand:      []*models.Card{NewCard("7", models.ColorGreen)},
		})
	}
	g.Players[0].Active = true
	return g
}

// allCards gathers every card in circulation: both piles plus every hand.
func allCards(g *models.Game) []*models.Card {
	var cards []*models.Card
	cards = append(cards, g.DrawPile...)
	cards = append(cards, g.DiscardPile...)
	for _, p := range g.Players {
		cards = append(cards, p.Hand...)
	}
	return cards
}

// requireFullDeck asserts the 108-card multiset invariant.
func requireFullDeck(t *testing.T, g *models.Game) {
	t.Helper()
	cards := allCards(g)
	require.Len(t, cards, DeckSize)
	ids := make(map[string]bool, len(cards))
	for _, c := range cards {
		ids[c.ID] = true
	}
	require.Len(t, ids, DeckSize, "card ids must stay unique")
}

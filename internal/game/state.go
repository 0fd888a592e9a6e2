// internal/game/state.go
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/runo-cards/runo/internal/models"
)

// StatePlayer is one seat as seen by the requesting player. Only the
// caller's own entry carries an id and a literal hand; everyone else is
// reduced to a display id and a hand size.
type StatePlayer struct {
	ID           string         `json:"id,omitempty"`
	DisplayID    string         `json:"display_id"`
	Name         string         `json:"name"`
	Admin        bool           `json:"admin"`
	Active       bool           `json:"active"`
	HandSize     int            `json:"hand_size"`
	Hand         []*models.Card `json:"hand,omitempty"`
	Points       int            `json:"points"`
	RoundsWon    int            `json:"rounds_won"`
	GameWinner   bool           `json:"game_winner"`
	DrawRequired bool           `json:"draw_required,omitempty"`
}

// GameState is the projection of a game record for one player: piles
// become sizes plus the discard top, and the caller's pending messages
// are drained and attached.
type GameState struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	CreatedAt       time.Time        `json:"created_at"`
	StartedAt       *time.Time       `json:"started_at,omitempty"`
	EndedAt         *time.Time       `json:"ended_at,omitempty"`
	Active          bool             `json:"active"`
	Reverse         bool             `json:"reverse"`
	MinPlayers      int              `json:"min_players"`
	MaxPlayers      int              `json:"max_players"`
	PointsToWin     int              `json:"points_to_win"`
	DrawPileSize    int              `json:"draw_pile_size"`
	DiscardPileSize int              `json:"discard_pile_size"`
	LastDiscard     *models.Card     `json:"last_discard,omitempty"`
	Players         []StatePlayer    `json:"players"`
	Messages        []models.Message `json:"messages"`
}

// GameSummary is one row of the open-games listing.
type GameSummary struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Players    int       `json:"players"`
	MinPlayers int       `json:"min_players"`
	MaxPlayers int       `json:"max_players"`
	CreatedAt  time.Time `json:"created_at"`
}

// GetState drains the calling player's message queue, persists the
// drained record, and returns the masked projection. Unknown games or
// players yield a rule error.
func (e *Engine) GetState(ctx context.Context, gameID, playerID string) (*GameState, error) {
	unlock := e.locks.Lock(gameID)
	defer unlock()

	g, err := e.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	caller := g.PlayerByID(playerID)
	if caller == nil {
		return nil, notFound("player %s in game %s", playerID, gameID)
	}

	messages := caller.Messages
	if messages == nil {
		messages = []models.Message{}
	}
	caller.Messages = []models.Message{}
	if err := e.store.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save game %s: %w", gameID, err)
	}

	st := &GameState{
		ID:              g.ID,
		Name:            g.Name,
		CreatedAt:       g.CreatedAt,
		StartedAt:       g.StartedAt,
		EndedAt:         g.EndedAt,
		Active:          g.Active,
		Reverse:         g.Reverse,
		MinPlayers:      g.MinPlayers,
		MaxPlayers:      g.MaxPlayers,
		PointsToWin:     g.PointsToWin,
		DrawPileSize:    len(g.DrawPile),
		DiscardPileSize: len(g.DiscardPile),
		LastDiscard:     g.TopDiscard(),
		Messages:        messages,
	}
	for _, p := range g.Players {
		sp := StatePlayer{
			DisplayID:  p.DisplayID,
			Name:       p.Name,
			Admin:      p.Admin,
			Active:     p.Active,
			HandSize:   len(p.Hand),
			Points:     p.Points,
			RoundsWon:  p.RoundsWon,
			GameWinner: p.GameWinner,
		}
		if p.ID == playerID {
			sp.ID = p.ID
			sp.Hand = p.Hand
			if p.Active {
				sp.DrawRequired = !hasPlayableCard(g, p)
			}
		}
		st.Players = append(st.Players, sp)
	}
	return st, nil
}

// ListOpenGames returns a summary of every joinable game.
func (e *Engine) ListOpenGames(ctx context.Context) ([]GameSummary, error) {
	games, err := e.store.ListOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open games: %w", err)
	}
	summaries := make([]GameSummary, 0, len(games))
	for _, g := range games {
		summaries = append(summaries, GameSummary{
			ID:         g.ID,
			Name:       g.Name,
			Players:    len(g.Players),
			MinPlayers: g.MinPlayers,
			MaxPlayers: g.MaxPlayers,
			CreatedAt:  g.CreatedAt,
		})
	}
	return summaries, nil
}

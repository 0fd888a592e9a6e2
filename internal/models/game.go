// internal/models/game.go
package models

import "time"

// Game is the full persisted record for one game. The draw and discard
// piles keep their top card as the last element of the slice.
type Game struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	DrawPile    []*Card `json:"draw_pile"`
	DiscardPile []*Card `json:"discard_pile"`

	CreatedAt time.Time  `json:"created_at"`
	StartedAt *time.Time `json:"started_at,omitempty"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`

	Active  bool `json:"active"`
	Reverse bool `json:"reverse"`

	MinPlayers  int       `json:"min_players"`
	MaxPlayers  int       `json:"max_players"`
	Players     []*Player `json:"players"`
	PointsToWin int       `json:"points_to_win"`
}

// PlayerByID returns the seated player with the given id, or nil.
func (g *Game) PlayerByID(playerID string) *Player {
	for _, p := range g.Players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// ActivePlayer returns the single active player, or nil if the game is
// not running.
func (g *Game) ActivePlayer() *Player {
	for _, p := range g.Players {
		if p.Active {
			return p
		}
	}
	return nil
}

// ActiveIndex returns the seat index of the active player, or -1.
func (g *Game) ActiveIndex() int {
	for i, p := range g.Players {
		if p.Active {
			return i
		}
	}
	return -1
}

// TopDiscard returns the top of the discard pile, or nil when empty.
func (g *Game) TopDiscard() *Card {
	if len(g.DiscardPile) == 0 {
		return nil
	}
	return g.DiscardPile[len(g.DiscardPile)-1]
}

// Broadcast queues a message for every seated player.
func (g *Game) Broadcast(data, level string) {
	for _, p := range g.Players {
		p.Flash(data, level)
	}
}

// BroadcastExcept queues a message for everyone but the listed players.
func (g *Game) BroadcastExcept(data, level string, except ...*Player) {
	for _, p := range g.Players {
		skip := false
		for _, e := range except {
			if p == e {
				skip = true
				break
			}
		}
		if !skip {
			p.Flash(data, level)
		}
	}
}

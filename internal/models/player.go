// internal/models/player.go
package models

// Message flash levels.
const (
	MessageSuccess = "success"
	MessageInfo    = "info"
	MessageWarning = "warning"
	MessageDanger  = "danger"
)

// Message is a queued human-readable notification for a single player.
// Messages are advisory only; they are drained when the player reads
// the game state.
type Message struct {
	Data string `json:"data"`
	Type string `json:"type"`
}

// Player is one seat in a game. Exactly one player is Active while the
// game is running. DisplayID is the short identifier shown to other
// players; ID itself is never revealed to anyone else.
type Player struct {
	ID         string    `json:"id"`
	DisplayID  string    `json:"display_id"`
	Name       string    `json:"name"`
	Admin      bool      `json:"admin"`
	Active     bool      `json:"active"`
	Hand       []*Card   `json:"hand"`
	Points     int       `json:"points"`
	RoundsWon  int       `json:"rounds_won"`
	GameWinner bool      `json:"game_winner"`
	Messages   []Message `json:"messages"`
}

// RemoveCard deletes the card with the given id from the player's hand.
// Returns false if the card is not held.
func (p *Player) RemoveCard(cardID string) bool {
	for i, c := range p.Hand {
		if c.ID == cardID {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// CardByID returns the held card with the given id, or nil.
func (p *Player) CardByID(cardID string) *Card {
	for _, c := range p.Hand {
		if c.ID == cardID {
			return c
		}
	}
	return nil
}

// Flash appends a message to the player's pending queue.
func (p *Player) Flash(data, level string) {
	p.Messages = append(p.Messages, Message{Data: data, Type: level})
}

// internal/game/deck.go
package game

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runo-cards/runo/internal/models"
)

// DeckSize is the full card count of a fresh deck: per color one "0",
// two each of "1".."9" and two each of DRAW_TWO/SKIP/REVERSE, plus four
// WILD and four WILD_DRAW_FOUR.
const DeckSize = 108

var numerals = []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}

// NewCard builds a card with a fresh identifier. Color is empty for
// wild cards.
func NewCard(value, color string) *models.Card {
	return &models.Card{ID: uuid.NewString(), Value: value, Color: color}
}

// NewDeck builds the full 108-card set in category order and returns it
// shuffled.
func NewDeck() []*models.Card {
	cards := make([]*models.Card, 0, DeckSize)
	for _, color := range models.Colors {
		cards = append(cards, NewCard(numerals[0], color))
		for _, value := range numerals[1:] {
			cards = append(cards, NewCard(value, color), NewCard(value, color))
		}
		for _, special := range models.ColoredSpecialValues {
			cards = append(cards, NewCard(special, color), NewCard(special, color))
		}
	}
	for _, special := range models.WildValues {
		for i := 0; i < 4; i++ {
			cards = append(cards, NewCard(special, ""))
		}
	}
	shuffle(cards)
	return cards
}

// shuffle applies a uniform random permutation in place.
func shuffle(cards []*models.Card) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// newDisplayID returns a short public identifier safe to show to other
// players.
func newDisplayID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// defaultName returns prefix plus five random digits, used when the
// caller supplies no name.
func defaultName(prefix string) string {
	digits := make([]byte, 5)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	return prefix + string(digits)
}

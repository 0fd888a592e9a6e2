// internal/game/play.go
package game

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/runo-cards/runo/internal/models"
)

// CanPlay reports whether a card is playable on the current discard
// top. Wild cards always are; anything else must match the top's color
// or value.
func CanPlay(g *models.Game, c *models.Card) bool {
	if c.IsWild() {
		return true
	}
	top := g.TopDiscard()
	if top == nil {
		return false
	}
	return c.Color == top.Color || c.Value == top.Value
}

// hasPlayableCard reports whether any held card is playable.
func hasPlayableCard(g *models.Game, p *models.Player) bool {
	for _, c := range p.Hand {
		if CanPlay(g, c) {
			return true
		}
	}
	return false
}

// hasMatchingColorCard reports whether the player holds a card of the
// current discard color. Used to reject an illegal WILD_DRAW_FOUR.
func hasMatchingColorCard(g *models.Game, p *models.Player) bool {
	top := g.TopDiscard()
	if top == nil {
		return false
	}
	for _, c := range p.Hand {
		if c.Color == top.Color {
			return true
		}
	}
	return false
}

// PlayCard validates and applies one play by the active player. A wild
// card must come with a selected color, which is stamped onto the card
// before it lands on the discard pile. Emptying the hand ends the
// round instead of advancing the turn.
func (e *Engine) PlayCard(ctx context.Context, gameID, playerID, cardID, selectedColor string) error {
	unlock := e.locks.Lock(gameID)
	defer unlock()

	g, err := e.load(ctx, gameID)
	if err != nil {
		return err
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return notFound("player %s in game %s", playerID, gameID)
	}
	if !p.Active {
		return illegalMove("player %s is not the active player", playerID)
	}
	card := p.CardByID(cardID)
	if card == nil {
		return notFound("card %s in hand of player %s", cardID, playerID)
	}
	if !g.Active {
		return conflict("game %s is not active", gameID)
	}
	if !CanPlay(g, card) {
		return illegalMove("card %s %s does not match discard top", card.Color, card.Value)
	}
	if card.Value == models.ValueWildDrawFour && hasMatchingColorCard(g, p) {
		return illegalMove("wild draw four played while holding a matching color")
	}
	if card.IsWild() {
		if !models.ValidColor(selectedColor) {
			return illegalMove("invalid color selection %q", selectedColor)
		}
		card.Color = selectedColor
	}

	p.RemoveCard(card.ID)
	if len(p.Hand) == 1 {
		p.Flash("Only one card to go!", models.MessageInfo)
		g.BroadcastExcept(fmt.Sprintf("%s only has one card left!", p.Name), models.MessageWarning, p)
	}
	g.DiscardPile = append(g.DiscardPile, card)

	if card.Value == models.ValueReverse {
		g.Reverse = !g.Reverse
		// With two players the flip is recorded but behaviorally inert,
		// so nobody is told about it.
		if len(g.Players) != 2 {
			if g.Reverse {
				g.Broadcast("Game order has been reversed", models.MessageInfo)
			} else {
				g.Broadcast("Game order is back to normal", models.MessageInfo)
			}
		}
	}

	if len(p.Hand) == 0 {
		e.setRoundWinner(g, p)
	} else {
		e.activateNextPlayer(g, false, false)
	}

	if err := e.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	e.logger.WithFields(log.Fields{
		"game": gameID, "player": playerID, "value": card.Value, "color": card.Color,
	}).Info("card played")
	return nil
}

// DrawCard draws one card for the active player. Drawing is forced
// only: a player holding any legal play may not draw. If the drawn
// card still leaves no legal play the turn passes on.
func (e *Engine) DrawCard(ctx context.Context, gameID, playerID string) error {
	unlock := e.locks.Lock(gameID)
	defer unlock()

	g, err := e.load(ctx, gameID)
	if err != nil {
		return err
	}
	p := g.PlayerByID(playerID)
	if p == nil {
		return notFound("player %s in game %s", playerID, gameID)
	}
	if !p.Active {
		return illegalMove("player %s is not the active player", playerID)
	}
	if !g.Active {
		return conflict("game %s is not active", gameID)
	}
	if hasPlayableCard(g, p) {
		return illegalMove("player %s holds a playable card", playerID)
	}

	e.drawInto(g, p, false)
	if !hasPlayableCard(g, p) {
		e.activateNextPlayer(g, true, false)
		g.BroadcastExcept(fmt.Sprintf("%s drew a card but couldn't play", p.Name), models.MessageInfo, p)
	} else {
		g.BroadcastExcept(fmt.Sprintf("%s drew a card", p.Name), models.MessageInfo, p)
	}

	if err := e.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	e.logger.WithFields(log.Fields{"game": gameID, "player": playerID}).Info("card drawn")
	return nil
}

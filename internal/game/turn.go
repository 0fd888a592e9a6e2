// internal/game/turn.go
package game

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/runo-cards/runo/internal/models"
)

// seatAfter returns the seat index reached by walking steps seats from
// index `from` in the game's current direction.
func seatAfter(g *models.Game, from, steps int) int {
	n := len(g.Players)
	if g.Reverse {
		steps = -steps
	}
	return ((from+steps)%n + n) % n
}

// activateNextPlayer deactivates the current player and activates the
// next one. When the transition follows an actual play (or a quit), the
// top discard card resolves its effect here; a fruitless draw passes
// the turn with no card logic, since effects only fire from a play.
//
// Only one modifier card can top the discard pile, so the branches are
// mutually exclusive. With two players a REVERSE has no observable
// effect other than ending the turn, so it is treated as a SKIP.
func (e *Engine) activateNextPlayer(g *models.Game, cardDrawn, playerQuit bool) {
	cur := g.ActiveIndex()
	if cur < 0 {
		return
	}
	active := g.Players[cur]
	active.Active = false

	n := len(g.Players)
	steps := 1
	if !cardDrawn || playerQuit {
		next := g.Players[seatAfter(g, cur, 1)]
		top := g.TopDiscard()
		switch {
		case top == nil:
			// Nothing played yet; plain advance.
		case top.Value == models.ValueReverse && n == 2:
			next.Flash(fmt.Sprintf("%s just skipped you via REVERSE!", active.Name), models.MessageWarning)
			steps = 2
		case top.Value == models.ValueSkip:
			next.Flash(fmt.Sprintf("%s just skipped you!", active.Name), models.MessageWarning)
			if n != 2 {
				g.BroadcastExcept(fmt.Sprintf("%s just skipped %s!", active.Name, next.Name),
					models.MessageInfo, active, next)
			}
			steps = 2
		case top.Value == models.ValueDrawTwo:
			e.forceDraw(g, next, 2)
			next.Flash(fmt.Sprintf("%s made you draw two cards!", active.Name), models.MessageWarning)
			g.BroadcastExcept(fmt.Sprintf("%s made %s draw two cards!", active.Name, next.Name),
				models.MessageInfo, active, next)
			steps = 2
		case top.Value == models.ValueWildDrawFour:
			e.forceDraw(g, next, 4)
			next.Flash(fmt.Sprintf("%s made you draw four cards!", active.Name), models.MessageWarning)
			g.BroadcastExcept(fmt.Sprintf("%s made %s draw four cards!", active.Name, next.Name),
				models.MessageInfo, active, next)
			steps = 2
		}
	}

	nextIdx := seatAfter(g, cur, steps)
	g.Players[nextIdx].Active = true
	e.logger.WithFields(log.Fields{
		"game": g.ID, "from": active.ID, "to": g.Players[nextIdx].ID,
	}).Debug("turn advanced")
}

// forceDraw draws count cards into a player's hand on their behalf.
func (e *Engine) forceDraw(g *models.Game, p *models.Player, count int) {
	for i := 0; i < count; i++ {
		e.drawInto(g, p, false)
	}
}

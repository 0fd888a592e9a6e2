// internal/game/scoring.go
package game

import (
	"fmt"
	"strconv"
	"time"

	"github.com/runo-cards/runo/internal/models"
)

// HandValue totals the points a player's remaining hand is worth to a
// round winner: 50 per wild card, 20 per colored special, face value
// for numerals.
func HandValue(p *models.Player) int {
	points := 0
	for _, c := range p.Hand {
		switch {
		case c.IsWild():
			points += 50
		case c.IsColoredSpecial():
			points += 20
		default:
			v, _ := strconv.Atoi(c.Value)
			points += v
		}
	}
	return points
}

// RoundScore sums the hand values of every player except the winner.
func RoundScore(g *models.Game, winner *models.Player) int {
	points := 0
	for _, p := range g.Players {
		if p.ID != winner.ID {
			points += HandValue(p)
		}
	}
	return points
}

// setRoundWinner awards the round to the player whose hand just
// emptied. Crossing the points threshold ends the game; otherwise all
// hands are reclaimed and redealt and play continues with whoever is
// next in turn order. The redeal seeds a fresh non-special discard top,
// so the winning card's effect never carries into the new round.
func (e *Engine) setRoundWinner(g *models.Game, winner *models.Player) {
	winner.Points += RoundScore(g, winner)
	winner.RoundsWon++
	if winner.Points >= g.PointsToWin {
		e.setGameWinner(g, winner)
		return
	}
	for _, p := range g.Players {
		g.DiscardPile = append(append([]*models.Card{}, p.Hand...), g.DiscardPile...)
		p.Hand = []*models.Card{}
	}
	e.deal(g)
	e.activateNextPlayer(g, false, false)
	winner.Flash("You won the round!", models.MessageSuccess)
	g.BroadcastExcept(fmt.Sprintf("%s won the round!", winner.Name), models.MessageInfo, winner)
}

// setGameWinner ends the game in favor of the given player.
func (e *Engine) setGameWinner(g *models.Game, winner *models.Player) {
	now := time.Now().UTC()
	g.Active = false
	winner.Active = false
	g.EndedAt = &now
	winner.GameWinner = true
	winner.Flash("You won the game!", models.MessageSuccess)
	g.BroadcastExcept(fmt.Sprintf("%s won the game!", winner.Name), models.MessageInfo, winner)
	e.logger.WithField("game", g.ID).WithField("winner", winner.ID).Info("game won")
}

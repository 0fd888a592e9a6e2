// internal/game/play_test.go
package game

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runo-cards/runo/internal/models"
)

func TestCanPlay(t *testing.T) {
	g := stubGame(2)
	g.DiscardPile = []*models.Card{NewCard("5", models.ColorRed)}

	assert.True(t, CanPlay(g, NewCard("5", models.ColorGreen)), "value match")
	assert.True(t, CanPlay(g, NewCard("9", models.ColorRed)), "color match")
	assert.True(t, CanPlay(g, NewCard(models.ValueSkip, models.ColorRed)), "special color match")
	assert.True(t, CanPlay(g, NewCard(models.ValueWild, "")), "wild always plays")
	assert.True(t, CanPlay(g, NewCard(models.ValueWildDrawFour, "")), "wild draw four always plays")
	assert.False(t, CanPlay(g, NewCard("9", models.ColorGreen)))
	assert.False(t, CanPlay(g, NewCard(models.ValueSkip, models.ColorBlue)))
}

// rigGame replaces the active player's hand and the discard top with
// known cards and persists the result.
func rigGame(t *testing.T, e *Engine, g *models.Game, hand []*models.Card, top *models.Card) {
	t.Helper()
	g.Players[0].Hand = hand
	g.DiscardPile = []*models.Card{top}
	save(t, e, g)
}

func TestPlayCardHappyPath(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	played := NewCard("5", models.ColorRed)
	rigGame(t, e, g, []*models.Card{played, NewCard("9", models.ColorGreen)}, NewCard("3", models.ColorRed))

	require.NoError(t, e.PlayCard(ctx, g.ID, g.Players[0].ID, played.ID, ""))

	g2 := reload(t, e, g.ID)
	assert.Equal(t, played.ID, g2.TopDiscard().ID)
	assert.Len(t, g2.Players[0].Hand, 1)
	assert.False(t, g2.Players[0].Active)
	assert.True(t, g2.Players[1].Active)
	// Down to one card: everyone hears about it.
	assert.NotEmpty(t, g2.Players[1].Messages)
}

func TestPlayCardRejections(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	held := NewCard("9", models.ColorGreen)
	rigGame(t, e, g, []*models.Card{held}, NewCard("3", models.ColorRed))

	adminID := g.Players[0].ID
	otherID := g.Players[1].ID

	assert.ErrorIs(t, e.PlayCard(ctx, "nope", adminID, held.ID, ""), ErrNotFound)
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, "nobody", held.ID, ""), ErrNotFound)
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, otherID, held.ID, ""), ErrIllegalMove, "not their turn")
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, adminID, "missing-card", ""), ErrNotFound)
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, adminID, held.ID, ""), ErrIllegalMove, "card does not match")

	// Active game precondition, with everything else in order.
	playable := NewCard("3", models.ColorGreen)
	rigGame(t, e, g, []*models.Card{playable}, NewCard("3", models.ColorRed))
	g2 := reload(t, e, g.ID)
	g2.Active = false
	save(t, e, g2)
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, adminID, playable.ID, ""), ErrConflict)
}

func TestPlayWildRequiresColor(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	wild := NewCard(models.ValueWild, "")
	rigGame(t, e, g, []*models.Card{wild, NewCard("9", models.ColorGreen)}, NewCard("3", models.ColorRed))

	playerID := g.Players[0].ID
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, playerID, wild.ID, ""), ErrIllegalMove)
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, playerID, wild.ID, "PINK"), ErrIllegalMove)

	require.NoError(t, e.PlayCard(ctx, g.ID, playerID, wild.ID, models.ColorBlue))
	g2 := reload(t, e, g.ID)
	assert.Equal(t, models.ColorBlue, g2.TopDiscard().Color, "chosen color is stamped onto the card")
}

func TestPlayWildDrawFourChallenge(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	playerID := g.Players[0].ID

	// Holding a card of the discard color: the draw four is illegal.
	wdf := NewCard(models.ValueWildDrawFour, "")
	rigGame(t, e, g, []*models.Card{wdf, NewCard("9", models.ColorRed)}, NewCard("3", models.ColorRed))
	assert.ErrorIs(t, e.PlayCard(ctx, g.ID, playerID, wdf.ID, models.ColorBlue), ErrIllegalMove)

	// No matching color in hand: accepted, victim draws four and is
	// skipped, so with two players the turn comes straight back.
	wdf = NewCard(models.ValueWildDrawFour, "")
	rigGame(t, e, g, []*models.Card{wdf, NewCard("9", models.ColorGreen)}, NewCard("3", models.ColorRed))
	victimHand := len(reload(t, e, g.ID).Players[1].Hand)

	require.NoError(t, e.PlayCard(ctx, g.ID, playerID, wdf.ID, models.ColorBlue))
	g2 := reload(t, e, g.ID)
	assert.Len(t, g2.Players[1].Hand, victimHand+4)
	assert.True(t, g2.Players[0].Active, "victim is skipped, player acts again")
}

func TestPlayReverseTwoPlayers(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	rev := NewCard(models.ValueReverse, models.ColorRed)
	rigGame(t, e, g, []*models.Card{rev, NewCard("9", models.ColorGreen)}, NewCard("3", models.ColorRed))

	require.NoError(t, e.PlayCard(ctx, g.ID, g.Players[0].ID, rev.ID, ""))

	g2 := reload(t, e, g.ID)
	assert.True(t, g2.Reverse, "the flip is recorded")
	assert.True(t, g2.Players[0].Active, "but with two players the player acts again")
	assert.False(t, g2.Players[1].Active)
}

func TestPlayReverseFlipsDirection(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 4)
	rev := NewCard(models.ValueReverse, models.ColorRed)
	rigGame(t, e, g, []*models.Card{rev, NewCard("9", models.ColorGreen)}, NewCard("3", models.ColorRed))

	require.NoError(t, e.PlayCard(ctx, g.ID, g.Players[0].ID, rev.ID, ""))

	g2 := reload(t, e, g.ID)
	assert.True(t, g2.Reverse)
	assert.True(t, g2.Players[3].Active, "play proceeds backward from the reverser")
}

func TestPlayDrawTwoFourPlayers(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 4)
	d2 := NewCard(models.ValueDrawTwo, models.ColorRed)
	rigGame(t, e, g, []*models.Card{d2, NewCard("9", models.ColorGreen)}, NewCard("3", models.ColorRed))
	victimHand := len(g.Players[1].Hand)

	require.NoError(t, e.PlayCard(ctx, g.ID, g.Players[0].ID, d2.ID, ""))

	g2 := reload(t, e, g.ID)
	assert.Len(t, g2.Players[1].Hand, victimHand+2, "next player draws two")
	assert.False(t, g2.Players[1].Active, "and never acts")
	assert.True(t, g2.Players[2].Active)
}

func TestDrawCardForcedOnly(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	rigGame(t, e, g, []*models.Card{NewCard("5", models.ColorRed)}, NewCard("3", models.ColorRed))

	err := e.DrawCard(ctx, g.ID, g.Players[0].ID)
	assert.ErrorIs(t, err, ErrIllegalMove, "a player with a legal play may not draw")
}

func TestDrawCardStillUnplayableAdvancesTurn(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	rigGame(t, e, g, []*models.Card{NewCard("7", models.ColorGreen)}, NewCard("3", models.ColorRed))
	g = reload(t, e, g.ID)
	// Arrange the top of the draw pile to stay unplayable.
	g.DrawPile = append(g.DrawPile, NewCard("9", models.ColorYellow))
	save(t, e, g)

	require.NoError(t, e.DrawCard(ctx, g.ID, g.Players[0].ID))

	g2 := reload(t, e, g.ID)
	assert.Len(t, g2.Players[0].Hand, 2)
	assert.False(t, g2.Players[0].Active, "still nothing to play, turn passes")
	assert.True(t, g2.Players[1].Active)
}

func TestDrawCardPlayableKeepsTurn(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	rigGame(t, e, g, []*models.Card{NewCard("7", models.ColorGreen)}, NewCard("3", models.ColorRed))
	g = reload(t, e, g.ID)
	g.DrawPile = append(g.DrawPile, NewCard("9", models.ColorRed))
	save(t, e, g)

	require.NoError(t, e.DrawCard(ctx, g.ID, g.Players[0].ID))

	g2 := reload(t, e, g.ID)
	assert.Len(t, g2.Players[0].Hand, 2)
	assert.True(t, g2.Players[0].Active, "the drawn card is playable, same player continues")
}

func TestDrawCardReclaimsEmptyPile(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	rigGame(t, e, g, []*models.Card{NewCard("7", models.ColorGreen)}, NewCard("3", models.ColorRed))
	g = reload(t, e, g.ID)

	playedWild := NewCard(models.ValueWild, "")
	playedWild.Color = models.ColorBlue
	top := NewCard("3", models.ColorRed)
	g.DiscardPile = []*models.Card{
		NewCard("1", models.ColorGreen),
		playedWild,
		NewCard("8", models.ColorYellow),
		top,
	}
	g.DrawPile = []*models.Card{NewCard("9", models.ColorYellow)}
	save(t, e, g)

	require.NoError(t, e.DrawCard(ctx, g.ID, g.Players[0].ID))

	g2 := reload(t, e, g.ID)
	require.Len(t, g2.DiscardPile, 1, "only the preserved top remains")
	assert.Equal(t, top.ID, g2.TopDiscard().ID)
	assert.Len(t, g2.DrawPile, 3, "the rest becomes the new draw pile")
	for _, c := range g2.DrawPile {
		if c.IsWild() {
			assert.Empty(t, c.Color, "wild cards re-enter circulation colorless")
		}
	}
}

func TestRoundWinAwardsPointsAndRedeals(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	last := NewCard("5", models.ColorRed)
	rigGame(t, e, g, []*models.Card{last}, NewCard("3", models.ColorRed))
	g = reload(t, e, g.ID)
	g.Players[1].Hand = []*models.Card{
		NewCard(models.ValueWild, ""),              // 50
		NewCard(models.ValueSkip, models.ColorRed), // 20
		NewCard("3", models.ColorRed),              // 3
	}
	save(t, e, g)

	require.NoError(t, e.PlayCard(ctx, g.ID, g.Players[0].ID, last.ID, ""))

	g2 := reload(t, e, g.ID)
	winner := g2.Players[0]
	assert.Equal(t, 73, winner.Points)
	assert.Equal(t, 1, winner.RoundsWon)
	assert.False(t, winner.GameWinner)
	assert.True(t, g2.Active, "below the threshold the game continues")
	for _, p := range g2.Players {
		assert.Len(t, p.Hand, HandSize, "fresh hands all around")
	}
	top := g2.TopDiscard()
	require.NotNil(t, top)
	assert.False(t, top.IsWild() || top.IsColoredSpecial(), "new round opens on a plain card")
	assert.NotNil(t, g2.ActivePlayer())
}

func TestGameWinEndsGame(t *testing.T) {
	e, _ := newTestEngine()
	ctx := context.Background()
	g := startedGame(t, e, 2)
	last := NewCard("5", models.ColorRed)
	rigGame(t, e, g, []*models.Card{last}, NewCard("3", models.ColorRed))
	g = reload(t, e, g.ID)
	g.PointsToWin = 50
	g.Players[1].Hand = []*models.Card{NewCard(models.ValueWildDrawFour, "")} // 50
	save(t, e, g)

	require.NoError(t, e.PlayCard(ctx, g.ID, g.Players[0].ID, last.ID, ""))

	g2 := reload(t, e, g.ID)
	winner := g2.Players[0]
	assert.Equal(t, 50, winner.Points)
	assert.True(t, winner.GameWinner)
	assert.False(t, g2.Active)
	require.NotNil(t, g2.EndedAt)
	assert.Nil(t, g2.ActivePlayer(), "nobody is active once the game ends")
}

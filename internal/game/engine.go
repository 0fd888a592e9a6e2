// internal/game/engine.go
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/runo-cards/runo/internal/guard"
	"github.com/runo-cards/runo/internal/models"
	"github.com/runo-cards/runo/internal/store"
)

// Defaults and limits for game creation.
const (
	DefaultPointsToWin = 250
	DefaultMinPlayers  = 2
	DefaultMaxPlayers  = 8
	MinPlayersFloor    = 2
	MaxPlayersCeiling  = 10
	HandSize           = 7
)

// Engine runs every game operation as a synchronous load-mutate-save
// cycle against the record store, serialized per game id. The engine
// itself keeps no game state between requests.
type Engine struct {
	store     store.Store
	guard     guard.CreationGuard
	logger    log.FieldLogger
	locks     *keyedMutex
	retention time.Duration
}

// NewEngine wires an engine to its collaborators. A nil guard allows
// unlimited game creation; a zero retention keeps games forever.
func NewEngine(s store.Store, g guard.CreationGuard, logger log.FieldLogger, retention time.Duration) *Engine {
	if g == nil {
		g = guard.Unlimited{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Engine{
		store:     s,
		guard:     g,
		logger:    logger,
		locks:     newKeyedMutex(),
		retention: retention,
	}
}

// load fetches a game record, translating a missing record into a rule
// error.
func (e *Engine) load(ctx context.Context, gameID string) (*models.Game, error) {
	g, err := e.store.Load(ctx, gameID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, notFound("game %s", gameID)
		}
		return nil, fmt.Errorf("load game %s: %w", gameID, err)
	}
	return g, nil
}

// CreateGame builds a new game with a fresh shuffled deck and the
// founder seated as the sole admin. Zero-valued options take defaults;
// minPlayers is clamped to at least 2 and maxPlayers to at most 10.
// Creation is refused when the rate guard denies it.
func (e *Engine) CreateGame(ctx context.Context, name, founderName string, pointsToWin, minPlayers, maxPlayers int) (*models.Game, error) {
	if err := e.PurgeExpired(ctx); err != nil {
		e.logger.WithError(err).Warn("housekeeping sweep failed")
	}
	ok, err := e.guard.Allow(ctx)
	if err != nil {
		return nil, fmt.Errorf("creation guard: %w", err)
	}
	if !ok {
		return nil, conflict("game creation refused")
	}

	if name == "" {
		name = defaultName("Game")
	}
	if founderName == "" {
		founderName = defaultName("Player")
	}
	if pointsToWin <= 0 {
		pointsToWin = DefaultPointsToWin
	}
	if minPlayers <= 0 {
		minPlayers = DefaultMinPlayers
	}
	if maxPlayers <= 0 {
		maxPlayers = DefaultMaxPlayers
	}
	if minPlayers < MinPlayersFloor {
		minPlayers = MinPlayersFloor
	}
	if maxPlayers > MaxPlayersCeiling {
		maxPlayers = MaxPlayersCeiling
	}

	g := &models.Game{
		ID:          uuid.NewString(),
		Name:        name,
		DrawPile:    NewDeck(),
		DiscardPile: []*models.Card{},
		CreatedAt:   time.Now().UTC(),
		MinPlayers:  minPlayers,
		MaxPlayers:  maxPlayers,
		Players:     []*models.Player{},
		PointsToWin: pointsToWin,
	}
	addPlayer(g, founderName, true)
	g.Broadcast(`Click "Start" after all player(s) have joined`, models.MessageInfo)

	if err := e.store.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save new game: %w", err)
	}
	e.logger.WithFields(log.Fields{"game": g.ID, "name": g.Name}).Info("game created")
	return g, nil
}

// addPlayer seats a new player, or returns nil at capacity.
func addPlayer(g *models.Game, name string, admin bool) *models.Player {
	if len(g.Players) == g.MaxPlayers {
		return nil
	}
	p := &models.Player{
		ID:        uuid.NewString(),
		DisplayID: newDisplayID(),
		Name:      name,
		Admin:     admin,
		Hand:      []*models.Card{},
		Messages:  []models.Message{},
	}
	g.Players = append(g.Players, p)
	return p
}

// JoinGame seats a new non-admin player in a game that has not started.
func (e *Engine) JoinGame(ctx context.Context, gameID, name string) (*models.Player, error) {
	unlock := e.locks.Lock(gameID)
	defer unlock()

	if name == "" {
		name = defaultName("Player")
	}
	g, err := e.load(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if g.Active {
		return nil, conflict("game %s already started", gameID)
	}
	if g.EndedAt != nil {
		return nil, conflict("game %s has ended", gameID)
	}
	p := addPlayer(g, name, false)
	if p == nil {
		return nil, conflict("game %s is full", gameID)
	}
	p.Flash("You have joined the game", models.MessageInfo)
	g.BroadcastExcept(fmt.Sprintf("%s has joined the game", p.Name), models.MessageInfo, p)

	if err := e.store.Save(ctx, g); err != nil {
		return nil, fmt.Errorf("save game %s: %w", gameID, err)
	}
	e.logger.WithFields(log.Fields{"game": gameID, "player": p.ID}).Info("player joined")
	return p, nil
}

// LeaveGame removes a player. If they were active the turn advances
// first, while they still hold their seat, so the walk order stays
// consistent. Admin falls to the first remaining seat. An active game
// ends once a single player remains; an empty game ends regardless.
func (e *Engine) LeaveGame(ctx context.Context, gameID, playerID string) error {
	unlock := e.locks.Lock(gameID)
	defer unlock()

	g, err := e.load(ctx, gameID)
	if err != nil {
		return err
	}
	quitter := g.PlayerByID(playerID)
	if quitter == nil {
		return notFound("player %s in game %s", playerID, gameID)
	}
	if g.EndedAt != nil {
		return conflict("game %s has ended", gameID)
	}

	quitter.Flash("You have left the game", models.MessageInfo)
	g.BroadcastExcept(fmt.Sprintf("%s has left the game", quitter.Name), models.MessageInfo, quitter)

	if quitter.Active {
		e.activateNextPlayer(g, false, true)
	}
	for i, p := range g.Players {
		if p.ID == quitter.ID {
			g.Players = append(g.Players[:i], g.Players[i+1:]...)
			break
		}
	}

	var newAdmin *models.Player
	if quitter.Admin && len(g.Players) > 0 {
		newAdmin = g.Players[0]
		newAdmin.Admin = true
	}

	if g.Active && len(g.Players) == 1 {
		now := time.Now().UTC()
		g.Active = false
		g.Players[0].Active = false
		g.EndedAt = &now
		g.Broadcast("The game has ended", models.MessageInfo)
	}
	if newAdmin != nil && g.StartedAt == nil && g.EndedAt == nil {
		newAdmin.Flash("You are now the game administrator", models.MessageInfo)
	}
	if len(g.Players) == 0 {
		now := time.Now().UTC()
		g.EndedAt = &now
	}

	// The quitter's cards go under the discard pile so they re-enter
	// circulation on the next reclaim, never reshuffled in immediately.
	if g.Active {
		g.DiscardPile = append(append([]*models.Card{}, quitter.Hand...), g.DiscardPile...)
		quitter.Hand = []*models.Card{}
	}

	if err := e.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	e.logger.WithFields(log.Fields{"game": gameID, "player": playerID}).Info("player left")
	return nil
}

// AdminStartGame deals and activates the game. Only the current admin
// may start, and only once at least MinPlayers have joined.
func (e *Engine) AdminStartGame(ctx context.Context, gameID, playerID string) error {
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
	if g.Active {
		return conflict("game %s already started", gameID)
	}
	if g.EndedAt != nil {
		return conflict("game %s has ended", gameID)
	}
	if len(g.Players) < g.MinPlayers {
		return conflict("game %s below minimum of %d players", gameID, g.MinPlayers)
	}
	if !p.Admin {
		return illegalMove("player %s is not the game administrator", playerID)
	}

	e.deal(g)
	for _, pl := range g.Players {
		if pl.Admin {
			pl.Active = true
			break
		}
	}
	now := time.Now().UTC()
	g.Active = true
	g.StartedAt = &now

	p.Flash("The game has started", models.MessageInfo)
	g.BroadcastExcept(fmt.Sprintf("%s started the game", p.Name), models.MessageInfo, p)
	g.Broadcast(fmt.Sprintf("The first player to reach %d points wins!", g.PointsToWin), models.MessageInfo)

	if err := e.store.Save(ctx, g); err != nil {
		return fmt.Errorf("save game %s: %w", gameID, err)
	}
	e.logger.WithFields(log.Fields{"game": gameID, "players": len(g.Players)}).Info("game started")
	return nil
}

// deal gives every player a hand of seven, then seeds the discard pile
// with the first non-special card found from the top of the draw pile.
func (e *Engine) deal(g *models.Game) {
	for _, p := range g.Players {
		for i := 0; i < HandSize; i++ {
			e.drawInto(g, p, true)
		}
	}
	for i := len(g.DrawPile) - 1; i >= 0; i-- {
		c := g.DrawPile[i]
		if !c.IsWild() && !c.IsColoredSpecial() {
			g.DiscardPile = append(g.DiscardPile, c)
			g.DrawPile = append(g.DrawPile[:i], g.DrawPile[i+1:]...)
			break
		}
	}
}

// drawInto moves the top draw-pile card into a hand, reclaiming the
// discard pile the moment the draw pile runs dry.
func (e *Engine) drawInto(g *models.Game, p *models.Player, isDeal bool) {
	if len(g.DrawPile) == 0 {
		e.reclaim(g, isDeal)
		if len(g.DrawPile) == 0 {
			return
		}
	}
	top := len(g.DrawPile) - 1
	p.Hand = append(p.Hand, g.DrawPile[top])
	g.DrawPile = g.DrawPile[:top]
	if len(g.DrawPile) == 0 {
		e.reclaim(g, isDeal)
	}
}

// reclaim turns the discard pile into a fresh shuffled draw pile. The
// current top card stays behind so play can continue, except during a
// deal where the pile is consumed whole. Wild cards re-enter
// circulation colorless.
func (e *Engine) reclaim(g *models.Game, isDeal bool) {
	g.DrawPile = g.DiscardPile
	if !isDeal && len(g.DrawPile) > 0 {
		top := len(g.DrawPile) - 1
		g.DiscardPile = []*models.Card{g.DrawPile[top]}
		g.DrawPile = g.DrawPile[:top]
	} else {
		g.DiscardPile = []*models.Card{}
	}
	shuffle(g.DrawPile)
	for _, c := range g.DrawPile {
		if c.IsWild() {
			c.Color = ""
		}
	}
	e.logger.WithFields(log.Fields{"game": g.ID, "size": len(g.DrawPile)}).Debug("reclaimed discard pile")
}

// PurgeExpired deletes games older than the retention window.
func (e *Engine) PurgeExpired(ctx context.Context) error {
	if e.retention <= 0 {
		return nil
	}
	ids, err := e.store.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	cutoff := time.Now().UTC().Add(-e.retention)
	for _, id := range ids {
		g, err := e.store.Load(ctx, id)
		if err != nil {
			continue
		}
		if g.CreatedAt.Before(cutoff) {
			if err := e.store.Delete(ctx, id); err != nil {
				return fmt.Errorf("delete game %s: %w", id, err)
			}
			e.locks.Forget(id)
			e.logger.WithField("game", id).Info("purged expired game")
		}
	}
	return nil
}

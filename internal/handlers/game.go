// internal/handlers/game.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/runo-cards/runo/internal/auth"
	"github.com/runo-cards/runo/internal/game"
)

// intArg parses an integer query argument, returning 0 when absent or
// malformed so the engine applies its default.
func intArg(r *http.Request, key string) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return v
}

// playerArg resolves the caller's player id: the player_id query
// argument wins, else the session cookie for the same game.
func playerArg(r *http.Request, gameID string) string {
	if id := r.URL.Query().Get("player_id"); id != "" {
		return id
	}
	cookie, err := r.Cookie("runo_session")
	if err != nil {
		return ""
	}
	tokenGame, playerID, err := auth.ParseSession(cookie.Value)
	if err != nil || tokenGame != gameID {
		return ""
	}
	return playerID
}

// setSession attaches a signed session cookie carrying the player id.
func (s *Server) setSession(w http.ResponseWriter, gameID, playerID string) {
	token, err := auth.CreateSession(gameID, playerID)
	if err != nil {
		s.Logger.WithError(err).Warn("failed to create session token")
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "runo_session",
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
}

// NewGameHandler creates a game and returns its id plus the founder's
// player id, or an empty object when creation is refused.
func (s *Server) NewGameHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	g, err := s.Engine.CreateGame(r.Context(),
		q.Get("game_name"), q.Get("player_name"),
		intArg(r, "points_to_win"), intArg(r, "min_players"), intArg(r, "max_players"))
	if err != nil {
		if game.IsRuleError(err) {
			s.writeJSON(w, map[string]interface{}{})
			return
		}
		s.Logger.WithError(err).Error("create game failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	founder := g.Players[0]
	s.setSession(w, g.ID, founder.ID)
	s.writeJSON(w, map[string]string{
		"game_id":   g.ID,
		"player_id": founder.ID,
	})
}

// JoinHandler seats a new player. The player id is null on failure.
func (s *Server) JoinHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameID := q.Get("game_id")
	p, err := s.Engine.JoinGame(r.Context(), gameID, q.Get("name"))
	if err != nil {
		if game.IsRuleError(err) {
			s.writeJSON(w, map[string]interface{}{"player_id": nil})
			return
		}
		s.Logger.WithError(err).Error("join game failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.setSession(w, gameID, p.ID)
	s.writeJSON(w, map[string]string{"player_id": p.ID})
}

// LeaveHandler removes a player from a game.
func (s *Server) LeaveHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	err := s.Engine.LeaveGame(r.Context(), gameID, playerArg(r, gameID))
	s.writeResult(w, err)
}

// StartHandler starts a game on behalf of its admin.
func (s *Server) StartHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	err := s.Engine.AdminStartGame(r.Context(), gameID, playerArg(r, gameID))
	s.writeResult(w, err)
}

// PlayCardHandler plays one card for the active player.
func (s *Server) PlayCardHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	gameID := q.Get("game_id")
	err := s.Engine.PlayCard(r.Context(), gameID, playerArg(r, gameID),
		q.Get("card_id"), q.Get("selected_color"))
	s.writeResult(w, err)
}

// DrawHandler draws a card for the active player.
func (s *Server) DrawHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	err := s.Engine.DrawCard(r.Context(), gameID, playerArg(r, gameID))
	s.writeResult(w, err)
}

// GetStateHandler returns the caller's masked view of the game, or an
// empty object for unknown ids.
func (s *Server) GetStateHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game_id")
	st, err := s.Engine.GetState(r.Context(), gameID, playerArg(r, gameID))
	if err != nil {
		if game.IsRuleError(err) {
			s.writeJSON(w, map[string]interface{}{})
			return
		}
		s.Logger.WithError(err).Error("get state failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, st)
}

// ListGamesHandler returns summaries of every joinable game.
func (s *Server) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.Engine.ListOpenGames(r.Context())
	if err != nil {
		s.Logger.WithError(err).Error("list games failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, summaries)
}

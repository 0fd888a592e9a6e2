// internal/handlers/api_server.go
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/runo-cards/runo/internal/game"
)

// Server exposes the engine's operation surface over HTTP. Each route
// maps 1:1 onto one engine operation; the handlers only parse request
// arguments and translate outcomes.
type Server struct {
	Engine *game.Engine
	Logger *logrus.Logger
}

// NewServer wires a Server.
func NewServer(engine *game.Engine, logger *logrus.Logger) *Server {
	return &Server{Engine: engine, Logger: logger}
}

// Routes registers every operation route on the mux.
func (s *Server) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/newgame", s.NewGameHandler)
	mux.HandleFunc("/join", s.JoinHandler)
	mux.HandleFunc("/leave", s.LeaveHandler)
	mux.HandleFunc("/start", s.StartHandler)
	mux.HandleFunc("/playcard", s.PlayCardHandler)
	mux.HandleFunc("/draw", s.DrawHandler)
	mux.HandleFunc("/getstate", s.GetStateHandler)
	mux.HandleFunc("/listgames", s.ListGamesHandler)
}

// writeJSON encodes v with the JSON content type.
func (s *Server) writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.WithError(err).Error("failed to write response")
	}
}

// writeResult reports an operation outcome. Rule violations become
// {"result": false} with no further detail; anything else is a
// persistence failure and maps to a 500.
func (s *Server) writeResult(w http.ResponseWriter, err error) {
	if err == nil {
		s.writeJSON(w, map[string]bool{"result": true})
		return
	}
	if game.IsRuleError(err) {
		s.writeJSON(w, map[string]bool{"result": false})
		return
	}
	s.Logger.WithError(err).Error("operation failed")
	http.Error(w, "internal error", http.StatusInternalServerError)
}

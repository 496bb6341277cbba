package api

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/academy-api/internal/models"
)

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.respondLeaderboard(w, r, models.MetricTotalPoints)
}

func (s *Server) handleWeeklyLeaderboard(w http.ResponseWriter, r *http.Request) {
	s.respondLeaderboard(w, r, models.MetricWeeklyPoints)
}

func (s *Server) respondLeaderboard(w http.ResponseWriter, r *http.Request, metric models.LeaderboardMetric) {
	entries, err := s.service.Leaderboard(r.Context(), metric, parseLimit(r))
	if err != nil {
		respondInternal(w, r, "Failed to get leaderboard", err)
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (s *Server) handleAwardPoints(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}
	delta, ok := decodeCreate[models.PointsDelta](w, r)
	if !ok {
		return
	}

	entry, err := s.service.AwardPoints(r.Context(), userID, *delta)
	if err != nil {
		respondInternal(w, r, "Failed to award points", err)
		return
	}
	if entry == nil {
		respondError(w, http.StatusNotFound, "Leaderboard entry not found")
		return
	}

	respondJSON(w, http.StatusOK, entry)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// handleLeaderboardStream upgrades to a WebSocket that receives leaderboard
// change events until either side disconnects
func (s *Server) handleLeaderboardStream(w http.ResponseWriter, r *http.Request) {
	u := upgrader
	u.CheckOrigin = s.checkOrigin

	conn, err := u.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		LoggerFromContext(r.Context()).Warn("failed to upgrade to websocket", "error", err)
		return
	}

	LoggerFromContext(r.Context()).Info("leaderboard stream connected", "remote_addr", r.RemoteAddr)
	s.hub.Serve(conn)
	LoggerFromContext(r.Context()).Info("leaderboard stream disconnected", "remote_addr", r.RemoteAddr)
}

// checkOrigin applies the CORS allow-list to WebSocket handshakes
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range s.config.Server.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

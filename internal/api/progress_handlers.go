package api

import (
	"net/http"

	"github.com/terra-clan/academy-api/internal/models"
)

func (s *Server) handleListUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	progress, err := s.repo.ListUserProgress(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, "Failed to list progress", err)
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

func (s *Server) handleGetUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userId", "Invalid ID")
	if !ok {
		return
	}
	pathID, ok := parseID(w, r, "pathId", "Invalid ID")
	if !ok {
		return
	}

	progress, err := s.repo.GetUserProgress(r.Context(), userID, pathID)
	if err != nil {
		respondInternal(w, r, "Failed to get progress", err)
		return
	}
	if progress == nil {
		respondError(w, http.StatusNotFound, "Progress not found")
		return
	}

	respondJSON(w, http.StatusOK, progress)
}

// handleUpsertProgress creates the (user, path) record or overwrites it in place
func (s *Server) handleUpsertProgress(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCreate[models.ProgressInput](w, r)
	if !ok {
		return
	}

	progress, err := s.repo.UpsertUserProgress(r.Context(), *in)
	if err != nil {
		respondInternal(w, r, "Failed to update progress", err)
		return
	}

	respondJSON(w, http.StatusCreated, progress)
}

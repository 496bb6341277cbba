package api

import (
	"errors"
	"net/http"

	"github.com/terra-clan/academy-api/internal/academy"
	"github.com/terra-clan/academy-api/internal/models"
)

// Challenge handlers

func (s *Server) handleListChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := s.repo.ListChallenges(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to list challenges", err)
		return
	}
	respondJSON(w, http.StatusOK, challenges)
}

func (s *Server) handleGetChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid challenge ID")
	if !ok {
		return
	}

	challenge, err := s.repo.GetChallenge(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to get challenge", err)
		return
	}
	if challenge == nil {
		respondError(w, http.StatusNotFound, "Challenge not found")
		return
	}

	respondJSON(w, http.StatusOK, challenge)
}

func (s *Server) handleCreateChallenge(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCreate[models.ChallengeInput](w, r)
	if !ok {
		return
	}

	challenge, err := s.repo.CreateChallenge(r.Context(), *in)
	if err != nil {
		respondInternal(w, r, "Failed to create challenge", err)
		return
	}

	respondJSON(w, http.StatusCreated, challenge)
}

func (s *Server) handleUpdateChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid challenge ID")
	if !ok {
		return
	}
	in, ok := decodeUpdate[models.ChallengeInput](w, r)
	if !ok {
		return
	}

	challenge, err := s.repo.UpdateChallenge(r.Context(), id, *in)
	if err != nil {
		respondInternal(w, r, "Failed to update challenge", err)
		return
	}
	if challenge == nil {
		respondError(w, http.StatusNotFound, "Challenge not found")
		return
	}

	respondJSON(w, http.StatusOK, challenge)
}

func (s *Server) handleDeleteChallenge(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid challenge ID")
	if !ok {
		return
	}

	deleted, err := s.repo.DeleteChallenge(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to delete challenge", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Challenge not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Submission handlers

func (s *Server) handleCreateSubmission(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCreate[models.SubmissionInput](w, r)
	if !ok {
		return
	}

	submission, err := s.service.Submit(r.Context(), *in)
	if err != nil {
		if errors.Is(err, academy.ErrChallengeNotFound) {
			respondError(w, http.StatusNotFound, "Challenge not found")
			return
		}
		respondInternal(w, r, "Failed to create submission", err)
		return
	}

	respondJSON(w, http.StatusCreated, submission)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid submission ID")
	if !ok {
		return
	}

	submission, err := s.repo.GetSubmission(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to get submission", err)
		return
	}
	if submission == nil {
		respondError(w, http.StatusNotFound, "Submission not found")
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

func (s *Server) handleReviewSubmission(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid submission ID")
	if !ok {
		return
	}
	review, ok := decodeCreate[models.SubmissionReview](w, r)
	if !ok {
		return
	}

	submission, err := s.service.ReviewSubmission(r.Context(), id, *review)
	if err != nil {
		respondInternal(w, r, "Failed to update submission", err)
		return
	}
	if submission == nil {
		respondError(w, http.StatusNotFound, "Submission not found")
		return
	}

	respondJSON(w, http.StatusOK, submission)
}

func (s *Server) handleListUserSubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := parseID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	submissions, err := s.repo.ListSubmissionsByUser(r.Context(), userID)
	if err != nil {
		respondInternal(w, r, "Failed to list submissions", err)
		return
	}

	respondJSON(w, http.StatusOK, submissions)
}

func (s *Server) handleListChallengeSubmissions(w http.ResponseWriter, r *http.Request) {
	challengeID, ok := parseID(w, r, "id", "Invalid challenge ID")
	if !ok {
		return
	}

	submissions, err := s.repo.ListSubmissionsByChallenge(r.Context(), challengeID)
	if err != nil {
		respondInternal(w, r, "Failed to list submissions", err)
		return
	}

	respondJSON(w, http.StatusOK, submissions)
}

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/terra-clan/academy-api/internal/academy"
	"github.com/terra-clan/academy-api/internal/models"
	"github.com/terra-clan/academy-api/internal/storage"
)

// User handlers. models.User never serializes its password.

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.repo.ListUsers(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to list users", err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "userId", "Invalid user ID")
	if !ok {
		return
	}

	user, err := s.repo.GetUser(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to get user", err)
		return
	}
	if user == nil {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCreate[models.UserInput](w, r)
	if !ok {
		return
	}

	user, err := s.service.Register(r.Context(), *in)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrUsernameTaken):
			respondError(w, http.StatusBadRequest, "Username already taken")
		case errors.Is(err, storage.ErrEmailTaken):
			respondError(w, http.StatusBadRequest, "Email already registered")
		default:
			respondInternal(w, r, "Failed to create user", err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	var req models.LoginRequest
	if err := json.Unmarshal(body, &req); err != nil || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, err := s.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, academy.ErrInvalidCredentials) {
			LoggerFromContext(r.Context()).Warn("login rejected", "remote_addr", r.RemoteAddr)
			respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondInternal(w, r, "Failed to log in", err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/terra-clan/academy-api/internal/health"
	"github.com/terra-clan/academy-api/internal/schema"
)

const maxBodyBytes = 1 << 20

// Response helpers

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

func respondValidation(w http.ResponseWriter, verr *schema.ValidationError) {
	respondJSON(w, http.StatusBadRequest, errorResponse{
		Message: verr.Message(),
		Errors:  verr.Fields,
	})
}

// respondInternal logs err against the request and writes a generic 500
func respondInternal(w http.ResponseWriter, r *http.Request, message string, err error) {
	LoggerFromContext(r.Context()).Error(message, "error", err)
	respondError(w, http.StatusInternalServerError, message)
}

// Request helpers

// parseID reads an integer URL parameter, answering 400 when it is not one
func parseID(w http.ResponseWriter, r *http.Request, param, message string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, param))
	if err != nil {
		respondError(w, http.StatusBadRequest, message)
		return 0, false
	}
	return id, true
}

// parseLimit reads the optional limit query parameter. Missing, malformed and
// non-positive values all mean no limit.
func parseLimit(r *http.Request) int {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return body, true
}

// decodeCreate reads and validates a full payload, answering 400 on failure
func decodeCreate[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}
	v, err := schema.ValidateCreate[T](body)
	return validated(w, v, err)
}

// decodeUpdate reads and validates a partial payload, answering 400 on failure
func decodeUpdate[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	body, ok := readBody(w, r)
	if !ok {
		return nil, false
	}
	v, err := schema.ValidatePartialUpdate[T](body)
	return validated(w, v, err)
}

func validated[T any](w http.ResponseWriter, v *T, err error) (*T, bool) {
	if err == nil {
		return v, true
	}
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		respondValidation(w, verr)
	} else {
		respondError(w, http.StatusBadRequest, "Invalid request body")
	}
	return nil, false
}

// Health handlers

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	results := s.checks.CheckAll(ctx)
	checks := make(map[string]string, len(results))
	for name, err := range results {
		if err != nil {
			LoggerFromContext(r.Context()).Warn("readiness check failed", "check", name, "error", err)
			checks[name] = err.Error()
			continue
		}
		checks[name] = "ok"
	}

	if !health.Healthy(results) {
		respondJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status": "not_ready",
			"checks": checks,
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
		"checks": checks,
	})
}

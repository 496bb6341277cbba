package api

import (
	"net/http"

	"github.com/terra-clan/academy-api/internal/models"
)

// Learning path handlers

func (s *Server) handleListLearningPaths(w http.ResponseWriter, r *http.Request) {
	paths, err := s.repo.ListLearningPaths(r.Context())
	if err != nil {
		respondInternal(w, r, "Failed to list learning paths", err)
		return
	}
	respondJSON(w, http.StatusOK, paths)
}

func (s *Server) handleGetLearningPath(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid learning path ID")
	if !ok {
		return
	}

	path, err := s.repo.GetLearningPath(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to get learning path", err)
		return
	}
	if path == nil {
		respondError(w, http.StatusNotFound, "Learning path not found")
		return
	}

	respondJSON(w, http.StatusOK, path)
}

func (s *Server) handleCreateLearningPath(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCreate[models.LearningPathInput](w, r)
	if !ok {
		return
	}

	path, err := s.repo.CreateLearningPath(r.Context(), *in)
	if err != nil {
		respondInternal(w, r, "Failed to create learning path", err)
		return
	}

	respondJSON(w, http.StatusCreated, path)
}

func (s *Server) handleUpdateLearningPath(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid learning path ID")
	if !ok {
		return
	}
	in, ok := decodeUpdate[models.LearningPathInput](w, r)
	if !ok {
		return
	}

	path, err := s.repo.UpdateLearningPath(r.Context(), id, *in)
	if err != nil {
		respondInternal(w, r, "Failed to update learning path", err)
		return
	}
	if path == nil {
		respondError(w, http.StatusNotFound, "Learning path not found")
		return
	}

	respondJSON(w, http.StatusOK, path)
}

func (s *Server) handleDeleteLearningPath(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid learning path ID")
	if !ok {
		return
	}

	deleted, err := s.repo.DeleteLearningPath(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to delete learning path", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Learning path not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleListPathModules lists a path's modules by their order field. An
// unknown path yields an empty list.
func (s *Server) handleListPathModules(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid learning path ID")
	if !ok {
		return
	}

	modules, err := s.repo.ListModulesByLearningPath(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to list modules", err)
		return
	}

	respondJSON(w, http.StatusOK, modules)
}

// Module handlers

func (s *Server) handleGetModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid module ID")
	if !ok {
		return
	}

	module, err := s.repo.GetModule(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to get module", err)
		return
	}
	if module == nil {
		respondError(w, http.StatusNotFound, "Module not found")
		return
	}

	respondJSON(w, http.StatusOK, module)
}

func (s *Server) handleCreateModule(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeCreate[models.ModuleInput](w, r)
	if !ok {
		return
	}

	module, err := s.repo.CreateModule(r.Context(), *in)
	if err != nil {
		respondInternal(w, r, "Failed to create module", err)
		return
	}

	respondJSON(w, http.StatusCreated, module)
}

func (s *Server) handleUpdateModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid module ID")
	if !ok {
		return
	}
	in, ok := decodeUpdate[models.ModuleInput](w, r)
	if !ok {
		return
	}

	module, err := s.repo.UpdateModule(r.Context(), id, *in)
	if err != nil {
		respondInternal(w, r, "Failed to update module", err)
		return
	}
	if module == nil {
		respondError(w, http.StatusNotFound, "Module not found")
		return
	}

	respondJSON(w, http.StatusOK, module)
}

func (s *Server) handleDeleteModule(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r, "id", "Invalid module ID")
	if !ok {
		return
	}

	deleted, err := s.repo.DeleteModule(r.Context(), id)
	if err != nil {
		respondInternal(w, r, "Failed to delete module", err)
		return
	}
	if !deleted {
		respondError(w, http.StatusNotFound, "Module not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

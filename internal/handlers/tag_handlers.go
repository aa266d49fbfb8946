package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/models"
)

// CreateTagRequest represents a request to register a tag
type CreateTagRequest struct {
	Name string `json:"name"`
}

// HandleListTags returns every tag, alphabetically.
func (s *Server) HandleListTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := s.Store.ListTags(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		if tags == nil {
			tags = []*models.Tag{}
		}
		writeJSON(w, http.StatusOK, tags)
	}
}

// HandleCreateTag registers a tag if it isn't already known.
func (s *Server) HandleCreateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateTagRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.Name == "" {
			http.Error(w, "Tag name is required", http.StatusBadRequest)
			return
		}

		created, err := s.Store.EnsureTag(r.Context(), req.Name)
		if err != nil {
			respondError(w, err)
			return
		}

		message := "Tag already exists"
		if created {
			message = "Tag created successfully"
		}
		writeJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: message})
	}
}

package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/models"
)

// Static pages are keyed by semantic ids like "terms-and-conditions", so
// these routes skip the hex id validation the ObjectID routes apply.

// HandleGetPage fetches a static page by key.
func (s *Server) HandleGetPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := s.Store.GetPage(r.Context(), r.PathValue("id"))
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// HandleUpsertPage replaces a static page's content, creating it if absent.
func (s *Server) HandleUpsertPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc models.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if err := s.Store.UpsertPage(r.Context(), r.PathValue("id"), doc); err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "Page saved"})
	}
}

// HandlePatchPage merges fields into an existing static page.
func (s *Server) HandlePatchPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc models.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		if err := s.Store.PatchPage(r.Context(), r.PathValue("id"), doc); err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "Page updated"})
	}
}

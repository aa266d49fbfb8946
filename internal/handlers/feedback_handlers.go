package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/models"
	"threadqube/internal/utils"
)

const defaultFeedbackPageSize = 10

// FeedbackUpdateRequest selects which flag to set on a feedback entry.
// {"read": true} marks it read; anything else marks it responded.
type FeedbackUpdateRequest struct {
	Read bool `json:"read"`
}

// HandleCreateFeedback inserts a feedback body as-is.
func (s *Server) HandleCreateFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc models.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		id, err := s.Store.CreateFeedback(r.Context(), doc)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.InsertResponse{InsertedID: id.Hex()})
	}
}

// HandleListFeedback returns one admin page of feedback.
func (s *Server) HandleListFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := utils.ParsePagination(r, defaultFeedbackPageSize)

		feedback, total, err := s.Store.ListFeedback(r.Context(), p.Skip(), p.Limit)
		if err != nil {
			respondError(w, err)
			return
		}
		if feedback == nil {
			feedback = []models.Document{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"feedback":      feedback,
			"currentPage":   p.Page,
			"totalPages":    utils.TotalPages(total, p.Limit),
			"totalFeedback": total,
		})
	}
}

// HandleUpdateFeedback flips one of the feedback flags.
func (s *Server) HandleUpdateFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		var req FeedbackUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		var err error
		message := "Feedback marked as responded"
		if req.Read {
			err = s.Store.MarkFeedbackRead(r.Context(), id)
			message = "Feedback marked as read"
		} else {
			err = s.Store.MarkFeedbackResponded(r.Context(), id)
		}
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: message})
	}
}

// HandleDeleteFeedback removes a feedback entry.
func (s *Server) HandleDeleteFeedback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		deleted, err := s.Store.DeleteFeedback(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
	}
}

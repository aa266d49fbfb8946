package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/models"
)

// HandleListAnnouncements returns every announcement, newest first.
func (s *Server) HandleListAnnouncements() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcements, err := s.Store.ListAnnouncements(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		if announcements == nil {
			announcements = []models.Document{}
		}
		writeJSON(w, http.StatusOK, announcements)
	}
}

// HandleCreateAnnouncement inserts an announcement body as-is.
func (s *Server) HandleCreateAnnouncement() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc models.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		id, err := s.Store.CreateAnnouncement(r.Context(), doc)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.InsertResponse{InsertedID: id.Hex()})
	}
}

// HandleMarkAnnouncementRead sets an announcement's read flag.
func (s *Server) HandleMarkAnnouncementRead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		if err := s.Store.MarkAnnouncementRead(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.StatusResponse{Success: true, Message: "Announcement marked as read"})
	}
}

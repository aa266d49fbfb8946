package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/engine/actors"
	"threadqube/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateCommentRequest represents a request to comment on a post
type CreateCommentRequest struct {
	PostID      string `json:"postId"`
	UserEmail   string `json:"userEmail"`
	UserName    string `json:"userName"`
	CommentText string `json:"commentText"`
}

// HandleListComments returns a post's comments, newest first.
func (s *Server) HandleListComments() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := r.URL.Query().Get("postId")
		if _, err := primitive.ObjectIDFromHex(postID); err != nil {
			http.Error(w, "Invalid id format", http.StatusBadRequest)
			return
		}

		comments, err := s.Store.ListCommentsByPost(r.Context(), postID)
		if err != nil {
			respondError(w, err)
			return
		}
		if comments == nil {
			comments = []*models.Comment{}
		}
		writeJSON(w, http.StatusOK, comments)
	}
}

// HandleCreateComment creates a comment and bumps the parent post's
// comment counter.
func (s *Server) HandleCreateComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if _, err := primitive.ObjectIDFromHex(req.PostID); err != nil {
			http.Error(w, "Invalid id format", http.StatusBadRequest)
			return
		}

		s.forwardToActor(w, s.Engine.GetCommentActor(), &actors.CreateCommentMsg{
			Comment: &models.Comment{
				PostID:      req.PostID,
				UserEmail:   req.UserEmail,
				UserName:    req.UserName,
				CommentText: req.CommentText,
			},
		})
	}
}

// HandleDeleteComment removes a comment and any reports filed against it.
func (s *Server) HandleDeleteComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		s.forwardToActor(w, s.Engine.GetCommentActor(), &actors.DeleteCommentMsg{CommentID: id})
	}
}

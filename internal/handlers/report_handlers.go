package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/models"
	"threadqube/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultReportPageSize = 10

// CreateReportRequest represents a report filed against a comment
type CreateReportRequest struct {
	PostID    string `json:"postId"`
	CommentID string `json:"commentId"`
	Feedback  string `json:"feedback"`
}

// HandleCreateReport files a report against a comment.
func (s *Server) HandleCreateReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateReportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if _, err := primitive.ObjectIDFromHex(req.PostID); err != nil {
			http.Error(w, "Invalid id format", http.StatusBadRequest)
			return
		}
		if _, err := primitive.ObjectIDFromHex(req.CommentID); err != nil {
			http.Error(w, "Invalid id format", http.StatusBadRequest)
			return
		}

		id, err := s.Store.CreateReport(r.Context(), &models.Report{
			PostID:    req.PostID,
			CommentID: req.CommentID,
			Feedback:  req.Feedback,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, &models.InsertResponse{InsertedID: id.Hex()})
	}
}

// HandleListPostReports returns the reports filed under one post.
func (s *Server) HandleListPostReports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID := r.PathValue("postId")
		if _, err := primitive.ObjectIDFromHex(postID); err != nil {
			http.Error(w, "Invalid id format", http.StatusBadRequest)
			return
		}

		reports, err := s.Store.ListReportsByPost(r.Context(), postID)
		if err != nil {
			respondError(w, err)
			return
		}
		if reports == nil {
			reports = []*models.Report{}
		}
		writeJSON(w, http.StatusOK, reports)
	}
}

// HandleListReports returns one admin page of reports, each enriched with
// the reported comment.
func (s *Server) HandleListReports() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := utils.ParsePagination(r, defaultReportPageSize)

		reports, total, err := s.Store.ListReports(r.Context(), p.Skip(), p.Limit)
		if err != nil {
			respondError(w, err)
			return
		}
		if reports == nil {
			reports = []models.Document{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"reports":      reports,
			"currentPage":  p.Page,
			"totalPages":   utils.TotalPages(total, p.Limit),
			"totalReports": total,
		})
	}
}

// HandleDeleteReport dismisses a single report.
func (s *Server) HandleDeleteReport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		deleted, err := s.Store.DeleteReport(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
	}
}

// HandleDeleteReportsByComment dismisses every report filed against one
// comment.
func (s *Server) HandleDeleteReportsByComment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		commentID := r.PathValue("commentId")
		if _, err := primitive.ObjectIDFromHex(commentID); err != nil {
			http.Error(w, "Invalid id format", http.StatusBadRequest)
			return
		}

		deleted, err := s.Store.DeleteReportsByComment(r.Context(), commentID)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"deletedCount": deleted})
	}
}

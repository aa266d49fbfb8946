package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/database"
	"threadqube/internal/engine/actors"
	"threadqube/internal/models"
	"threadqube/internal/utils"
)

const defaultPostPageSize = 5

// VoteRequest carries the vote direction for a post
type VoteRequest struct {
	VoteType string `json:"voteType"`
}

// HandleListPosts returns one page of the feed, optionally filtered by tag
// and ranked by popularity.
func (s *Server) HandleListPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := utils.ParsePagination(r, defaultPostPageSize)

		query := database.PostQuery{
			Tag:   r.URL.Query().Get("tag"),
			Sort:  r.URL.Query().Get("sort"),
			Skip:  p.Skip(),
			Limit: p.Limit,
		}

		posts, total, err := s.Store.ListPosts(r.Context(), query)
		if err != nil {
			respondError(w, err)
			return
		}
		if posts == nil {
			posts = []models.Document{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"posts":       posts,
			"currentPage": p.Page,
			"totalPages":  utils.TotalPages(total, p.Limit),
			"totalPosts":  total,
		})
	}
}

// HandleCreatePost inserts a post body as-is and returns the generated id.
func (s *Server) HandleCreatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc models.Document
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		s.forwardToActor(w, s.Engine.GetPostActor(), &actors.CreatePostMsg{Document: doc})
	}
}

// HandleGetPost fetches a single post by id.
func (s *Server) HandleGetPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		post, err := s.Store.GetPost(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, post)
	}
}

// HandleDeletePost removes a post by id.
func (s *Server) HandleDeletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		s.forwardToActor(w, s.Engine.GetPostActor(), &actors.DeletePostMsg{PostID: id})
	}
}

// HandleVotePost applies one vote: voteType "upvote" increments upvote,
// anything else increments downVote.
func (s *Server) HandleVotePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		var req VoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		s.forwardToActor(w, s.Engine.GetPostActor(), &actors.VotePostMsg{
			PostID:   id,
			VoteType: req.VoteType,
		})
	}
}

// HandleBumpCommentCount increments a post's comment counter.
func (s *Server) HandleBumpCommentCount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		s.forwardToActor(w, s.Engine.GetPostActor(), &actors.BumpCommentCountMsg{PostID: id})
	}
}

// HandleListUserPosts returns one page of the authenticated author's posts.
// The email gate upstream guarantees the query email matches the token.
func (s *Server) HandleListUserPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			http.Error(w, "Email is required", http.StatusBadRequest)
			return
		}

		p := utils.ParsePagination(r, defaultPostPageSize)

		posts, total, err := s.Store.ListPostsByAuthor(r.Context(), email, p.Skip(), p.Limit)
		if err != nil {
			respondError(w, err)
			return
		}
		if posts == nil {
			posts = []models.Document{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"posts":       posts,
			"currentPage": p.Page,
			"totalPages":  utils.TotalPages(total, p.Limit),
			"totalPosts":  total,
		})
	}
}

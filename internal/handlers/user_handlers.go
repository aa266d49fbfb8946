package handlers

import (
	"encoding/json"
	"net/http"

	"threadqube/internal/engine/actors"
	"threadqube/internal/models"
	"threadqube/internal/utils"
)

const defaultUserPageSize = 10

// SignInRequest represents an idempotent sign-in for a user
type SignInRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
}

// BadgeRequest carries a badge update
type BadgeRequest struct {
	Badge string `json:"badge"`
}

// HandleUserSignIn creates the user on first sign-in; repeat sign-ins for
// the same email answer "User already exists".
func (s *Server) HandleUserSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.Email == "" {
			http.Error(w, "Email is required", http.StatusBadRequest)
			return
		}

		s.forwardToActor(w, s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			Email:    req.Email,
			Name:     req.Name,
			PhotoURL: req.PhotoURL,
		})
	}
}

// HandleGetUser looks a user up by email. A missing user answers null, not
// 404, so the frontend can branch on first sign-in.
func (s *Server) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.URL.Query().Get("email")
		if email == "" {
			http.Error(w, "Email is required", http.StatusBadRequest)
			return
		}

		user, err := s.Store.GetUserByEmail(r.Context(), email)
		if err != nil {
			if utils.IsErrorCode(err, utils.ErrUserNotFound) {
				writeJSON(w, http.StatusOK, nil)
				return
			}
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}

// HandleListUsers returns one admin page of users.
func (s *Server) HandleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p := utils.ParsePagination(r, defaultUserPageSize)

		users, total, err := s.Store.ListUsers(r.Context(), p.Skip(), p.Limit)
		if err != nil {
			respondError(w, err)
			return
		}
		if users == nil {
			users = []*models.User{}
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"users":       users,
			"currentPage": p.Page,
			"totalPages":  utils.TotalPages(total, p.Limit),
			"totalUsers":  total,
		})
	}
}

// HandlePromoteAdmin grants the admin role to a user by id.
func (s *Server) HandlePromoteAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(w, r.PathValue("id"))
		if !ok {
			return
		}

		s.forwardToActor(w, s.Engine.GetUserActor(), &actors.UpdateUserRoleMsg{
			UserID: id,
			Role:   models.RoleAdmin,
		})
	}
}

// HandleSetBadge updates a user's badge by email.
func (s *Server) HandleSetBadge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		email := r.PathValue("email")
		if email == "" {
			http.Error(w, "Email is required", http.StatusBadRequest)
			return
		}

		var req BadgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}

		s.forwardToActor(w, s.Engine.GetUserActor(), &actors.UpdateUserBadgeMsg{
			Email: email,
			Badge: req.Badge,
		})
	}
}

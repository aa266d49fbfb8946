package handlers

import (
	"encoding/json"
	"net/http"
)

// TokenRequest identifies the caller asking for a bearer token
type TokenRequest struct {
	Email string `json:"email"`
}

// TokenResponse carries an issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}

// HandleIssueToken issues a signed bearer token for an email. It stands in
// for an external identity provider; the rest of the API only ever
// verifies tokens.
func (s *Server) HandleIssueToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.Email == "" {
			http.Error(w, "Email is required", http.StatusBadRequest)
			return
		}

		token, err := s.Verifier.GenerateToken(req.Email)
		if err != nil {
			http.Error(w, "Failed to issue token", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, &TokenResponse{Token: token})
	}
}

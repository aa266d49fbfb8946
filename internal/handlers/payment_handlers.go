package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// PaymentIntentRequest identifies the donor for a payment intent
type PaymentIntentRequest struct {
	Email string `json:"email"`
}

// HandleCreatePaymentIntent opens a fixed-amount payment intent and
// returns the client secret. Provider failures surface as a generic 500.
func (s *Server) HandleCreatePaymentIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PaymentIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request", http.StatusBadRequest)
			return
		}
		if req.Email == "" {
			http.Error(w, "Email is required", http.StatusBadRequest)
			return
		}

		if !s.Payments.Enabled() {
			http.Error(w, "Failed to create payment intent", http.StatusInternalServerError)
			return
		}

		clientSecret, err := s.Payments.CreatePaymentIntent(r.Context(), req.Email)
		if err != nil {
			slog.Error("payment intent creation failed", "error", err)
			http.Error(w, "Failed to create payment intent", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
	}
}

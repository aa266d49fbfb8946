package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"threadqube/internal/database"
	"threadqube/internal/engine"
	"threadqube/internal/middleware"
	"threadqube/internal/payments"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Server holds all server dependencies, including the actor system and engine
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Store          database.Store
	Metrics        *utils.MetricsCollector
	Payments       *payments.Client
	Verifier       *middleware.TokenVerifier
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	store database.Store,
	metrics *utils.MetricsCollector,
	paymentClient *payments.Client,
	verifier *middleware.TokenVerifier,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Store:          store,
		Metrics:        metrics,
		Payments:       paymentClient,
		Verifier:       verifier,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// writeJSON serializes a response body with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondResult writes an actor or store result: application errors map to
// their HTTP status, anything else is a 200 JSON body.
func respondResult(w http.ResponseWriter, result interface{}) {
	if appErr, ok := result.(*utils.AppError); ok {
		http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}
	if err, ok := result.(error); ok {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// respondError maps a store error to its HTTP status; unknown errors
// surface as a generic 500.
func respondError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*utils.AppError); ok {
		http.Error(w, appErr.Message, utils.AppErrorToHTTPStatus(appErr.Code))
		return
	}
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// forwardToActor sends a message to an actor and writes whatever it
// responds with.
func (s *Server) forwardToActor(w http.ResponseWriter, pid *actor.PID, msg interface{}) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	result, err := future.Result()
	if err != nil {
		http.Error(w, "Failed to process request", http.StatusInternalServerError)
		return
	}
	respondResult(w, result)
}

// parseID validates a hex-24 identifier from a path or query value,
// writing a 400 when malformed.
func parseID(w http.ResponseWriter, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		http.Error(w, "Invalid id format", http.StatusBadRequest)
		return primitive.NilObjectID, false
	}
	return id, true
}

// HandleHealth answers the liveness probe.
func (s *Server) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": "ThreadQube is working",
		})
	}
}

// HandleStatus reports process uptime and request volume.
func (s *Server) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":       "healthy",
			"uptime":       s.Metrics.Uptime().String(),
			"requestCount": s.Metrics.RequestCount(),
			"serverTime":   time.Now().UTC(),
		})
	}
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"threadqube/internal/database"
	"threadqube/internal/engine"
	"threadqube/internal/middleware"
	"threadqube/internal/payments"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
)

// newTestServer wires a Server against the in-memory store with a real
// actor engine, the same way main does for DB_TYPE=memory.
func newTestServer(t *testing.T) (*Server, *database.MemoryStore) {
	t.Helper()
	store := database.NewMemoryStore()
	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	eng := engine.NewEngine(system, store, metrics)
	verifier := middleware.NewTokenVerifier("test-secret")
	return NewServer(system, eng, store, metrics, payments.NewClient(""), verifier), store
}

// doJSON runs a handler with a JSON body and optional path values.
func doJSON(t *testing.T, handler http.HandlerFunc, method, target string, body interface{}, pathValues map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	for k, val := range pathValues {
		req.SetPathValue(k, val)
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

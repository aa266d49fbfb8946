package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"threadqube/internal/database"
	"threadqube/internal/models"

	"github.com/stretchr/testify/assert"
)

func echoEmail(w http.ResponseWriter, r *http.Request) {
	email, _ := GetEmailFromContext(r.Context())
	w.Write([]byte(email))
}

func TestRequireAuthRejectsMissingHeader(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	handler := v.RequireAuth(echoEmail)

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/users/all", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsMalformedHeader(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	handler := v.RequireAuth(echoEmail)

	req := httptest.NewRequest(http.MethodGet, "/users/all", nil)
	req.Header.Set("Authorization", "Basic abc123")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthRejectsForgedToken(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	other := NewTokenVerifier("other-secret")
	token, err := other.GenerateToken("gator@example.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	v.RequireAuth(echoEmail)(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuthPassesEmailThrough(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token, err := v.GenerateToken("gator@example.com")
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/all", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	v.RequireAuth(echoEmail)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "gator@example.com", rec.Body.String())
}

func TestRequireEmailMatch(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	token, err := v.GenerateToken("gator@example.com")
	assert.NoError(t, err)

	handler := v.RequireEmailMatch(echoEmail)

	req := httptest.NewRequest(http.MethodGet, "/Allposts/user?email=other@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/Allposts/user?email=gator@example.com", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	v := NewTokenVerifier("test-secret")
	store := database.NewMemoryStore()
	ctx := context.Background()

	_, _, err := store.CreateUser(ctx, &models.User{Email: "admin@example.com", Role: models.RoleAdmin})
	assert.NoError(t, err)
	_, _, err = store.CreateUser(ctx, &models.User{Email: "user@example.com"})
	assert.NoError(t, err)

	handler := v.RequireAdmin(store, echoEmail)

	userToken, err := v.GenerateToken("user@example.com")
	assert.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	adminToken, err := v.GenerateToken("admin@example.com")
	assert.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/reports", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

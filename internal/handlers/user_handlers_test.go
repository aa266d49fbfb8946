package handlers

import (
	"context"
	"net/http"
	"testing"

	"threadqube/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestUserSignInIsIdempotent(t *testing.T) {
	s, store := newTestServer(t)

	body := SignInRequest{Email: "gator@example.com", Name: "Gator"}

	first := doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", body, nil)
	assert.Equal(t, http.StatusOK, first.Code)
	var insert models.InsertResponse
	decodeBody(t, first, &insert)
	assert.Len(t, insert.InsertedID, 24)

	second := doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", body, nil)
	assert.Equal(t, http.StatusOK, second.Code)
	var status models.StatusResponse
	decodeBody(t, second, &status)
	assert.Equal(t, "User already exists", status.Message)

	users, total, err := store.ListUsers(context.Background(), 0, 10)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, users, 1)
}

func TestSignInRequiresEmail(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", SignInRequest{Name: "anon"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserMissingReturnsNull(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s.HandleGetUser(), http.MethodGet, "/users?email=ghost@example.com", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestGetUserReturnsRecord(t *testing.T) {
	s, _ := newTestServer(t)

	doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", SignInRequest{Email: "gator@example.com", Name: "Gator"}, nil)

	rec := doJSON(t, s.HandleGetUser(), http.MethodGet, "/users?email=gator@example.com", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	decodeBody(t, rec, &user)
	assert.Equal(t, "gator@example.com", user.Email)
	assert.Equal(t, models.RoleUser, user.Role)
}

func TestPromoteAdmin(t *testing.T) {
	s, store := newTestServer(t)

	doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", SignInRequest{Email: "mod@example.com"}, nil)
	user, err := store.GetUserByEmail(context.Background(), "mod@example.com")
	assert.NoError(t, err)

	id := user.ID.Hex()
	rec := doJSON(t, s.HandlePromoteAdmin(), http.MethodPatch, "/users/admin/"+id, nil, map[string]string{"id": id})
	assert.Equal(t, http.StatusOK, rec.Code)

	promoted, err := store.GetUserByEmail(context.Background(), "mod@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
}

func TestSetBadge(t *testing.T) {
	s, store := newTestServer(t)

	doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", SignInRequest{Email: "gator@example.com"}, nil)

	rec := doJSON(t, s.HandleSetBadge(), http.MethodPatch, "/users/badge/gator@example.com",
		BadgeRequest{Badge: "founder"}, map[string]string{"email": "gator@example.com"})
	assert.Equal(t, http.StatusOK, rec.Code)

	user, err := store.GetUserByEmail(context.Background(), "gator@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "founder", user.Badge)
}

func TestListUsersEnvelope(t *testing.T) {
	s, _ := newTestServer(t)

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		doJSON(t, s.HandleUserSignIn(), http.MethodPost, "/users", SignInRequest{Email: email}, nil)
	}

	rec := doJSON(t, s.HandleListUsers(), http.MethodGet, "/users/all?page=1&limit=2", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Users       []models.User `json:"users"`
		CurrentPage int           `json:"currentPage"`
		TotalPages  int           `json:"totalPages"`
		TotalUsers  int           `json:"totalUsers"`
	}
	decodeBody(t, rec, &envelope)
	assert.Len(t, envelope.Users, 2)
	assert.Equal(t, 2, envelope.TotalPages)
	assert.Equal(t, 3, envelope.TotalUsers)
}

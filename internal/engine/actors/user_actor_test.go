package actors

import (
	"context"
	"testing"
	"time"

	"threadqube/internal/database"
	"threadqube/internal/models"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
)

// ask sends a message to an actor and fails the test on transport errors.
func ask(t *testing.T, system *actor.ActorSystem, pid *actor.PID, msg interface{}) interface{} {
	t.Helper()
	future := system.Root.RequestFuture(pid, msg, 5*time.Second)
	result, err := future.Result()
	if err != nil {
		t.Fatalf("actor request failed: %v", err)
	}
	return result
}

func spawnUserActor(system *actor.ActorSystem, store database.Store) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(store, utils.NewMetricsCollector())
	})
	return system.Root.Spawn(props)
}

func TestUserSignInIdempotency(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnUserActor(system, store)

	msg := &RegisterUserMsg{
		Email:    "gator@example.com",
		Name:     "Gator",
		PhotoURL: "https://example.com/gator.png",
	}

	first := ask(t, system, pid, msg)
	insert, ok := first.(*models.InsertResponse)
	if !ok {
		t.Fatalf("expected insert response, got %T", first)
	}
	assert.Len(t, insert.InsertedID, 24)

	second := ask(t, system, pid, msg)
	status, ok := second.(*models.StatusResponse)
	if !ok {
		t.Fatalf("expected status response, got %T", second)
	}
	assert.True(t, status.Success)
	assert.Equal(t, "User already exists", status.Message)

	stored, err := store.GetUserByEmail(context.Background(), "gator@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, stored.Role)
	assert.Equal(t, "Gator", stored.Name)
}

func TestUserRoleAndBadgeUpdates(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnUserActor(system, store)

	ask(t, system, pid, &RegisterUserMsg{Email: "mod@example.com", Name: "Mod"})

	stored, err := store.GetUserByEmail(context.Background(), "mod@example.com")
	assert.NoError(t, err)

	roleResult := ask(t, system, pid, &UpdateUserRoleMsg{UserID: stored.ID, Role: models.RoleAdmin})
	status, ok := roleResult.(*models.StatusResponse)
	if !ok {
		t.Fatalf("expected status response, got %T", roleResult)
	}
	assert.True(t, status.Success)

	badgeResult := ask(t, system, pid, &UpdateUserBadgeMsg{Email: "mod@example.com", Badge: "founder"})
	badgeStatus, ok := badgeResult.(*models.StatusResponse)
	if !ok {
		t.Fatalf("expected status response, got %T", badgeResult)
	}
	assert.True(t, badgeStatus.Success)

	updated, err := store.GetUserByEmail(context.Background(), "mod@example.com")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)
	assert.Equal(t, "founder", updated.Badge)
}

func TestUserBadgeUnknownEmail(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnUserActor(system, store)

	result := ask(t, system, pid, &UpdateUserBadgeMsg{Email: "ghost@example.com", Badge: "founder"})
	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected app error, got %T", result)
	}
	assert.Equal(t, utils.ErrUserNotFound, appErr.Code)
}

package actors

import (
	"log/slog"
	"time"

	stdctx "context"

	"threadqube/internal/database"
	"threadqube/internal/models"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message types for User operations
type (
	RegisterUserMsg struct {
		Email    string
		Name     string
		PhotoURL string
	}

	UpdateUserRoleMsg struct {
		UserID primitive.ObjectID
		Role   string
	}

	UpdateUserBadgeMsg struct {
		Email string
		Badge string
	}
)

// UserActor serializes user mutations. Sign-in is idempotent: the store
// does a conditional upsert over the unique email index, so two concurrent
// sign-ins for the same email leave exactly one user.
type UserActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewUserActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &UserActor{store: store, metrics: metrics}
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		startTime := time.Now()

		user := &models.User{
			Email:    msg.Email,
			Name:     msg.Name,
			PhotoURL: msg.PhotoURL,
			Role:     models.RoleUser,
		}

		ctx := stdctx.Background()
		id, created, err := a.store.CreateUser(ctx, user)
		if err != nil {
			slog.Error("failed to save user", "email", msg.Email, "error", err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save user", err))
			return
		}

		if !created {
			context.Respond(&models.StatusResponse{Success: true, Message: "User already exists"})
			return
		}

		slog.Info("user created", "email", msg.Email, "id", id.Hex())
		a.metrics.AddOperationLatency("register_user", time.Since(startTime))
		context.Respond(&models.InsertResponse{InsertedID: id.Hex()})

	case *UpdateUserRoleMsg:
		ctx := stdctx.Background()
		if err := a.store.SetUserRole(ctx, msg.UserID, msg.Role); err != nil {
			context.Respond(err)
			return
		}
		slog.Info("user role updated", "id", msg.UserID.Hex(), "role", msg.Role)
		context.Respond(&models.StatusResponse{Success: true, Message: "User role updated"})

	case *UpdateUserBadgeMsg:
		ctx := stdctx.Background()
		if err := a.store.SetUserBadge(ctx, msg.Email, msg.Badge); err != nil {
			context.Respond(err)
			return
		}
		context.Respond(&models.StatusResponse{Success: true, Message: "User badge updated"})
	}
}

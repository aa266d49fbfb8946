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

// Message types for Post operations
type (
	CreatePostMsg struct {
		Document models.Document
	}

	VotePostMsg struct {
		PostID   primitive.ObjectID
		VoteType string
	}

	BumpCommentCountMsg struct {
		PostID primitive.ObjectID
	}

	DeletePostMsg struct {
		PostID primitive.ObjectID
	}
)

// PostActor serializes post mutations. Post bodies are stored as-is; the
// store stamps postTime and zeroes the counters, and counters only ever
// move through atomic increments.
type PostActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewPostActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &PostActor{store: store, metrics: metrics}
}

func (a *PostActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreatePostMsg:
		startTime := time.Now()

		ctx := stdctx.Background()
		id, err := a.store.CreatePost(ctx, msg.Document)
		if err != nil {
			slog.Error("failed to insert post", "error", err)
			context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to insert post", err))
			return
		}

		a.metrics.AddOperationLatency("create_post", time.Since(startTime))
		context.Respond(&models.InsertResponse{InsertedID: id.Hex()})

	case *VotePostMsg:
		ctx := stdctx.Background()
		if err := a.store.ApplyVote(ctx, msg.PostID, msg.VoteType); err != nil {
			context.Respond(err)
			return
		}
		context.Respond(&models.StatusResponse{Success: true, Message: "Vote recorded"})

	case *BumpCommentCountMsg:
		ctx := stdctx.Background()
		if err := a.store.BumpCommentCount(ctx, msg.PostID); err != nil {
			context.Respond(err)
			return
		}
		context.Respond(&models.StatusResponse{Success: true, Message: "Comment count updated"})

	case *DeletePostMsg:
		ctx := stdctx.Background()
		deleted, err := a.store.DeletePost(ctx, msg.PostID)
		if err != nil {
			context.Respond(err)
			return
		}
		if deleted == 0 {
			context.Respond(utils.NewAppError(utils.ErrPostNotFound, "Post not found", nil))
			return
		}
		slog.Info("post deleted", "id", msg.PostID.Hex())
		context.Respond(&models.StatusResponse{Success: true, Message: "Post deleted successfully"})
	}
}

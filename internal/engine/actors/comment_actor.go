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

// Message types for Comment operations
type (
	CreateCommentMsg struct {
		Comment *models.Comment
	}

	DeleteCommentMsg struct {
		CommentID primitive.ObjectID
	}
)

// CommentActor serializes the two multi-step comment flows: creation bumps
// the parent post's comment count, deletion cascades to any reports filed
// against the comment.
type CommentActor struct {
	store   database.Store
	metrics *utils.MetricsCollector
}

func NewCommentActor(store database.Store, metrics *utils.MetricsCollector) actor.Actor {
	return &CommentActor{store: store, metrics: metrics}
}

func (a *CommentActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *CreateCommentMsg:
		startTime := time.Now()

		ctx := stdctx.Background()
		id, err := a.store.CreateComment(ctx, msg.Comment)
		if err != nil {
			context.Respond(err)
			return
		}

		// The comment lands even if the count bump fails; the popularity
		// feed recomputes commentsCount from the comments themselves.
		if postID, hexErr := primitive.ObjectIDFromHex(msg.Comment.PostID); hexErr == nil {
			if err := a.store.BumpCommentCount(ctx, postID); err != nil {
				slog.Warn("failed to bump comment count", "postId", msg.Comment.PostID, "error", err)
			}
		} else {
			slog.Warn("comment created with malformed postId", "postId", msg.Comment.PostID)
		}

		a.metrics.AddOperationLatency("create_comment", time.Since(startTime))
		context.Respond(&models.InsertResponse{InsertedID: id.Hex()})

	case *DeleteCommentMsg:
		ctx := stdctx.Background()
		deleted, err := a.store.DeleteComment(ctx, msg.CommentID)
		if err != nil {
			context.Respond(err)
			return
		}
		if deleted == 0 {
			context.Respond(utils.NewAppError(utils.ErrCommentNotFound, "Comment not found", nil))
			return
		}

		removed, err := a.store.DeleteReportsByComment(ctx, msg.CommentID.Hex())
		if err != nil {
			slog.Warn("failed to clean up reports for comment", "commentId", msg.CommentID.Hex(), "error", err)
		} else if removed > 0 {
			slog.Info("reports removed with comment", "commentId", msg.CommentID.Hex(), "count", removed)
		}

		context.Respond(&models.StatusResponse{Success: true, Message: "Comment deleted successfully"})
	}
}

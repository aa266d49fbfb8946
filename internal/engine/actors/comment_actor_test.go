package actors

import (
	"context"
	"testing"

	"threadqube/internal/database"
	"threadqube/internal/models"
	"threadqube/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func spawnCommentActor(system *actor.ActorSystem, store database.Store) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewCommentActor(store, utils.NewMetricsCollector())
	})
	return system.Root.Spawn(props)
}

func TestCreateCommentBumpsPostCount(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnCommentActor(system, store)

	ctx := context.Background()
	postID, err := store.CreatePost(ctx, models.Document{"title": "discussion"})
	assert.NoError(t, err)

	result := ask(t, system, pid, &CreateCommentMsg{
		Comment: &models.Comment{
			PostID:      postID.Hex(),
			UserEmail:   "gator@example.com",
			UserName:    "Gator",
			CommentText: "first",
		},
	})
	insert, ok := result.(*models.InsertResponse)
	if !ok {
		t.Fatalf("expected insert response, got %T", result)
	}
	assert.Len(t, insert.InsertedID, 24)

	post, err := store.GetPost(ctx, postID)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, post[models.PostFieldCommentsCount])

	comments, err := store.ListCommentsByPost(ctx, postID.Hex())
	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].CommentText)
}

func TestDeleteCommentCascadesReports(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnCommentActor(system, store)

	ctx := context.Background()
	postID, err := store.CreatePost(ctx, models.Document{"title": "reported"})
	assert.NoError(t, err)

	created := ask(t, system, pid, &CreateCommentMsg{
		Comment: &models.Comment{PostID: postID.Hex(), UserEmail: "troll@example.com", CommentText: "spam"},
	})
	commentID, err := primitive.ObjectIDFromHex(created.(*models.InsertResponse).InsertedID)
	assert.NoError(t, err)

	_, err = store.CreateReport(ctx, &models.Report{
		PostID:    postID.Hex(),
		CommentID: commentID.Hex(),
		Feedback:  "spam",
	})
	assert.NoError(t, err)
	_, err = store.CreateReport(ctx, &models.Report{
		PostID:    postID.Hex(),
		CommentID: commentID.Hex(),
		Feedback:  "still spam",
	})
	assert.NoError(t, err)

	result := ask(t, system, pid, &DeleteCommentMsg{CommentID: commentID})
	status, ok := result.(*models.StatusResponse)
	if !ok {
		t.Fatalf("expected status response, got %T", result)
	}
	assert.True(t, status.Success)

	reports, err := store.ListReportsByPost(ctx, postID.Hex())
	assert.NoError(t, err)
	assert.Empty(t, reports)
}

func TestDeleteUnknownComment(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnCommentActor(system, store)

	result := ask(t, system, pid, &DeleteCommentMsg{CommentID: primitive.NewObjectID()})
	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected app error, got %T", result)
	}
	assert.Equal(t, utils.ErrCommentNotFound, appErr.Code)
}

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

func spawnPostActor(system *actor.ActorSystem, store database.Store) *actor.PID {
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewPostActor(store, utils.NewMetricsCollector())
	})
	return system.Root.Spawn(props)
}

func createPost(t *testing.T, system *actor.ActorSystem, pid *actor.PID, doc models.Document) primitive.ObjectID {
	t.Helper()
	result := ask(t, system, pid, &CreatePostMsg{Document: doc})
	insert, ok := result.(*models.InsertResponse)
	if !ok {
		t.Fatalf("expected insert response, got %T", result)
	}
	id, err := primitive.ObjectIDFromHex(insert.InsertedID)
	if err != nil {
		t.Fatalf("inserted id is not hex-24: %v", err)
	}
	return id
}

func TestCreatePostOpaqueBody(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnPostActor(system, store)

	// Bodies are not validated; a post without authorEmail still inserts.
	id := createPost(t, system, pid, models.Document{"title": "no author"})

	post, err := store.GetPost(context.Background(), id)
	assert.NoError(t, err)
	assert.Equal(t, "no author", post["title"])
	assert.EqualValues(t, 0, post[models.PostFieldUpvote])
	assert.NotNil(t, post[models.PostFieldPostTime])
}

func TestVoteMonotonicity(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnPostActor(system, store)

	id := createPost(t, system, pid, models.Document{"title": "votes"})

	ask(t, system, pid, &VotePostMsg{PostID: id, VoteType: models.VoteUp})
	ask(t, system, pid, &VotePostMsg{PostID: id, VoteType: models.VoteUp})
	// Any value other than "upvote" counts as a downvote.
	ask(t, system, pid, &VotePostMsg{PostID: id, VoteType: "sideways"})

	post, err := store.GetPost(context.Background(), id)
	assert.NoError(t, err)
	assert.EqualValues(t, 2, post[models.PostFieldUpvote])
	assert.EqualValues(t, 1, post[models.PostFieldDownVote])
}

func TestVoteUnknownPost(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnPostActor(system, store)

	result := ask(t, system, pid, &VotePostMsg{PostID: primitive.NewObjectID(), VoteType: models.VoteUp})
	appErr, ok := result.(*utils.AppError)
	if !ok {
		t.Fatalf("expected app error, got %T", result)
	}
	assert.Equal(t, utils.ErrPostNotFound, appErr.Code)
}

func TestDeletePost(t *testing.T) {
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	pid := spawnPostActor(system, store)

	id := createPost(t, system, pid, models.Document{"title": "doomed"})

	result := ask(t, system, pid, &DeletePostMsg{PostID: id})
	status, ok := result.(*models.StatusResponse)
	if !ok {
		t.Fatalf("expected status response, got %T", result)
	}
	assert.True(t, status.Success)

	again := ask(t, system, pid, &DeletePostMsg{PostID: id})
	appErr, ok := again.(*utils.AppError)
	if !ok {
		t.Fatalf("expected app error, got %T", again)
	}
	assert.Equal(t, utils.ErrPostNotFound, appErr.Code)
}
